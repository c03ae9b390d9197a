package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/translation-qa-api/internal/models"
)

// TranslationKeyRepository reads translation keys.
type TranslationKeyRepository struct {
	db *sqlx.DB
}

// NewTranslationKeyRepository constructs the repository.
func NewTranslationKeyRepository(db *sqlx.DB) *TranslationKeyRepository {
	return &TranslationKeyRepository{db: db}
}

// List returns keys, optionally narrowed to one category.
func (r *TranslationKeyRepository) List(ctx context.Context, category string) ([]models.TranslationKey, error) {
	builder := psql.Select("id", "key_name", "description", "category", "created_at").
		From("translation_keys").
		OrderBy("key_name ASC")
	if category != "" {
		builder = builder.Where(squirrel.Eq{"category": category})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list keys query: %w", err)
	}

	var keys []models.TranslationKey
	if err := conn(ctx, r.db).SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("list translation keys: %w", err)
	}
	return keys, nil
}

// FindByID fetches a key, returning sql.ErrNoRows when absent.
func (r *TranslationKeyRepository) FindByID(ctx context.Context, id int64) (*models.TranslationKey, error) {
	var key models.TranslationKey
	const query = `SELECT id, key_name, description, category, created_at FROM translation_keys WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &key, query, id); err != nil {
		return nil, err
	}
	return &key, nil
}

// IDsByCategory returns every key ID in the category, ascending.
func (r *TranslationKeyRepository) IDsByCategory(ctx context.Context, category string) ([]int64, error) {
	const query = `SELECT id FROM translation_keys WHERE category = $1 ORDER BY id ASC`
	var ids []int64
	if err := conn(ctx, r.db).SelectContext(ctx, &ids, query, category); err != nil {
		return nil, fmt.Errorf("list key ids for category %s: %w", category, err)
	}
	return ids, nil
}
