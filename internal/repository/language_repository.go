package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/translation-qa-api/internal/models"
)

const languageColumns = "id, code, name, native_name, flag, is_default, sort_order, is_active"

// LanguageRepository reads the language catalog.
type LanguageRepository struct {
	db *sqlx.DB
}

// NewLanguageRepository constructs the repository.
func NewLanguageRepository(db *sqlx.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

// List returns languages in display order.
func (r *LanguageRepository) List(ctx context.Context, activeOnly bool) ([]models.Language, error) {
	query := "SELECT " + languageColumns + " FROM languages"
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY sort_order ASC, id ASC"

	var languages []models.Language
	if err := conn(ctx, r.db).SelectContext(ctx, &languages, query); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return languages, nil
}

// FindByID fetches a language, returning sql.ErrNoRows when absent.
func (r *LanguageRepository) FindByID(ctx context.Context, id int64) (*models.Language, error) {
	var language models.Language
	query := "SELECT " + languageColumns + " FROM languages WHERE id = $1"
	if err := conn(ctx, r.db).GetContext(ctx, &language, query, id); err != nil {
		return nil, err
	}
	return &language, nil
}

// FindByCode fetches a language by its unique code.
func (r *LanguageRepository) FindByCode(ctx context.Context, code string) (*models.Language, error) {
	var language models.Language
	query := "SELECT " + languageColumns + " FROM languages WHERE LOWER(code) = LOWER($1)"
	if err := conn(ctx, r.db).GetContext(ctx, &language, query, code); err != nil {
		return nil, err
	}
	return &language, nil
}
