package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/translation-qa-api/internal/models"
)

const translationColumns = "id, key_id, language_id, translation_text, is_approved, created_at, updated_at"

const baselineExpr = "COALESCE(NULLIF(TRIM(b.translation_text), ''), k.description, '')"

// TranslationRepository persists per-language translation rows.
type TranslationRepository struct {
	db *sqlx.DB
}

// NewTranslationRepository constructs the repository.
func NewTranslationRepository(db *sqlx.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

// Get fetches the translation for a pair, returning sql.ErrNoRows when absent.
func (r *TranslationRepository) Get(ctx context.Context, keyID, languageID int64) (*models.Translation, error) {
	var translation models.Translation
	query := "SELECT " + translationColumns + " FROM translations WHERE key_id = $1 AND language_id = $2"
	if err := conn(ctx, r.db).GetContext(ctx, &translation, query, keyID, languageID); err != nil {
		return nil, err
	}
	return &translation, nil
}

// LockForUpdate row-locks the pair's translation inside the current transaction.
// It returns nil without error when the pair has no translation.
func (r *TranslationRepository) LockForUpdate(ctx context.Context, keyID, languageID int64) (*models.Translation, error) {
	var translation models.Translation
	query := "SELECT " + translationColumns + " FROM translations WHERE key_id = $1 AND language_id = $2 FOR UPDATE"
	if err := conn(ctx, r.db).GetContext(ctx, &translation, query, keyID, languageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock translation %d/%d: %w", keyID, languageID, err)
	}
	return &translation, nil
}

// SetApproved writes the approval flag and reports affected rows.
func (r *TranslationRepository) SetApproved(ctx context.Context, keyID, languageID int64, approved bool, at time.Time) (int64, error) {
	const query = `UPDATE translations SET is_approved = $1, updated_at = $2 WHERE key_id = $3 AND language_id = $4`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, approved, at, keyID, languageID)
	if err != nil {
		return 0, fmt.Errorf("set translation approval %d/%d: %w", keyID, languageID, err)
	}
	return res.RowsAffected()
}

// Upsert inserts or overwrites the pair's text.
func (r *TranslationRepository) Upsert(ctx context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (models.UpsertResult, error) {
	const query = `INSERT INTO translations (key_id, language_id, translation_text, is_approved, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (key_id, language_id) DO UPDATE
	SET translation_text = EXCLUDED.translation_text, is_approved = EXCLUDED.is_approved, updated_at = EXCLUDED.updated_at
	RETURNING id, (xmax = 0) AS inserted`
	var result models.UpsertResult
	if err := conn(ctx, r.db).GetContext(ctx, &result, query, keyID, languageID, text, approved, at); err != nil {
		return models.UpsertResult{}, fmt.Errorf("upsert translation %d/%d: %w", keyID, languageID, err)
	}
	return result, nil
}

// InsertIfAbsent writes the pair only when no row exists yet.
func (r *TranslationRepository) InsertIfAbsent(ctx context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (bool, error) {
	const query = `INSERT INTO translations (key_id, language_id, translation_text, is_approved, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (key_id, language_id) DO NOTHING`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, keyID, languageID, text, approved, at)
	if err != nil {
		return false, fmt.Errorf("insert translation %d/%d: %w", keyID, languageID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes the pair's translation.
func (r *TranslationRepository) Delete(ctx context.Context, keyID, languageID int64) (int64, error) {
	const query = `DELETE FROM translations WHERE key_id = $1 AND language_id = $2`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, keyID, languageID)
	if err != nil {
		return 0, fmt.Errorf("delete translation %d/%d: %w", keyID, languageID, err)
	}
	return res.RowsAffected()
}

// ExistingKeyIDs returns the subset of keyIDs that already have a row in the language.
func (r *TranslationRepository) ExistingKeyIDs(ctx context.Context, languageID int64, keyIDs []int64) (map[int64]struct{}, error) {
	existing := make(map[int64]struct{})
	if len(keyIDs) == 0 {
		return existing, nil
	}
	query, args, err := psql.Select("key_id").
		From("translations").
		Where(squirrel.Eq{"language_id": languageID, "key_id": keyIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing keys query: %w", err)
	}
	var ids []int64
	if err := conn(ctx, r.db).SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list existing translations for language %d: %w", languageID, err)
	}
	for _, id := range ids {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// BaselineTexts resolves the source text of each key: the baseline language row
// when it has non-blank text, otherwise the key description.
func (r *TranslationRepository) BaselineTexts(ctx context.Context, baselineLanguageID int64, keyIDs []int64) ([]models.BaselineText, error) {
	if len(keyIDs) == 0 {
		return nil, nil
	}
	query, args, err := psql.Select("k.id AS key_id", "k.key_name", baselineExpr+" AS baseline_text").
		From("translation_keys k").
		LeftJoin("translations b ON b.key_id = k.id AND b.language_id = ?", baselineLanguageID).
		Where(squirrel.Eq{"k.id": keyIDs}).
		OrderBy("k.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build baseline query: %w", err)
	}
	var texts []models.BaselineText
	if err := conn(ctx, r.db).SelectContext(ctx, &texts, query, args...); err != nil {
		return nil, fmt.Errorf("resolve baseline texts: %w", err)
	}
	return texts, nil
}

// MatrixFilter narrows a translation matrix read.
type MatrixFilter struct {
	BaselineLanguageID int64
	TargetLanguageID   int64
	KeyIDs             []int64
	Category           string
}

// ListMatrix returns each key with its baseline text, target translation and confirmation state.
func (r *TranslationRepository) ListMatrix(ctx context.Context, filter MatrixFilter) ([]models.TranslationMatrixRow, error) {
	builder := psql.Select(
		"k.id AS key_id",
		"k.key_name",
		"k.category",
		baselineExpr+" AS baseline_text",
		"t.id AS translation_id",
		"t.translation_text AS target_text",
		"(c.id IS NOT NULL) AS has_confirmation",
	).
		From("translation_keys k").
		LeftJoin("translations b ON b.key_id = k.id AND b.language_id = ?", filter.BaselineLanguageID).
		LeftJoin("translations t ON t.key_id = k.id AND t.language_id = ?", filter.TargetLanguageID).
		LeftJoin("translation_confirmations c ON c.key_id = k.id AND c.language_id = ?", filter.TargetLanguageID).
		OrderBy("k.id ASC")
	if len(filter.KeyIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"k.id": filter.KeyIDs})
	}
	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"k.category": filter.Category})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build matrix query: %w", err)
	}
	var rows []models.TranslationMatrixRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list translation matrix: %w", err)
	}
	return rows, nil
}
