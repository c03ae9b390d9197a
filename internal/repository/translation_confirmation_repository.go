package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/translation-qa-api/internal/models"
)

// TranslationConfirmationRepository persists manual override records.
type TranslationConfirmationRepository struct {
	db *sqlx.DB
}

// NewTranslationConfirmationRepository constructs the repository.
func NewTranslationConfirmationRepository(db *sqlx.DB) *TranslationConfirmationRepository {
	return &TranslationConfirmationRepository{db: db}
}

// Upsert writes the pair's single confirmation, replacing actor and reason on conflict.
func (r *TranslationConfirmationRepository) Upsert(ctx context.Context, confirmation *models.TranslationConfirmation) error {
	now := time.Now().UTC()
	const query = `INSERT INTO translation_confirmations (key_id, language_id, confirmed_by, confirmation_reason, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (key_id, language_id) DO UPDATE
	SET confirmed_by = EXCLUDED.confirmed_by, confirmation_reason = EXCLUDED.confirmation_reason, updated_at = EXCLUDED.updated_at
	RETURNING id, created_at, updated_at`
	row := conn(ctx, r.db).QueryRowxContext(ctx, query,
		confirmation.KeyID, confirmation.LanguageID, confirmation.ConfirmedBy, confirmation.ConfirmationReason, now)
	if err := row.Scan(&confirmation.ID, &confirmation.CreatedAt, &confirmation.UpdatedAt); err != nil {
		return fmt.Errorf("upsert confirmation %d/%d: %w", confirmation.KeyID, confirmation.LanguageID, err)
	}
	return nil
}

// Get fetches the pair's confirmation, returning sql.ErrNoRows when absent.
func (r *TranslationConfirmationRepository) Get(ctx context.Context, keyID, languageID int64) (*models.TranslationConfirmation, error) {
	const query = `SELECT id, key_id, language_id, confirmed_by, confirmation_reason, created_at, updated_at
	FROM translation_confirmations WHERE key_id = $1 AND language_id = $2`
	var confirmation models.TranslationConfirmation
	if err := conn(ctx, r.db).GetContext(ctx, &confirmation, query, keyID, languageID); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// List returns confirmations newest first, optionally for one language.
func (r *TranslationConfirmationRepository) List(ctx context.Context, languageID *int64) ([]models.ConfirmationDetail, error) {
	builder := psql.Select(
		"c.id", "c.key_id", "c.language_id", "c.confirmed_by", "c.confirmation_reason", "c.created_at", "c.updated_at",
		"tk.key_name", "l.code AS language_code",
	).
		From("translation_confirmations c").
		Join("translation_keys tk ON tk.id = c.key_id").
		Join("languages l ON l.id = c.language_id").
		OrderBy("c.updated_at DESC", "c.id DESC")
	if languageID != nil {
		builder = builder.Where(squirrel.Eq{"c.language_id": *languageID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list confirmations query: %w", err)
	}
	var confirmations []models.ConfirmationDetail
	if err := conn(ctx, r.db).SelectContext(ctx, &confirmations, query, args...); err != nil {
		return nil, fmt.Errorf("list confirmations: %w", err)
	}
	return confirmations, nil
}

// Delete removes the pair's confirmation.
func (r *TranslationConfirmationRepository) Delete(ctx context.Context, keyID, languageID int64) (int64, error) {
	const query = `DELETE FROM translation_confirmations WHERE key_id = $1 AND language_id = $2`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, keyID, languageID)
	if err != nil {
		return 0, fmt.Errorf("delete confirmation %d/%d: %w", keyID, languageID, err)
	}
	return res.RowsAffected()
}
