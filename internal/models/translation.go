package models

import "time"

// Translation is the text of one key in one language. (key_id, language_id) is unique.
type Translation struct {
	ID              int64     `db:"id" json:"id"`
	KeyID           int64     `db:"key_id" json:"key_id"`
	LanguageID      int64     `db:"language_id" json:"language_id"`
	TranslationText string    `db:"translation_text" json:"translation_text"`
	IsApproved      bool      `db:"is_approved" json:"is_approved"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BaselineText is the resolved source text for a key.
type BaselineText struct {
	KeyID   int64  `db:"key_id"`
	KeyName string `db:"key_name"`
	Text    string `db:"baseline_text"`
}

// TranslationMatrixRow joins a key with its baseline and target language state.
type TranslationMatrixRow struct {
	KeyID           int64   `db:"key_id"`
	KeyName         string  `db:"key_name"`
	Category        string  `db:"category"`
	BaselineText    string  `db:"baseline_text"`
	TranslationID   *int64  `db:"translation_id"`
	TargetText      *string `db:"target_text"`
	HasConfirmation bool    `db:"has_confirmation"`
}

// UpsertResult reports the row written by an upsert.
type UpsertResult struct {
	ID       int64 `db:"id"`
	Inserted bool  `db:"inserted"`
}
