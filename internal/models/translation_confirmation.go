package models

import "time"

// TranslationConfirmation is the manual override record for a (key, language) pair.
type TranslationConfirmation struct {
	ID                 int64     `db:"id" json:"id"`
	KeyID              int64     `db:"key_id" json:"key_id"`
	LanguageID         int64     `db:"language_id" json:"language_id"`
	ConfirmedBy        string    `db:"confirmed_by" json:"confirmed_by"`
	ConfirmationReason string    `db:"confirmation_reason" json:"confirmation_reason"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// ConfirmationDetail enriches a confirmation with key and language labels.
type ConfirmationDetail struct {
	TranslationConfirmation
	KeyName      string `db:"key_name" json:"key_name"`
	LanguageCode string `db:"language_code" json:"language_code"`
}
