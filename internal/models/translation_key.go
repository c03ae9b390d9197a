package models

import "time"

// TranslationKey is a namespaced identifier for one translatable string.
// Description doubles as the baseline text when the baseline language has no row.
type TranslationKey struct {
	ID          int64     `db:"id" json:"id"`
	KeyName     string    `db:"key_name" json:"key_name"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
