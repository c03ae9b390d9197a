package dto

import "github.com/noah-isme/translation-qa-api/internal/models"

// ConfirmTranslationRequest records a manual override for a pair.
type ConfirmTranslationRequest struct {
	KeyID          int64  `json:"key_id" validate:"required,gt=0"`
	LanguageID     int64  `json:"language_id" validate:"required,gt=0"`
	OverrideReason string `json:"override_reason" validate:"max=2000"`
}

// ConfirmTranslationResult summarises the cascade a confirmation triggered.
type ConfirmTranslationResult struct {
	ResolvedIssuesCount int64                          `json:"resolved_issues_count"`
	TranslationApproved bool                           `json:"translation_approved"`
	TranslationDetails  *models.Translation            `json:"translation_details"`
	Confirmation        models.TranslationConfirmation `json:"confirmation"`
}
