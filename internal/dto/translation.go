package dto

import "github.com/noah-isme/translation-qa-api/internal/models"

// TargetLanguage names a language to regenerate. Name is the display name the translator keys on.
type TargetLanguage struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name"`
}

// RegenerateRequest asks for machine translations of a key set.
// KeyIDs wins over Category when both are given. Overwrite selects force mode.
type RegenerateRequest struct {
	Category        string           `json:"category"`
	KeyIDs          []int64          `json:"key_ids" validate:"omitempty,dive,gt=0"`
	TargetLanguages []TargetLanguage `json:"target_languages" validate:"required,min=1,dive"`
	Overwrite       bool             `json:"overwrite"`
}

// RegeneratedItem is one written translation.
type RegeneratedItem struct {
	KeyID       int64  `json:"key_id"`
	Key         string `json:"key"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// SkippedItem is a pair left untouched.
type SkippedItem struct {
	KeyID      int64  `json:"key_id"`
	Key        string `json:"key"`
	LanguageID int64  `json:"language_id"`
	Reason     string `json:"reason"`
}

// LanguageRegeneration groups results for one target language.
type LanguageRegeneration struct {
	LanguageID   int64             `json:"language_id"`
	LanguageName string            `json:"language_name"`
	Translations []RegeneratedItem `json:"translations"`
}

// RegenerateResult is the pipeline output in request language order.
type RegenerateResult struct {
	Results           []LanguageRegeneration `json:"results"`
	Skipped           []SkippedItem          `json:"skipped"`
	TotalTranslations int                    `json:"total_translations"`
	Approved          bool                   `json:"approved"`
}

// VerifyRequest scores one candidate translation.
type VerifyRequest struct {
	OriginalText   string `json:"original_text" validate:"required"`
	TranslatedText string `json:"translated_text"`
	TargetLanguage string `json:"target_language"`
	LanguageCode   string `json:"language_code"`
}

// VerifyResult is the scorer output.
type VerifyResult struct {
	AccuracyScore      int      `json:"accuracy_score"`
	Suggestions        []string `json:"suggestions"`
	VerificationStatus string   `json:"verification_status"`
	HasReference       bool     `json:"has_reference"`
	TargetLanguage     string   `json:"target_language"`
}

// ScanRequest runs the scorer across stored translations of one language and files issues.
type ScanRequest struct {
	LanguageID int64   `json:"language_id" validate:"required,gt=0"`
	Category   string  `json:"category"`
	KeyIDs     []int64 `json:"key_ids" validate:"omitempty,dive,gt=0"`
	Threshold  *int    `json:"threshold" validate:"omitempty,min=0,max=100"`
}

// ScanResult summarises a verification run.
type ScanResult struct {
	VerificationRunID string         `json:"verification_run_id"`
	LanguageID        int64          `json:"language_id"`
	Checked           int            `json:"checked"`
	SkippedConfirmed  int            `json:"skipped_confirmed"`
	IssuesCreated     int            `json:"issues_created"`
	IssuesByType      map[string]int `json:"issues_by_type"`
	Findings          []ScanFinding  `json:"findings"`
}

// ScanFinding is one pair that produced an issue.
type ScanFinding struct {
	KeyID     int64  `json:"key_id"`
	Key       string `json:"key"`
	IssueType string `json:"issue_type"`
	Severity  string `json:"severity"`
	Score     int    `json:"score"`
}

// UpsertTranslationRequest is a manual edit. Empty text deletes the row.
type UpsertTranslationRequest struct {
	KeyID           int64  `json:"key_id" validate:"required,gt=0"`
	LanguageID      int64  `json:"language_id" validate:"required,gt=0"`
	TranslationText string `json:"translation_text"`
	IsApproved      *bool  `json:"is_approved"`
}

// UpsertTranslationResult reports the stored row, or Deleted for an emptied pair.
type UpsertTranslationResult struct {
	Translation *models.Translation `json:"translation,omitempty"`
	Created     bool                `json:"created"`
	Deleted     bool                `json:"deleted"`
}
