package models

import "time"

// IssueSeverity ranks how urgent a translation issue is.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityHigh     IssueSeverity = "high"
	SeverityMedium   IssueSeverity = "medium"
	SeverityLow      IssueSeverity = "low"
)

// Rank orders severities most severe first. Unknown values sort last.
func (s IssueSeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 4
	default:
		return 5
	}
}

// Valid reports whether the severity is one of the known levels.
func (s IssueSeverity) Valid() bool {
	return s.Rank() < 5
}

// Issue types raised by scan runs and regeneration.
const (
	IssueTypeMissing       = "missing_translation"
	IssueTypeEmpty         = "empty_translation"
	IssueTypeUntranslated  = "untranslated"
	IssueTypeLowAccuracy   = "low_accuracy"
	IssueTypeMachineReview = "machine_translation_review"
)

// IssueAction is a lifecycle transition requested by a caller.
type IssueAction string

const (
	IssueActionResolve   IssueAction = "resolve"
	IssueActionUnresolve IssueAction = "unresolve"
	IssueActionDelete    IssueAction = "delete"
)

// TranslationIssue is a flagged problem with one (key, language) pair.
type TranslationIssue struct {
	ID                int64         `db:"id" json:"id"`
	KeyID             int64         `db:"key_id" json:"key_id"`
	LanguageID        int64         `db:"language_id" json:"language_id"`
	IssueType         string        `db:"issue_type" json:"issue_type"`
	IssueDescription  string        `db:"issue_description" json:"issue_description"`
	Severity          IssueSeverity `db:"severity" json:"severity"`
	IsResolved        bool          `db:"is_resolved" json:"is_resolved"`
	ResolvedAt        *time.Time    `db:"resolved_at" json:"resolved_at,omitempty"`
	ResolvedBy        *string       `db:"resolved_by" json:"resolved_by,omitempty"`
	AutoDetected      bool          `db:"auto_detected" json:"auto_detected"`
	VerificationRunID *string       `db:"verification_run_id" json:"verification_run_id,omitempty"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// TranslationIssueDetail enriches an issue with key and language labels for listings.
type TranslationIssueDetail struct {
	TranslationIssue
	KeyName         string  `db:"key_name" json:"key_name"`
	Category        string  `db:"category" json:"category"`
	LanguageCode    string  `db:"language_code" json:"language_code"`
	LanguageName    string  `db:"language_name" json:"language_name"`
	TranslationText *string `db:"translation_text" json:"translation_text,omitempty"`
}

// IssueFilter constrains issue listings. A nil Resolved matches both states.
type IssueFilter struct {
	LanguageID *int64
	Category   string
	Severity   IssueSeverity
	Resolved   *bool
	Limit      int
	Offset     int
}

// IssueSelector addresses issues either by ID list or by (key, language) pair.
type IssueSelector struct {
	IDs        []int64
	KeyID      *int64
	LanguageID *int64
}

// ByPair reports whether the selector targets a complete (key, language) pair.
func (s IssueSelector) ByPair() bool {
	return s.KeyID != nil && s.LanguageID != nil
}

// Valid reports whether the selector addresses anything.
func (s IssueSelector) Valid() bool {
	return len(s.IDs) > 0 || s.ByPair()
}

// IssuePair names the translation an issue belongs to.
type IssuePair struct {
	KeyID      int64 `db:"key_id"`
	LanguageID int64 `db:"language_id"`
}

// IssueBreakdown is the backlog shape returned next to a listing.
type IssueBreakdown struct {
	Severity map[string]int `json:"severity_breakdown"`
	Category map[string]int `json:"category_breakdown"`
}

// BreakdownRow is one grouped count.
type BreakdownRow struct {
	Label string `db:"label"`
	Count int    `db:"count"`
}
