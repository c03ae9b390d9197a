package dto

import "github.com/noah-isme/translation-qa-api/internal/models"

// IssueActionRequest drives a resolve, unresolve or delete transition.
// Issues are addressed by IssueIDs, or by KeyID plus LanguageID when no IDs are given.
type IssueActionRequest struct {
	Action     string  `json:"action" validate:"required"`
	IssueIDs   []int64 `json:"issue_ids" validate:"omitempty,dive,gt=0"`
	KeyID      *int64  `json:"key_id" validate:"omitempty,gt=0"`
	LanguageID *int64  `json:"language_id" validate:"omitempty,gt=0"`
	ResolvedBy string  `json:"resolved_by" validate:"max=255"`
}

// UpdatedCounts reports how many rows each table saw change.
type UpdatedCounts struct {
	Issues       int64 `json:"issues"`
	Translations int64 `json:"translations"`
}

// IssueActionResult reports the outcome of an issue transition. Only the count for the
// requested action is set.
type IssueActionResult struct {
	Action              string        `json:"action"`
	ResolvedCount       *int64        `json:"resolved_count,omitempty"`
	UnresolvedCount     *int64        `json:"unresolved_count,omitempty"`
	DeletedCount        *int64        `json:"deleted_count,omitempty"`
	TranslationApproved *bool         `json:"translation_approved,omitempty"`
	UpdatedCounts       UpdatedCounts `json:"updated_counts"`
}

// IssueListQuery mirrors the listing query string.
type IssueListQuery struct {
	LanguageID *int64 `form:"language_id"`
	Category   string `form:"category"`
	Severity   string `form:"severity"`
	Resolved   string `form:"resolved"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// IssueListResult is one page of issues plus the backlog shape.
type IssueListResult struct {
	Issues     []models.TranslationIssueDetail `json:"issues"`
	Pagination models.Pagination               `json:"pagination"`
	Statistics models.IssueBreakdown           `json:"statistics"`
}

// IssueExportQuery selects the export format and filters.
type IssueExportQuery struct {
	IssueListQuery
	Format string `form:"format"`
}
