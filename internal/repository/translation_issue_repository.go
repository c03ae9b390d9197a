package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/translation-qa-api/internal/models"
)

const severityRankExpr = "CASE ti.severity WHEN 'critical' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 WHEN 'low' THEN 4 ELSE 5 END"

var issueDetailColumns = []string{
	"ti.id", "ti.key_id", "ti.language_id", "ti.issue_type", "ti.issue_description", "ti.severity",
	"ti.is_resolved", "ti.resolved_at", "ti.resolved_by", "ti.auto_detected", "ti.verification_run_id",
	"ti.created_at", "ti.updated_at",
	"tk.key_name", "tk.category", "l.code AS language_code", "l.name AS language_name",
	"t.translation_text",
}

// TranslationIssueRepository persists translation issues and their lifecycle transitions.
type TranslationIssueRepository struct {
	db *sqlx.DB
}

// NewTranslationIssueRepository constructs the repository.
func NewTranslationIssueRepository(db *sqlx.DB) *TranslationIssueRepository {
	return &TranslationIssueRepository{db: db}
}

func issueScope(builder squirrel.SelectBuilder, filter models.IssueFilter) squirrel.SelectBuilder {
	builder = builder.
		From("translation_issues ti").
		Join("translation_keys tk ON tk.id = ti.key_id").
		Join("languages l ON l.id = ti.language_id")
	if filter.LanguageID != nil {
		builder = builder.Where(squirrel.Eq{"ti.language_id": *filter.LanguageID})
	}
	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"tk.category": filter.Category})
	}
	if filter.Severity != "" {
		builder = builder.Where(squirrel.Eq{"ti.severity": string(filter.Severity)})
	}
	if filter.Resolved != nil {
		builder = builder.Where(squirrel.Eq{"ti.is_resolved": *filter.Resolved})
	}
	return builder
}

// List returns one page of issues, most severe first then newest, plus the total match count.
// A non-positive limit returns every match.
func (r *TranslationIssueRepository) List(ctx context.Context, filter models.IssueFilter) ([]models.TranslationIssueDetail, int, error) {
	builder := issueScope(psql.Select(issueDetailColumns...), filter).
		LeftJoin("translations t ON t.key_id = ti.key_id AND t.language_id = ti.language_id").
		OrderBy(severityRankExpr, "ti.created_at DESC", "ti.id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list issues query: %w", err)
	}

	q := conn(ctx, r.db)
	var issues []models.TranslationIssueDetail
	if err := q.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list translation issues: %w", err)
	}

	countQuery, countArgs, err := issueScope(psql.Select("COUNT(*)"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count issues query: %w", err)
	}
	var total int
	if err := q.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count translation issues: %w", err)
	}
	return issues, total, nil
}

// Breakdown groups unresolved issues by severity and by key category.
func (r *TranslationIssueRepository) Breakdown(ctx context.Context, languageID *int64) (models.IssueBreakdown, error) {
	unresolved := false
	filter := models.IssueFilter{LanguageID: languageID, Resolved: &unresolved}
	breakdown := models.IssueBreakdown{Severity: map[string]int{}, Category: map[string]int{}}

	groups := []struct {
		column string
		target map[string]int
	}{
		{column: "ti.severity", target: breakdown.Severity},
		{column: "tk.category", target: breakdown.Category},
	}
	q := conn(ctx, r.db)
	for _, group := range groups {
		query, args, err := issueScope(psql.Select(group.column+" AS label", "COUNT(*) AS count"), filter).
			GroupBy(group.column).
			ToSql()
		if err != nil {
			return breakdown, fmt.Errorf("build breakdown query: %w", err)
		}
		var rows []models.BreakdownRow
		if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
			return breakdown, fmt.Errorf("issue breakdown by %s: %w", group.column, err)
		}
		for _, row := range rows {
			group.target[row.Label] = row.Count
		}
	}
	return breakdown, nil
}

func selectorPredicate(selector models.IssueSelector) squirrel.Sqlizer {
	if len(selector.IDs) > 0 {
		return squirrel.Eq{"id": selector.IDs}
	}
	return squirrel.Eq{"key_id": *selector.KeyID, "language_id": *selector.LanguageID}
}

// Resolve marks matching unresolved issues resolved and reports how many changed.
func (r *TranslationIssueRepository) Resolve(ctx context.Context, selector models.IssueSelector, actor string, at time.Time) (int64, error) {
	return r.update(ctx, psql.Update("translation_issues").
		Set("is_resolved", true).
		Set("resolved_at", at).
		Set("resolved_by", actor).
		Set("updated_at", at).
		Where(squirrel.Eq{"is_resolved": false}).
		Where(selectorPredicate(selector)))
}

// Unresolve reopens matching resolved issues, clearing the resolution stamp. It
// returns the pair of every reopened issue, one entry per issue.
func (r *TranslationIssueRepository) Unresolve(ctx context.Context, selector models.IssueSelector, at time.Time) ([]models.IssuePair, error) {
	query, args, err := psql.Update("translation_issues").
		Set("is_resolved", false).
		Set("resolved_at", nil).
		Set("resolved_by", nil).
		Set("updated_at", at).
		Where(squirrel.Eq{"is_resolved": true}).
		Where(selectorPredicate(selector)).
		Suffix("RETURNING key_id, language_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build issue unresolve: %w", err)
	}
	var pairs []models.IssuePair
	if err := conn(ctx, r.db).SelectContext(ctx, &pairs, query, args...); err != nil {
		return nil, fmt.Errorf("unresolve translation issues: %w", err)
	}
	return pairs, nil
}

func (r *TranslationIssueRepository) update(ctx context.Context, builder squirrel.UpdateBuilder) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build issue update: %w", err)
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update translation issues: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes matching issues regardless of state.
func (r *TranslationIssueRepository) Delete(ctx context.Context, selector models.IssueSelector) (int64, error) {
	query, args, err := psql.Delete("translation_issues").Where(selectorPredicate(selector)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build issue delete: %w", err)
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete translation issues: %w", err)
	}
	return res.RowsAffected()
}

// CountUnresolved counts open issues for a pair.
func (r *TranslationIssueRepository) CountUnresolved(ctx context.Context, keyID, languageID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM translation_issues WHERE key_id = $1 AND language_id = $2 AND is_resolved = FALSE`
	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, keyID, languageID); err != nil {
		return 0, fmt.Errorf("count unresolved issues %d/%d: %w", keyID, languageID, err)
	}
	return count, nil
}

// ExistsUnresolved reports whether an open issue of the given type exists for the pair.
func (r *TranslationIssueRepository) ExistsUnresolved(ctx context.Context, keyID, languageID int64, issueType string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM translation_issues
	WHERE key_id = $1 AND language_id = $2 AND issue_type = $3 AND is_resolved = FALSE)`
	var exists bool
	if err := conn(ctx, r.db).GetContext(ctx, &exists, query, keyID, languageID, issueType); err != nil {
		return false, fmt.Errorf("check open %s issue %d/%d: %w", issueType, keyID, languageID, err)
	}
	return exists, nil
}

// Create inserts an issue and fills its generated columns.
func (r *TranslationIssueRepository) Create(ctx context.Context, issue *models.TranslationIssue) error {
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now().UTC()
	}
	issue.UpdatedAt = issue.CreatedAt
	query, args, err := psql.Insert("translation_issues").
		Columns("key_id", "language_id", "issue_type", "issue_description", "severity",
			"is_resolved", "auto_detected", "verification_run_id", "created_at", "updated_at").
		Values(issue.KeyID, issue.LanguageID, issue.IssueType, issue.IssueDescription, string(issue.Severity),
			false, issue.AutoDetected, issue.VerificationRunID, issue.CreatedAt, issue.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build issue insert: %w", err)
	}
	if err := conn(ctx, r.db).QueryRowxContext(ctx, query, args...).Scan(&issue.ID); err != nil {
		return fmt.Errorf("create translation issue: %w", err)
	}
	issue.IsResolved = false
	return nil
}
