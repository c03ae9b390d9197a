package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

const (
	defaultIssueLimit = 100
	maxIssueLimit     = 500

	issueStatsPattern = "translation_issues:stats:*"

	// DefaultActor stamps transitions when the caller did not identify itself.
	DefaultActor = "system"
)

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type issueRepository interface {
	List(ctx context.Context, filter models.IssueFilter) ([]models.TranslationIssueDetail, int, error)
	Breakdown(ctx context.Context, languageID *int64) (models.IssueBreakdown, error)
	Resolve(ctx context.Context, selector models.IssueSelector, actor string, at time.Time) (int64, error)
	Unresolve(ctx context.Context, selector models.IssueSelector, at time.Time) ([]models.IssuePair, error)
	Delete(ctx context.Context, selector models.IssueSelector) (int64, error)
	CountUnresolved(ctx context.Context, keyID, languageID int64) (int, error)
}

type approvalRepository interface {
	LockForUpdate(ctx context.Context, keyID, languageID int64) (*models.Translation, error)
	SetApproved(ctx context.Context, keyID, languageID int64, approved bool, at time.Time) (int64, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Invalidate(ctx context.Context, pattern string)
}

// IssueService owns the translation issue lifecycle and its approval cascades.
type IssueService struct {
	issues       issueRepository
	translations approvalRepository
	tx           txRunner
	cache        statsCache
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewIssueService constructs the service. cache and metrics may be nil.
func NewIssueService(issues issueRepository, translations approvalRepository, tx txRunner, cache statsCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *IssueService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IssueService{
		issues:       issues,
		translations: translations,
		tx:           tx,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// IssueStatsKey is the cache key for backlog statistics of one language, or all.
func IssueStatsKey(languageID *int64) string {
	if languageID == nil {
		return "translation_issues:stats:all"
	}
	return fmt.Sprintf("translation_issues:stats:%d", *languageID)
}

// ParseIssueFilter turns listing query parameters into a filter, applying defaults.
func ParseIssueFilter(query dto.IssueListQuery) (models.IssueFilter, error) {
	filter := models.IssueFilter{
		LanguageID: query.LanguageID,
		Category:   strings.TrimSpace(query.Category),
		Limit:      query.Limit,
		Offset:     query.Offset,
	}

	switch resolved := strings.ToLower(strings.TrimSpace(query.Resolved)); resolved {
	case "":
		unresolved := false
		filter.Resolved = &unresolved
	case "all":
	default:
		value, err := strconv.ParseBool(resolved)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "resolved must be true, false or all")
		}
		filter.Resolved = &value
	}

	if severity := strings.ToLower(strings.TrimSpace(query.Severity)); severity != "" {
		filter.Severity = models.IssueSeverity(severity)
		if !filter.Severity.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "severity must be one of critical, high, medium, low")
		}
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultIssueLimit
	}
	if filter.Limit > maxIssueLimit {
		filter.Limit = maxIssueLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

// List returns a page of issues plus backlog statistics. cacheHit reports whether the
// statistics came from cache.
func (s *IssueService) List(ctx context.Context, query dto.IssueListQuery) (*dto.IssueListResult, bool, error) {
	filter, err := ParseIssueFilter(query)
	if err != nil {
		return nil, false, err
	}

	issues, total, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to list translation issues")
	}
	if issues == nil {
		issues = []models.TranslationIssueDetail{}
	}

	stats, cacheHit, err := s.statistics(ctx, filter.LanguageID)
	if err != nil {
		return nil, false, err
	}

	return &dto.IssueListResult{
		Issues:     issues,
		Pagination: models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: total},
		Statistics: stats,
	}, cacheHit, nil
}

func (s *IssueService) statistics(ctx context.Context, languageID *int64) (models.IssueBreakdown, bool, error) {
	key := IssueStatsKey(languageID)
	var cached models.IssueBreakdown
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}
	stats, err := s.issues.Breakdown(ctx, languageID)
	if err != nil {
		return models.IssueBreakdown{}, false, appErrors.Internal(err, "failed to compute issue statistics")
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, stats, 0)
	}
	return stats, false, nil
}

// Apply performs a resolve, unresolve or delete transition. When the request targets a
// (key, language) pair the translation's approval flag is updated in the same transaction.
func (s *IssueService) Apply(ctx context.Context, req dto.IssueActionRequest, actor string) (*dto.IssueActionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	action := models.IssueAction(strings.ToLower(strings.TrimSpace(req.Action)))
	switch action {
	case models.IssueActionResolve, models.IssueActionUnresolve, models.IssueActionDelete:
	default:
		return nil, appErrors.Clone(appErrors.ErrInvalidAction, "action must be one of resolve, unresolve, delete")
	}

	selector := models.IssueSelector{IDs: req.IssueIDs}
	if len(selector.IDs) == 0 {
		selector.KeyID, selector.LanguageID = req.KeyID, req.LanguageID
	}
	if !selector.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "issue_ids or both key_id and language_id are required")
	}

	if by := strings.TrimSpace(req.ResolvedBy); by != "" {
		actor = by
	}
	if strings.TrimSpace(actor) == "" {
		actor = DefaultActor
	}

	result := &dto.IssueActionResult{Action: string(action)}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.applyInTx(ctx, action, selector, actor, result)
	})
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Internal(err, fmt.Sprintf("failed to %s translation issues", action))
	}

	if result.UpdatedCounts.Issues > 0 {
		if s.cache != nil {
			s.cache.Invalidate(ctx, issueStatsPattern)
		}
		s.metrics.RecordIssueTransition(string(action), result.UpdatedCounts.Issues)
	}
	s.logger.Info("translation issues transitioned",
		zap.String("action", string(action)),
		zap.String("actor", actor),
		zap.Int64("issues", result.UpdatedCounts.Issues),
		zap.Int64("translations", result.UpdatedCounts.Translations),
	)
	return result, nil
}

func (s *IssueService) applyInTx(ctx context.Context, action models.IssueAction, selector models.IssueSelector, actor string, result *dto.IssueActionResult) error {
	now := s.now()

	var translation *models.Translation
	if selector.ByPair() {
		var err error
		translation, err = s.translations.LockForUpdate(ctx, *selector.KeyID, *selector.LanguageID)
		if err != nil {
			return err
		}
	}

	var (
		count    int64
		err      error
		cascade  bool
		approved bool
	)
	switch action {
	case models.IssueActionResolve:
		count, err = s.issues.Resolve(ctx, selector, actor, now)
		result.ResolvedCount = &count
		cascade, approved = count > 0, true
	case models.IssueActionUnresolve:
		var reopened []models.IssuePair
		reopened, err = s.issues.Unresolve(ctx, selector, now)
		count = int64(len(reopened))
		result.UnresolvedCount = &count
		if err == nil {
			result.UpdatedCounts.Issues = count
			return s.revokeApprovals(ctx, reopened, now, result)
		}
	case models.IssueActionDelete:
		count, err = s.issues.Delete(ctx, selector)
		result.DeletedCount = &count
		if err == nil && selector.ByPair() && translation != nil {
			var open int
			open, err = s.issues.CountUnresolved(ctx, *selector.KeyID, *selector.LanguageID)
			cascade, approved = open == 0, true
		}
	}
	if err != nil {
		return err
	}
	result.UpdatedCounts.Issues = count

	if !cascade || translation == nil {
		return nil
	}
	affected, err := s.translations.SetApproved(ctx, translation.KeyID, translation.LanguageID, approved, now)
	if err != nil {
		return err
	}
	result.UpdatedCounts.Translations = affected
	result.TranslationApproved = &approved
	return nil
}

// revokeApprovals clears approval on every translation that regained an open
// issue, whichever way the issues were addressed. Pairs are locked in key order.
func (s *IssueService) revokeApprovals(ctx context.Context, reopened []models.IssuePair, now time.Time, result *dto.IssueActionResult) error {
	for _, pair := range distinctPairs(reopened) {
		translation, err := s.translations.LockForUpdate(ctx, pair.KeyID, pair.LanguageID)
		if err != nil {
			return err
		}
		if translation == nil {
			continue
		}
		affected, err := s.translations.SetApproved(ctx, pair.KeyID, pair.LanguageID, false, now)
		if err != nil {
			return err
		}
		result.UpdatedCounts.Translations += affected
	}
	if result.UpdatedCounts.Translations > 0 {
		revoked := false
		result.TranslationApproved = &revoked
	}
	return nil
}

func distinctPairs(pairs []models.IssuePair) []models.IssuePair {
	seen := make(map[models.IssuePair]struct{}, len(pairs))
	out := make([]models.IssuePair, 0, len(pairs))
	for _, pair := range pairs {
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KeyID != out[j].KeyID {
			return out[i].KeyID < out[j].KeyID
		}
		return out[i].LanguageID < out[j].LanguageID
	})
	return out
}
