package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

const (
	overrideActorPrefix   = "override:"
	defaultOverrideReason = "Manually confirmed"
)

type keyFinder interface {
	FindByID(ctx context.Context, id int64) (*models.TranslationKey, error)
}

type languageFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Language, error)
}

type confirmationRepository interface {
	Upsert(ctx context.Context, confirmation *models.TranslationConfirmation) error
	List(ctx context.Context, languageID *int64) ([]models.ConfirmationDetail, error)
	Delete(ctx context.Context, keyID, languageID int64) (int64, error)
}

type pairIssueResolver interface {
	Resolve(ctx context.Context, selector models.IssueSelector, actor string, at time.Time) (int64, error)
}

// ConfirmationService records manual overrides that silence issues and approve a translation
// without changing its text.
type ConfirmationService struct {
	confirmations confirmationRepository
	issues        pairIssueResolver
	translations  approvalRepository
	keys          keyFinder
	languages     languageFinder
	tx            txRunner
	cache         statsCache
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
}

// ConfirmationDeps groups the collaborators of ConfirmationService.
type ConfirmationDeps struct {
	Confirmations confirmationRepository
	Issues        pairIssueResolver
	Translations  approvalRepository
	Keys          keyFinder
	Languages     languageFinder
	Tx            txRunner
	Cache         statsCache
	Metrics       *MetricsService
}

// NewConfirmationService constructs the service.
func NewConfirmationService(deps ConfirmationDeps, validate *validator.Validate, logger *zap.Logger) *ConfirmationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfirmationService{
		confirmations: deps.Confirmations,
		issues:        deps.Issues,
		translations:  deps.Translations,
		keys:          deps.Keys,
		languages:     deps.Languages,
		tx:            deps.Tx,
		cache:         deps.Cache,
		metrics:       deps.Metrics,
		validator:     validate,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Confirm resolves every open issue of the pair, approves its translation when one exists
// and upserts the pair's confirmation, all in one transaction.
func (s *ConfirmationService) Confirm(ctx context.Context, req dto.ConfirmTranslationRequest, actor string) (*dto.ConfirmTranslationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := ensurePairExists(ctx, s.keys, s.languages, req.KeyID, req.LanguageID); err != nil {
		return nil, err
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = DefaultActor
	}
	reason := strings.TrimSpace(req.OverrideReason)
	if reason == "" {
		reason = defaultOverrideReason
	}

	result := &dto.ConfirmTranslationResult{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.now()
		translation, err := s.translations.LockForUpdate(ctx, req.KeyID, req.LanguageID)
		if err != nil {
			return err
		}

		keyID, languageID := req.KeyID, req.LanguageID
		resolved, err := s.issues.Resolve(ctx, models.IssueSelector{KeyID: &keyID, LanguageID: &languageID}, overrideActorPrefix+actor, now)
		if err != nil {
			return err
		}
		result.ResolvedIssuesCount = resolved

		if translation != nil {
			if _, err := s.translations.SetApproved(ctx, req.KeyID, req.LanguageID, true, now); err != nil {
				return err
			}
			translation.IsApproved = true
			translation.UpdatedAt = now
			result.TranslationApproved = true
			result.TranslationDetails = translation
		}

		result.Confirmation = models.TranslationConfirmation{
			KeyID:              req.KeyID,
			LanguageID:         req.LanguageID,
			ConfirmedBy:        actor,
			ConfirmationReason: reason,
		}
		return s.confirmations.Upsert(ctx, &result.Confirmation)
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to confirm translation")
	}

	if result.ResolvedIssuesCount > 0 {
		if s.cache != nil {
			s.cache.Invalidate(ctx, issueStatsPattern)
		}
		s.metrics.RecordIssueTransition("confirm", result.ResolvedIssuesCount)
	}
	s.logger.Info("translation confirmed",
		zap.Int64("key_id", req.KeyID),
		zap.Int64("language_id", req.LanguageID),
		zap.String("actor", actor),
		zap.Int64("resolved_issues", result.ResolvedIssuesCount),
		zap.Bool("translation_approved", result.TranslationApproved),
	)
	return result, nil
}

// List returns confirmations, optionally for one language.
func (s *ConfirmationService) List(ctx context.Context, languageID *int64) ([]models.ConfirmationDetail, error) {
	confirmations, err := s.confirmations.List(ctx, languageID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list confirmations")
	}
	if confirmations == nil {
		confirmations = []models.ConfirmationDetail{}
	}
	return confirmations, nil
}

// Remove deletes a pair's confirmation. Approval and issues are left as they are.
func (s *ConfirmationService) Remove(ctx context.Context, keyID, languageID int64) error {
	if keyID <= 0 || languageID <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "key_id and language_id must be positive")
	}
	deleted, err := s.confirmations.Delete(ctx, keyID, languageID)
	if err != nil {
		return appErrors.Internal(err, "failed to delete confirmation")
	}
	if deleted == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "confirmation not found")
	}
	return nil
}

func ensurePairExists(ctx context.Context, keys keyFinder, languages languageFinder, keyID, languageID int64) error {
	if _, err := keys.FindByID(ctx, keyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "translation key not found")
		}
		return appErrors.Internal(err, "failed to load translation key")
	}
	if _, err := languages.FindByID(ctx, languageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "language not found")
		}
		return appErrors.Internal(err, "failed to load language")
	}
	return nil
}
