package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

const (
	skipReasonEmptyBaseline = "empty baseline text"
	skipReasonExisting      = "translation already exists"
)

type regenerationStore interface {
	BaselineTexts(ctx context.Context, baselineLanguageID int64, keyIDs []int64) ([]models.BaselineText, error)
	ExistingKeyIDs(ctx context.Context, languageID int64, keyIDs []int64) (map[int64]struct{}, error)
	Upsert(ctx context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (models.UpsertResult, error)
	InsertIfAbsent(ctx context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (bool, error)
}

type keyCategoryLister interface {
	IDsByCategory(ctx context.Context, category string) ([]int64, error)
}

type languageDirectory interface {
	FindByID(ctx context.Context, id int64) (*models.Language, error)
	FindByCode(ctx context.Context, code string) (*models.Language, error)
}

type issueWriter interface {
	ExistsUnresolved(ctx context.Context, keyID, languageID int64, issueType string) (bool, error)
	Create(ctx context.Context, issue *models.TranslationIssue) error
}

// RegenerationConfig tunes the pipeline.
type RegenerationConfig struct {
	BaselineLanguageCode string
	AutoApprove          bool
	Concurrency          int
}

// RegenerationDeps groups the collaborators of RegenerationService.
type RegenerationDeps struct {
	Translations regenerationStore
	Keys         keyCategoryLister
	Languages    languageDirectory
	Issues       issueWriter
	Translator   Translator
	Tx           txRunner
	Cache        statsCache
	Metrics      *MetricsService
}

// RegenerationService derives target-language translations from baseline text.
type RegenerationService struct {
	deps      RegenerationDeps
	cfg       RegenerationConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRegenerationService constructs the pipeline.
func NewRegenerationService(deps RegenerationDeps, cfg RegenerationConfig, validate *validator.Validate, logger *zap.Logger) *RegenerationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Translator == nil {
		deps.Translator = NewDictionaryTranslator(nil)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.BaselineLanguageCode == "" {
		cfg.BaselineLanguageCode = "en"
	}
	return &RegenerationService{
		deps:      deps,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type languageOutcome struct {
	result  dto.LanguageRegeneration
	skipped []dto.SkippedItem
	reviews int
}

// Regenerate translates every requested key into every target language. Without
// Overwrite existing pairs are skipped; with it they are replaced. Each pair is written
// in its own transaction.
func (s *RegenerationService) Regenerate(ctx context.Context, req dto.RegenerateRequest) (*dto.RegenerateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	keyIDs, err := s.resolveKeyIDs(ctx, req)
	if err != nil {
		return nil, err
	}

	baseline, err := s.deps.Languages.FindByCode(ctx, s.cfg.BaselineLanguageCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("baseline language %q not found", s.cfg.BaselineLanguageCode))
		}
		return nil, appErrors.Internal(err, "failed to load baseline language")
	}

	targets, err := s.resolveTargets(ctx, req.TargetLanguages, baseline.ID)
	if err != nil {
		return nil, err
	}

	result := &dto.RegenerateResult{
		Results:  make([]dto.LanguageRegeneration, 0, len(targets)),
		Skipped:  []dto.SkippedItem{},
		Approved: s.cfg.AutoApprove,
	}
	if len(keyIDs) == 0 {
		for _, target := range targets {
			result.Results = append(result.Results, dto.LanguageRegeneration{LanguageID: target.ID, LanguageName: target.Name, Translations: []dto.RegeneratedItem{}})
		}
		return result, nil
	}

	baselines, err := s.deps.Translations.BaselineTexts(ctx, baseline.ID, keyIDs)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to resolve baseline texts")
	}

	outcomes := make([]languageOutcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, target := range targets {
		g.Go(func() error {
			outcome, err := s.regenerateLanguage(gctx, target, baselines, req.Overwrite)
			outcomes[i] = outcome
			if err != nil {
				return fmt.Errorf("regenerate %s: %w", target.Name, err)
			}
			return nil
		})
	}
	waitErr := g.Wait()

	reviews := 0
	for _, outcome := range outcomes {
		reviews += outcome.reviews
	}
	if reviews > 0 && s.deps.Cache != nil {
		s.deps.Cache.Invalidate(ctx, issueStatsPattern)
	}
	if waitErr != nil {
		return nil, appErrors.Internal(waitErr, "failed to regenerate translations")
	}

	for _, outcome := range outcomes {
		result.Results = append(result.Results, outcome.result)
		result.Skipped = append(result.Skipped, outcome.skipped...)
		result.TotalTranslations += len(outcome.result.Translations)
	}

	s.logger.Info("translations regenerated",
		zap.Int("keys", len(keyIDs)),
		zap.Int("languages", len(targets)),
		zap.Int("written", result.TotalTranslations),
		zap.Int("skipped", len(result.Skipped)),
		zap.Bool("overwrite", req.Overwrite),
		zap.Bool("auto_approve", s.cfg.AutoApprove),
	)
	return result, nil
}

func (s *RegenerationService) resolveKeyIDs(ctx context.Context, req dto.RegenerateRequest) ([]int64, error) {
	if len(req.KeyIDs) > 0 {
		seen := make(map[int64]struct{}, len(req.KeyIDs))
		ids := make([]int64, 0, len(req.KeyIDs))
		for _, id := range req.KeyIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		return ids, nil
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "key_ids or category is required")
	}
	ids, err := s.deps.Keys.IDsByCategory(ctx, category)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list keys for category")
	}
	return ids, nil
}

func (s *RegenerationService) resolveTargets(ctx context.Context, requested []dto.TargetLanguage, baselineID int64) ([]models.Language, error) {
	seen := make(map[int64]struct{}, len(requested))
	targets := make([]models.Language, 0, len(requested))
	for _, target := range requested {
		if target.ID == baselineID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "the baseline language cannot be regenerated")
		}
		if _, ok := seen[target.ID]; ok {
			continue
		}
		seen[target.ID] = struct{}{}

		language, err := s.deps.Languages.FindByID(ctx, target.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("language %d not found", target.ID))
			}
			return nil, appErrors.Internal(err, "failed to load target language")
		}
		if name := strings.TrimSpace(target.Name); name != "" {
			language.Name = name
		}
		targets = append(targets, *language)
	}
	return targets, nil
}

func (s *RegenerationService) regenerateLanguage(ctx context.Context, target models.Language, baselines []models.BaselineText, overwrite bool) (languageOutcome, error) {
	outcome := languageOutcome{
		result:  dto.LanguageRegeneration{LanguageID: target.ID, LanguageName: target.Name, Translations: []dto.RegeneratedItem{}},
		skipped: []dto.SkippedItem{},
	}

	existing := map[int64]struct{}{}
	if !overwrite {
		keyIDs := make([]int64, 0, len(baselines))
		for _, b := range baselines {
			keyIDs = append(keyIDs, b.KeyID)
		}
		var err error
		if existing, err = s.deps.Translations.ExistingKeyIDs(ctx, target.ID, keyIDs); err != nil {
			return outcome, err
		}
	}

	for _, baseline := range baselines {
		skip := func(reason string) {
			outcome.skipped = append(outcome.skipped, dto.SkippedItem{KeyID: baseline.KeyID, Key: baseline.KeyName, LanguageID: target.ID, Reason: reason})
		}
		text := strings.TrimSpace(baseline.Text)
		if text == "" {
			skip(skipReasonEmptyBaseline)
			continue
		}
		if _, ok := existing[baseline.KeyID]; ok {
			skip(skipReasonExisting)
			continue
		}

		translated := s.deps.Translator.Translate(text, target.Name)
		written, opened := false, false
		err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
			now := s.now()
			if overwrite {
				if _, err := s.deps.Translations.Upsert(ctx, baseline.KeyID, target.ID, translated, s.cfg.AutoApprove, now); err != nil {
					return err
				}
				written = true
			} else {
				inserted, err := s.deps.Translations.InsertIfAbsent(ctx, baseline.KeyID, target.ID, translated, s.cfg.AutoApprove, now)
				if err != nil {
					return err
				}
				written = inserted
			}
			if !written || s.cfg.AutoApprove {
				return nil
			}
			var err error
			opened, err = s.openReviewIssue(ctx, baseline.KeyID, target.ID, now)
			return err
		})
		if err != nil {
			return outcome, err
		}
		if opened {
			outcome.reviews++
		}
		if !written {
			skip(skipReasonExisting)
			continue
		}
		outcome.result.Translations = append(outcome.result.Translations, dto.RegeneratedItem{
			KeyID:       baseline.KeyID,
			Key:         baseline.KeyName,
			Original:    text,
			Translation: translated,
		})
	}

	s.deps.Metrics.RecordRegenerated(target.Name, len(outcome.result.Translations))
	return outcome, nil
}

func (s *RegenerationService) openReviewIssue(ctx context.Context, keyID, languageID int64, now time.Time) (bool, error) {
	if s.deps.Issues == nil {
		return false, nil
	}
	exists, err := s.deps.Issues.ExistsUnresolved(ctx, keyID, languageID, models.IssueTypeMachineReview)
	if err != nil || exists {
		return false, err
	}
	issue := &models.TranslationIssue{
		KeyID:            keyID,
		LanguageID:       languageID,
		IssueType:        models.IssueTypeMachineReview,
		IssueDescription: "Machine-generated translation awaiting review",
		Severity:         models.SeverityLow,
		AutoDetected:     true,
		CreatedAt:        now,
	}
	if err := s.deps.Issues.Create(ctx, issue); err != nil {
		return false, err
	}
	return true, nil
}
