package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

type translationWriter interface {
	Get(ctx context.Context, keyID, languageID int64) (*models.Translation, error)
	Upsert(ctx context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (models.UpsertResult, error)
	Delete(ctx context.Context, keyID, languageID int64) (int64, error)
}

// TranslationService handles manual edits of translation text.
type TranslationService struct {
	translations translationWriter
	keys         keyFinder
	languages    languageFinder
	tx           txRunner
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewTranslationService constructs the service.
func NewTranslationService(translations translationWriter, keys keyFinder, languages languageFinder, tx txRunner, validate *validator.Validate, logger *zap.Logger) *TranslationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslationService{
		translations: translations,
		keys:         keys,
		languages:    languages,
		tx:           tx,
		validator:    validate,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Upsert writes manually edited text. Blank text removes the pair's translation.
func (s *TranslationService) Upsert(ctx context.Context, req dto.UpsertTranslationRequest, actor string) (*dto.UpsertTranslationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := ensurePairExists(ctx, s.keys, s.languages, req.KeyID, req.LanguageID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.TranslationText)
	if text == "" {
		deleted, err := s.translations.Delete(ctx, req.KeyID, req.LanguageID)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to delete translation")
		}
		s.logger.Info("translation cleared", zap.Int64("key_id", req.KeyID), zap.Int64("language_id", req.LanguageID), zap.String("actor", actor))
		return &dto.UpsertTranslationResult{Deleted: deleted > 0}, nil
	}

	approved := true
	if req.IsApproved != nil {
		approved = *req.IsApproved
	}

	result := &dto.UpsertTranslationResult{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		written, err := s.translations.Upsert(ctx, req.KeyID, req.LanguageID, text, approved, s.now())
		if err != nil {
			return err
		}
		translation, err := s.translations.Get(ctx, req.KeyID, req.LanguageID)
		if err != nil {
			return err
		}
		result.Translation = translation
		result.Created = written.Inserted
		return nil
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to save translation")
	}
	s.logger.Info("translation saved",
		zap.Int64("key_id", req.KeyID),
		zap.Int64("language_id", req.LanguageID),
		zap.Bool("created", result.Created),
		zap.String("actor", actor),
	)
	return result, nil
}
