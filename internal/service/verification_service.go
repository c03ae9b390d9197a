package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	"github.com/noah-isme/translation-qa-api/internal/repository"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

const lowAccuracyHighSeverityBelow = 40

// languageNamesByCode resolves the scorer's language name when only a code is supplied.
var languageNamesByCode = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"it": "Italian",
	"id": "Indonesian",
}

type matrixReader interface {
	ListMatrix(ctx context.Context, filter repository.MatrixFilter) ([]models.TranslationMatrixRow, error)
}

// DefaultIssueThreshold is the scan cut-off used when none is configured.
const DefaultIssueThreshold = 70

// VerificationConfig tunes scan runs. A nil IssueThreshold selects
// DefaultIssueThreshold; zero disables low-accuracy flagging.
type VerificationConfig struct {
	BaselineLanguageCode string
	IssueThreshold       *int
}

// VerificationDeps groups the collaborators of VerificationService.
type VerificationDeps struct {
	Scorer    *QualityScorer
	Matrix    matrixReader
	Languages languageDirectory
	Issues    issueWriter
	Tx        txRunner
	Cache     statsCache
	Metrics   *MetricsService
}

// VerificationService scores single candidates and runs scans that file issues.
type VerificationService struct {
	deps      VerificationDeps
	cfg       VerificationConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	newRunID  func() string
}

// NewVerificationService constructs the service.
func NewVerificationService(deps VerificationDeps, cfg VerificationConfig, validate *validator.Validate, logger *zap.Logger) *VerificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Scorer == nil {
		deps.Scorer = NewQualityScorer(nil)
	}
	if t := cfg.IssueThreshold; t == nil || *t < 0 || *t > 100 {
		threshold := DefaultIssueThreshold
		cfg.IssueThreshold = &threshold
	}
	if cfg.BaselineLanguageCode == "" {
		cfg.BaselineLanguageCode = "en"
	}
	return &VerificationService{
		deps:      deps,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newRunID:  uuid.NewString,
	}
}

// Verify scores one candidate translation.
func (s *VerificationService) Verify(ctx context.Context, req dto.VerifyRequest) (*dto.VerifyResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	language, err := s.languageName(ctx, req.TargetLanguage, req.LanguageCode)
	if err != nil {
		return nil, err
	}

	verification := s.deps.Scorer.Verify(req.OriginalText, req.TranslatedText, language)
	status := verification.Status()
	s.deps.Metrics.RecordVerification(status)

	return &dto.VerifyResult{
		AccuracyScore:      verification.Score,
		Suggestions:        verification.Suggestions,
		VerificationStatus: status,
		HasReference:       verification.HasReference,
		TargetLanguage:     language,
	}, nil
}

func (s *VerificationService) languageName(ctx context.Context, name, code string) (string, error) {
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "target_language or language_code is required")
	}
	if known, ok := languageNamesByCode[code]; ok {
		return known, nil
	}
	if s.deps.Languages == nil {
		return "", appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("language %q not found", code))
	}
	language, err := s.deps.Languages.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("language %q not found", code))
		}
		return "", appErrors.Internal(err, "failed to load language")
	}
	return language.Name, nil
}

type scanFinding struct {
	issueType   string
	severity    models.IssueSeverity
	score       int
	description string
}

// Scan scores every translation of one language against its baseline text and files an
// auto-detected issue per problem, all tagged with one verification run id. Pairs holding a
// confirmation are skipped and an open issue of the same type is never duplicated.
func (s *VerificationService) Scan(ctx context.Context, req dto.ScanRequest) (*dto.ScanResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	baseline, err := s.deps.Languages.FindByCode(ctx, s.cfg.BaselineLanguageCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("baseline language %q not found", s.cfg.BaselineLanguageCode))
		}
		return nil, appErrors.Internal(err, "failed to load baseline language")
	}
	if req.LanguageID == baseline.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "the baseline language cannot be scanned")
	}
	target, err := s.deps.Languages.FindByID(ctx, req.LanguageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "language not found")
		}
		return nil, appErrors.Internal(err, "failed to load language")
	}

	threshold := *s.cfg.IssueThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	rows, err := s.deps.Matrix.ListMatrix(ctx, repository.MatrixFilter{
		BaselineLanguageID: baseline.ID,
		TargetLanguageID:   target.ID,
		KeyIDs:             req.KeyIDs,
		Category:           strings.TrimSpace(req.Category),
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load translations for scan")
	}

	runID := s.newRunID()
	result := &dto.ScanResult{
		VerificationRunID: runID,
		LanguageID:        target.ID,
		IssuesByType:      map[string]int{},
		Findings:          []dto.ScanFinding{},
	}

	for _, row := range rows {
		if row.HasConfirmation {
			result.SkippedConfirmed++
			continue
		}
		if strings.TrimSpace(row.BaselineText) == "" {
			continue
		}
		result.Checked++

		finding, ok := s.evaluate(row, target.Name, threshold)
		if !ok {
			continue
		}
		created, err := s.fileIssue(ctx, row.KeyID, target.ID, runID, finding)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to record scan issue")
		}
		if !created {
			continue
		}
		result.IssuesCreated++
		result.IssuesByType[finding.issueType]++
		result.Findings = append(result.Findings, dto.ScanFinding{
			KeyID:     row.KeyID,
			Key:       row.KeyName,
			IssueType: finding.issueType,
			Severity:  string(finding.severity),
			Score:     finding.score,
		})
	}

	if result.IssuesCreated > 0 && s.deps.Cache != nil {
		s.deps.Cache.Invalidate(ctx, issueStatsPattern)
	}
	s.logger.Info("verification run completed",
		zap.String("verification_run_id", runID),
		zap.Int64("language_id", target.ID),
		zap.Int("checked", result.Checked),
		zap.Int("skipped_confirmed", result.SkippedConfirmed),
		zap.Int("issues_created", result.IssuesCreated),
	)
	return result, nil
}

func (s *VerificationService) evaluate(row models.TranslationMatrixRow, language string, threshold int) (scanFinding, bool) {
	if row.TranslationID == nil || row.TargetText == nil {
		return scanFinding{
			issueType:   models.IssueTypeMissing,
			severity:    models.SeverityCritical,
			description: fmt.Sprintf("No %s translation for %s", language, row.KeyName),
		}, true
	}

	verification := s.deps.Scorer.Verify(row.BaselineText, *row.TargetText, language)
	s.deps.Metrics.RecordVerification(verification.Status())

	switch {
	case strings.TrimSpace(*row.TargetText) == "":
		return scanFinding{
			issueType:   models.IssueTypeEmpty,
			severity:    models.SeverityCritical,
			description: fmt.Sprintf("%s translation for %s is empty", language, row.KeyName),
		}, true
	case strings.TrimSpace(*row.TargetText) == strings.TrimSpace(row.BaselineText):
		return scanFinding{
			issueType:   models.IssueTypeUntranslated,
			severity:    models.SeverityHigh,
			score:       verification.Score,
			description: fmt.Sprintf("%s translation for %s is identical to the baseline text", language, row.KeyName),
		}, true
	case verification.Score < threshold:
		severity := models.SeverityMedium
		if verification.Score < lowAccuracyHighSeverityBelow {
			severity = models.SeverityHigh
		}
		description := fmt.Sprintf("Accuracy score %d is below %d", verification.Score, threshold)
		if len(verification.Suggestions) > 0 {
			description += ": " + strings.Join(verification.Suggestions, "; ")
		}
		return scanFinding{
			issueType:   models.IssueTypeLowAccuracy,
			severity:    severity,
			score:       verification.Score,
			description: description,
		}, true
	}
	return scanFinding{}, false
}

func (s *VerificationService) fileIssue(ctx context.Context, keyID, languageID int64, runID string, finding scanFinding) (bool, error) {
	created := false
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.deps.Issues.ExistsUnresolved(ctx, keyID, languageID, finding.issueType)
		if err != nil || exists {
			return err
		}
		issue := &models.TranslationIssue{
			KeyID:             keyID,
			LanguageID:        languageID,
			IssueType:         finding.issueType,
			IssueDescription:  finding.description,
			Severity:          finding.severity,
			AutoDetected:      true,
			VerificationRunID: &runID,
			CreatedAt:         s.now(),
		}
		if err := s.deps.Issues.Create(ctx, issue); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
