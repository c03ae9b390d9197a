package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/repository"
	"github.com/noah-isme/translation-qa-api/internal/service"
	"github.com/noah-isme/translation-qa-api/pkg/cache"
	"github.com/noah-isme/translation-qa-api/pkg/config"
	"github.com/noah-isme/translation-qa-api/pkg/database"
	"github.com/noah-isme/translation-qa-api/pkg/export"
)

// Container holds the wired repositories and services shared by the API and the CLI.
type Container struct {
	DB      *sqlx.DB
	Cache   *repository.CacheRepository
	Metrics *service.MetricsService

	Issues        *service.IssueService
	Confirmations *service.ConfirmationService
	Regeneration  *service.RegenerationService
	Verification  *service.VerificationService
	Translations  *service.TranslationService
	Catalog       *service.CatalogService
	Export        *service.ExportService

	logger *zap.Logger
}

// New connects to Postgres (and Redis when issue statistics caching is enabled) and wires
// every service. A Redis outage only disables caching.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	dict, err := service.LoadDictionary(cfg.Translation.DictionaryFile)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{DB: db, Metrics: service.NewMetricsService(), logger: logger}

	var cacheRepo service.CacheRepository
	if cfg.IssueStats.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, issue statistics cache disabled", zap.Error(err))
		} else {
			c.Cache = repository.NewCacheRepository(client, logger)
			cacheRepo = c.Cache
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, c.Metrics, cfg.IssueStats.CacheTTL, logger, cacheRepo != nil)

	validate := validator.New()
	tx := database.NewTxManager(db)
	languages := repository.NewLanguageRepository(db)
	keys := repository.NewTranslationKeyRepository(db)
	translations := repository.NewTranslationRepository(db)
	issues := repository.NewTranslationIssueRepository(db)
	confirmations := repository.NewTranslationConfirmationRepository(db)

	c.Issues = service.NewIssueService(issues, translations, tx, cacheSvc, c.Metrics, validate, logger)
	c.Confirmations = service.NewConfirmationService(service.ConfirmationDeps{
		Confirmations: confirmations,
		Issues:        issues,
		Translations:  translations,
		Keys:          keys,
		Languages:     languages,
		Tx:            tx,
		Cache:         cacheSvc,
		Metrics:       c.Metrics,
	}, validate, logger)
	c.Regeneration = service.NewRegenerationService(service.RegenerationDeps{
		Translations: translations,
		Keys:         keys,
		Languages:    languages,
		Issues:       issues,
		Translator:   service.NewDictionaryTranslator(dict),
		Tx:           tx,
		Cache:        cacheSvc,
		Metrics:      c.Metrics,
	}, service.RegenerationConfig{
		BaselineLanguageCode: cfg.Translation.BaselineLanguageCode,
		AutoApprove:          cfg.Regeneration.AutoApprove,
		Concurrency:          cfg.Regeneration.Concurrency,
	}, validate, logger)
	c.Verification = service.NewVerificationService(service.VerificationDeps{
		Scorer:    service.NewQualityScorer(dict),
		Matrix:    translations,
		Languages: languages,
		Issues:    issues,
		Tx:        tx,
		Cache:     cacheSvc,
		Metrics:   c.Metrics,
	}, service.VerificationConfig{
		BaselineLanguageCode: cfg.Translation.BaselineLanguageCode,
		IssueThreshold:       &cfg.Verification.IssueThreshold,
	}, validate, logger)
	c.Translations = service.NewTranslationService(translations, keys, languages, tx, validate, logger)
	c.Catalog = service.NewCatalogService(languages, keys)
	c.Export = service.NewExportService(issues, export.NewCSVExporter(export.WithDelimiter(cfg.Export.CSVDelimiter)), nil, logger)

	return c, nil
}

// Close releases the database and cache connections.
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.logger.Warn("close redis", zap.Error(err))
		}
	}
	if err := c.DB.Close(); err != nil {
		c.logger.Warn("close postgres", zap.Error(err))
	}
}
