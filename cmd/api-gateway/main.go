package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/translation-qa-api/api/swagger"
	"github.com/noah-isme/translation-qa-api/internal/app"
	"github.com/noah-isme/translation-qa-api/internal/handler"
	internalmiddleware "github.com/noah-isme/translation-qa-api/internal/middleware"
	"github.com/noah-isme/translation-qa-api/pkg/config"
	"github.com/noah-isme/translation-qa-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/translation-qa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/translation-qa-api/pkg/middleware/requestid"
)

// @title Translation QA API
// @version 1.0.0
// @description Translation quality workflow: issues, confirmations, regeneration and verification
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.New(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to initialise dependencies", zap.Error(err))
	}
	defer container.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(container.Metrics))

	checks := map[string]handler.ReadinessCheck{"database": container.DB.PingContext}
	if container.Cache != nil {
		checks["redis"] = container.Cache.Ping
	}
	metricsHandler := handler.NewMetricsHandler(container.Metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), container, metricsHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("server shutdown", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
	logr.Info("server stopped")
}

func registerRoutes(api *gin.RouterGroup, c *app.Container, metricsHandler *handler.MetricsHandler) {
	api.Use(internalmiddleware.WithResponseMeta())
	api.Use(internalmiddleware.Actor())

	issues := handler.NewIssueHandler(c.Issues, c.Export)
	api.GET("/translation-issues", issues.List)
	api.POST("/translation-issues/actions", issues.Apply)
	api.GET("/translation-issues/export", issues.Export)

	confirmations := handler.NewConfirmationHandler(c.Confirmations)
	api.GET("/translation-confirmations", confirmations.List)
	api.POST("/translation-confirmations", confirmations.Confirm)
	api.DELETE("/translation-confirmations/:keyId/:languageId", confirmations.Delete)

	translations := handler.NewTranslationHandler(c.Regeneration, c.Verification, c.Translations)
	api.PUT("/translations", translations.Upsert)
	api.POST("/translations/regenerate", translations.Regenerate)
	api.POST("/translations/verify", translations.Verify)
	api.POST("/translations/verification-runs", translations.Scan)

	catalog := handler.NewCatalogHandler(c.Catalog)
	api.GET("/languages", catalog.Languages)
	api.GET("/translation-keys", catalog.Keys)

	api.GET("/metrics/summary", metricsHandler.Summary)
}
