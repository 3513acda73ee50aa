package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/creator-campaign-api/api/swagger"
	"github.com/noah-isme/creator-campaign-api/internal/handler"
	"github.com/noah-isme/creator-campaign-api/internal/middleware"
	"github.com/noah-isme/creator-campaign-api/internal/oracle"
	"github.com/noah-isme/creator-campaign-api/internal/repository"
	"github.com/noah-isme/creator-campaign-api/internal/service"
	"github.com/noah-isme/creator-campaign-api/pkg/cache"
	"github.com/noah-isme/creator-campaign-api/pkg/config"
	"github.com/noah-isme/creator-campaign-api/pkg/database"
	"github.com/noah-isme/creator-campaign-api/pkg/export"
	"github.com/noah-isme/creator-campaign-api/pkg/jobs"
	"github.com/noah-isme/creator-campaign-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/creator-campaign-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/creator-campaign-api/pkg/middleware/requestid"
	"github.com/noah-isme/creator-campaign-api/pkg/storage"
)

// @title Creator Campaign API
// @version 0.1.0
// @description Submission wizard and campaign administration for influencer collaborations
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload storage", "error", err)
	}

	validate := validator.New()

	metricsSvc := service.NewMetricsService()

	campaignRepo := repository.NewCampaignRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db).Instrument(metricsSvc)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Wizard.SessionTTL).Instrument(metricsSvc)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "creator-campaign-api",
	})
	campaignSvc := service.NewCampaignService(campaignRepo, submissionRepo, validate, logr)
	wizardSvc := service.NewWizardService(campaignRepo, sessionRepo, submissionRepo, service.NewSubmissionAssembler(), metricsSvc, service.WizardConfig{
		SubmitTimeout:  cfg.Wizard.SubmitTimeout,
		MaxAccountRows: cfg.Wizard.MaxAccountRows,
	}, logr)
	uploadSvc := service.NewUploadService(uploadStore, sessionRepo, service.UploadConfig{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
		PublicPrefix:     "/uploads",
	}, logr)

	var enrichmentSvc *service.EnrichmentService
	enrichmentQueue := jobs.NewQueue("enrichment", func(ctx context.Context, job jobs.Job) error {
		return enrichmentSvc.HandleJob(ctx, job)
	}, jobs.QueueConfig{Workers: 4, Logger: logr})
	enrichmentSvc = service.NewEnrichmentService(oracle.NewClient(cfg.Oracle), sessionRepo, enrichmentQueue, metricsSvc, cfg.Oracle.Timeout, logr)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enrichmentQueue.Start(rootCtx)
	defer enrichmentQueue.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.Static("/uploads", cfg.Uploads.StorageDir)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	wizardHandler := handler.NewWizardHandler(wizardSvc, enrichmentSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	wizard := api.Group("/wizard")
	{
		wizard.POST("/:slug/sessions", wizardHandler.Start)

		sessions := wizard.Group("/sessions/:id")
		sessions.GET("", wizardHandler.State)
		sessions.POST("/acknowledge", wizardHandler.Acknowledge)
		sessions.POST("/accept", wizardHandler.Accept)
		sessions.POST("/decline", wizardHandler.Decline)
		sessions.POST("/back", wizardHandler.Back)
		sessions.POST("/restart", wizardHandler.Restart)
		sessions.POST("/rows", wizardHandler.AddRow)
		sessions.PUT("/rows/:rowId", wizardHandler.UpdateRow)
		sessions.DELETE("/rows/:rowId", wizardHandler.RemoveRow)
		sessions.POST("/rows/:rowId/enrich", wizardHandler.Enrich)
		sessions.POST("/uploads", uploadHandler.Upload)
		sessions.POST("/submit", wizardHandler.SubmitAccept)
		sessions.POST("/decline-submit", wizardHandler.SubmitDecline)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	requireAuth := middleware.JWT(authSvc, cfg.Auth.SkipAuth)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	campaignHandler := handler.NewCampaignHandler(campaignSvc)
	campaigns := api.Group("/campaigns", requireAuth)
	{
		campaigns.GET("", campaignHandler.List)
		campaigns.POST("", campaignHandler.Create)
		campaigns.GET("/:id", campaignHandler.Get)
		campaigns.PUT("/:id", campaignHandler.Update)
		campaigns.DELETE("/:id", campaignHandler.Delete)
		campaigns.GET("/:id/submissions", campaignHandler.Submissions)
	}

	if cfg.Exports.Enabled {
		exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exporter := service.NewSubmissionExporter(campaignRepo, submissionRepo, exportStore, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
		}, logr, export.NewCSVExporter(), export.NewPDFExporter())

		exportJobRepo := repository.NewExportJobRepository(db)
		exportWorker := service.NewExportWorker(exportJobRepo, exporter, cfg.Exports.WorkerRetries, logr)
		exportQueue := jobs.NewQueue("exports", exportWorker.Handle, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		exportJobSvc := service.NewExportJobService(exportJobRepo, campaignRepo, exportQueue, exporter, logr, service.ExportJobConfig{
			ResultTTL:       cfg.Exports.SignedURLTTL,
			CleanupInterval: cfg.Exports.CleanupInterval,
			MaxRetries:      cfg.Exports.WorkerRetries,
		})

		exportQueue.Start(rootCtx)
		defer exportQueue.Stop()
		exportJobSvc.RecoverPendingJobs(rootCtx)
		exportJobSvc.StartCleanup(rootCtx)

		exportHandler := handler.NewExportHandler(exportJobSvc)
		exports := api.Group("/exports")
		exports.GET("/download/:token", exportHandler.Download)
		exports.POST("", requireAuth, exportHandler.Create)
		exports.GET("/:id", requireAuth, exportHandler.Status)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
