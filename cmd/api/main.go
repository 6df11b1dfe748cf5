package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "awards-api/docs" // This is for Swagger
	"awards-api/internal/auth"
	"awards-api/internal/config"
	"awards-api/internal/database"
	"awards-api/internal/email"
	"awards-api/internal/handlers"
	"awards-api/internal/hubspot"
	"awards-api/internal/logger"
	"awards-api/internal/loops"
	"awards-api/internal/middleware"
	"awards-api/internal/outbox"
	"awards-api/internal/repository"
	"awards-api/internal/scheduler"
	"awards-api/internal/service"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Awards API
// @version 1.0
// @description Backend API for the industry awards program: nominations, voting, moderation, and contact sync

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		err := db.Close()
		if err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	nominatorRepo := repository.NewNominatorRepository(db.DB)
	nomineeRepo := repository.NewNomineeRepository(db.DB)
	nominationRepo := repository.NewNominationRepository(db.DB)
	voterRepo := repository.NewVoterRepository(db.DB)
	voteRepo := repository.NewVoteRepository(db.DB)
	outboxRepo := repository.NewOutboxRepository(db.DB)
	categoryRepo := repository.NewCategoryRepository(db.DB)
	settingsRepo := repository.NewSettingsRepository(db.DB)
	timelineRepo := repository.NewTimelineRepository(db.DB)

	// Initialize sync targets and outbox worker
	hubspotClient := hubspot.NewClient(&cfg.HubSpot)
	loopsClient := loops.NewClient(&cfg.Loops)
	outboxWorker := outbox.NewWorker(outboxRepo, hubspotClient, loopsClient, &cfg.Sync)

	// Initialize services
	authService := auth.NewService(cfg)
	emailService := email.NewService(&cfg.Email)
	settingsService := service.NewSettingsService(settingsRepo)
	syncService := service.NewSyncService(outboxRepo, outboxWorker)
	nominationService := service.NewNominationService(
		nominationRepo, nominatorRepo, nomineeRepo, categoryRepo,
		settingsService, syncService, emailService,
	)
	voteService := service.NewVoteService(voteRepo, voterRepo, nominationRepo, categoryRepo, syncService)
	analyticsService := service.NewAnalyticsService(nominationRepo, voteRepo, voterRepo, outboxRepo)

	// Initialize scheduler
	schedulerService := scheduler.NewScheduler(outboxWorker, &cfg.Sync)
	schedulerService.Start()
	defer schedulerService.Stop()

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(authService)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)
	voteLimiter := middleware.NewVoteLimiter(&cfg.RateLimit)

	// Initialize handlers
	nominationHandler := handlers.NewNominationHandler(nominationService)
	voteHandler := handlers.NewVoteHandler(voteService)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, nominationService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	timelineHandler := handlers.NewTimelineHandler(timelineRepo)
	adminHandler := handlers.NewAdminHandler(authService, nominationService, analyticsService, outboxRepo)
	syncHandler := handlers.NewSyncHandler(syncService, cfg.Sync.CronSecret)

	// Setup router
	mux := http.NewServeMux()

	// Public routes
	mux.Handle("POST /api/v1/nominations", authMw.OptionalAuth(http.HandlerFunc(nominationHandler.Submit)))
	mux.Handle("POST /api/v1/votes", voteLimiter.Limit(http.HandlerFunc(voteHandler.Cast)))
	mux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories)
	mux.HandleFunc("GET /api/v1/subcategories/{id}/nominees", categoryHandler.ListNominees)
	mux.HandleFunc("GET /api/v1/settings/nominations", settingsHandler.GetNominationSettings)
	mux.HandleFunc("GET /api/v1/timeline", timelineHandler.List)

	// Sync trigger for the external cron
	mux.HandleFunc("POST /api/v1/sync/run", syncHandler.Run)

	// Admin routes
	mux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login)
	mux.Handle("GET /api/v1/admin/nominations",
		authMw.Authenticate(http.HandlerFunc(adminHandler.ListNominations)))
	mux.Handle("POST /api/v1/admin/nominations/draft",
		authMw.Authenticate(http.HandlerFunc(adminHandler.CreateDraft)))
	mux.Handle("GET /api/v1/admin/nominations/{id}",
		authMw.Authenticate(http.HandlerFunc(adminHandler.GetNomination)))
	mux.Handle("PATCH /api/v1/admin/nominations/{id}",
		authMw.Authenticate(http.HandlerFunc(adminHandler.UpdateNomination)))
	mux.Handle("POST /api/v1/admin/nominations/{id}/approve",
		authMw.Authenticate(http.HandlerFunc(adminHandler.ApproveNomination)))
	mux.Handle("POST /api/v1/admin/nominations/{id}/reject",
		authMw.Authenticate(http.HandlerFunc(adminHandler.RejectNomination)))
	mux.Handle("PUT /api/v1/admin/settings/nominations",
		authMw.Authenticate(http.HandlerFunc(settingsHandler.UpdateNominationSettings)))
	mux.Handle("GET /api/v1/admin/analytics",
		authMw.Authenticate(http.HandlerFunc(adminHandler.Analytics)))
	mux.Handle("GET /api/v1/admin/outbox",
		authMw.Authenticate(http.HandlerFunc(adminHandler.ListOutbox)))
	mux.Handle("POST /api/v1/admin/outbox/{id}/retry",
		authMw.Authenticate(http.HandlerFunc(adminHandler.RetryOutboxEntry)))
	mux.Handle("POST /api/v1/admin/timeline",
		authMw.Authenticate(http.HandlerFunc(timelineHandler.Create)))
	mux.Handle("PUT /api/v1/admin/timeline/{id}",
		authMw.Authenticate(http.HandlerFunc(timelineHandler.Update)))
	mux.Handle("DELETE /api/v1/admin/timeline/{id}",
		authMw.Authenticate(http.HandlerFunc(timelineHandler.Delete)))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, err := w.Write([]byte(`{"status":"unhealthy","database":"error"}`))
			if err != nil {
				slog.Error("Failed to write health check response", "error", err)
				return
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`))
		if err != nil {
			slog.Error("Failed to write health check response", "error", err)
			return
		}
	})

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMw.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
