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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/virtualtechbox/backend/docs"
	"github.com/virtualtechbox/backend/internal/config"
	"github.com/virtualtechbox/backend/internal/handlers"
	"github.com/virtualtechbox/backend/internal/hubspot"
	"github.com/virtualtechbox/backend/internal/logger"
	"github.com/virtualtechbox/backend/internal/middleware"
	"github.com/virtualtechbox/backend/internal/repositories"
	"github.com/virtualtechbox/backend/internal/services"
	"go.uber.org/zap"
)

// @title Virtual Tech Box Learning Platform API
// @version 1.0.0
// @description API for learning content and learner registration

// @host localhost:8000
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Learning Platform API",
		zap.String("version", cfg.Project.Version),
		zap.String("environment", cfg.Project.Environment),
	)

	docs.SwaggerInfo.Version = cfg.Project.Version
	docs.SwaggerInfo.BasePath = cfg.Project.APIPrefix
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)

	// Initialize repositories
	contentRepo := repositories.NewContentRepository(cfg.Content.BasePath, logger.Logger)
	localUserRepo := repositories.NewLocalUserRepository(cfg.Content.LocalUsersFile)

	// Remote directory stays nil without an API key
	var remote services.ContactDirectory
	if cfg.HubSpot.APIKey != "" {
		remote = hubspot.NewClient(hubspot.Config{
			APIKey:  cfg.HubSpot.APIKey,
			BaseURL: cfg.HubSpot.BaseURL,
			Timeout: cfg.HubSpot.Timeout,
		}, logger.Logger)
	}

	// Initialize services
	userDirectory := services.NewUserDirectory(remote, localUserRepo, cfg.HubSpot.ListID, logger.Logger)
	learningService := services.NewLearningService(contentRepo, logger.Logger)
	userService := services.NewUserService(userDirectory, logger.Logger)

	// Initialize handlers
	baseHandler := handlers.NewBaseHandler(logger.Logger)
	healthHandler := handlers.NewHealthHandler(userDirectory, cfg.Project.Version, "/swagger/index.html", logger.Logger)
	learningHandler := handlers.NewLearningHandler(learningService, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)

	// Setup router
	r := chi.NewRouter()
	r.NotFound(baseHandler.NotFound)
	r.MethodNotAllowed(baseHandler.MethodNotAllowed)

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	healthHandler.RegisterRootRoutes(r)

	// Scope router to the API prefix
	r.Route(cfg.Project.APIPrefix, func(r chi.Router) {
		healthHandler.RegisterRoutes(r)
		learningHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// SIGHUP drops the content cache so edited module files are picked up
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			contentRepo.Reload()
			logger.Logger.Info("Content cache reloaded")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")
	signal.Stop(hup)

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
