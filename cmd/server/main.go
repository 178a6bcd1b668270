package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	convmodels "therapeutic-assistant/backend/conversation/models"
	journalmodels "therapeutic-assistant/backend/journal/models"
	moodmodels "therapeutic-assistant/backend/mood/models"
	"therapeutic-assistant/backend/pkg/config"
	"therapeutic-assistant/backend/pkg/di"
	"therapeutic-assistant/backend/pkg/logger"
	"therapeutic-assistant/backend/pkg/router"
	"therapeutic-assistant/backend/shared/observability"
	usermodels "therapeutic-assistant/backend/user/models"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found")
	}

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logConfig.Level = level
	}
	logConfig.JSON = os.Getenv("LOG_FORMAT") != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting application", "version", os.Getenv("APP_VERSION"))

	cfg := config.New()

	// Initialize database
	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(
		&usermodels.User{},
		&convmodels.Conversation{},
		&convmodels.Message{},
		&journalmodels.Journal{},
		&moodmodels.Mood{},
	); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Tracing and metrics
	shutdownTracing, err := observability.SetupTracing("therapeutic-assistant")
	if err != nil {
		log.LogError(err, "Failed to initialize tracing")
	} else {
		defer shutdownTracing()
	}
	if _, err := observability.SetupMetrics("therapeutic-assistant"); err != nil {
		log.LogError(err, "Failed to initialize metrics")
	}

	// Initialize dependency injection container
	diConfig := di.DefaultConfig()
	diConfig.LoggerConfig = logConfig
	diConfig.JWTSecret = cfg.JWT.Secret
	diConfig.JWTExpiry = cfg.JWT.Expiry
	diConfig.AIBaseURL = cfg.AI.BaseURL
	diConfig.AITimeout = cfg.AI.Timeout
	diConfig.AssistantUserID = cfg.Assistant.UserID

	container, err := di.New(db, diConfig)
	if err != nil {
		log.LogError(err, "Failed to initialize dependency container")
		os.Exit(1)
	}

	// The assistant account must exist before the first chat turn
	if err := container.UserService.EnsureAssistantUser(cfg.Assistant.UserID, cfg.Assistant.Username); err != nil {
		log.LogError(err, "Failed to seed assistant user")
		os.Exit(1)
	}

	// Start background health checks
	healthStop := make(chan struct{})
	defer close(healthStop)
	container.HealthChecker.Start(healthStop)

	// Initialize and setup router
	r := router.New(container)
	r.SetupRoutes()

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
