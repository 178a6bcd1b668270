package router

import (
	"time"

	convapi "therapeutic-assistant/backend/conversation/api"
	journalapi "therapeutic-assistant/backend/journal/api"
	moodapi "therapeutic-assistant/backend/mood/api"
	"therapeutic-assistant/backend/pkg/config"
	"therapeutic-assistant/backend/pkg/di"
	"therapeutic-assistant/backend/pkg/errors"
	"therapeutic-assistant/backend/pkg/logger"
	"therapeutic-assistant/backend/pkg/middleware"
	"therapeutic-assistant/backend/shared/observability"
	userapi "therapeutic-assistant/backend/user/api"

	"github.com/gin-gonic/gin"
)

// Track server start time for uptime reporting
var startTime = time.Now()

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	// Use the container's logger everywhere
	logger.SetGlobal(container.Logger)

	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first so every request is captured
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	rateLimiter := middleware.NewRateLimiter(container.Logger)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware())

	conversationHandler := convapi.NewConversationHandler(
		r.Container.ConversationService,
		r.Container.ChatService,
		r.Logger,
	)
	chatHandler := convapi.NewChatHandler(r.Container.MessageService)
	authHandler := userapi.NewAuthHandler(r.Container.UserService, r.Container.JWTService, r.Logger)
	journalHandler := journalapi.NewJournalHandler(r.Container.JournalService)
	moodHandler := moodapi.NewMoodHandler(r.Container.MoodService)

	conversationHandler.RegisterRoutes(r.Engine)
	chatHandler.RegisterRoutes(r.Engine)
	authHandler.RegisterRoutes(r.Engine)
	journalHandler.RegisterRoutes(r.Engine)
	moodHandler.RegisterRoutes(r.Engine)

	// Liveness plus dependency health under the versioned prefix
	v1 := r.Engine.Group("/api/v1")
	v1.GET("/health", r.Container.HealthChecker.Handler())

	r.Engine.GET("/api/health", r.healthCheckHandler())
	r.Engine.GET("/metrics", gin.WrapH(observability.MetricsHandler()))
}

// healthCheckHandler returns a simple liveness handler
func (r *Router) healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
