package di

import (
	"context"
	"time"

	"therapeutic-assistant/backend/ai"
	convrepo "therapeutic-assistant/backend/conversation/repository"
	convservice "therapeutic-assistant/backend/conversation/service"
	journalrepo "therapeutic-assistant/backend/journal/repository"
	journalservice "therapeutic-assistant/backend/journal/service"
	moodrepo "therapeutic-assistant/backend/mood/repository"
	moodservice "therapeutic-assistant/backend/mood/service"
	"therapeutic-assistant/backend/pkg/health"
	"therapeutic-assistant/backend/pkg/jwt"
	"therapeutic-assistant/backend/pkg/logger"
	"therapeutic-assistant/backend/shared/redis"
	userrepo "therapeutic-assistant/backend/user/repository"
	userservice "therapeutic-assistant/backend/user/service"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Cache  *redis.Client

	JWTService *jwt.Service
	AIClient   *ai.Client

	UserService         *userservice.UserService
	ConversationService *convservice.ConversationService
	MessageService      *convservice.MessageService
	ChatService         *convservice.ChatService
	JournalService      *journalservice.JournalService
	MoodService         *moodservice.MoodService

	HealthChecker *health.Checker
}

// Config holds the configuration for the container
type Config struct {
	LoggerConfig    logger.Config
	JWTSecret       string
	JWTExpiry       time.Duration
	AIBaseURL       string
	AITimeout       time.Duration
	AssistantUserID uint
	EnableCache     bool
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		LoggerConfig:    logger.DefaultConfig(),
		JWTExpiry:       24 * time.Hour,
		AIBaseURL:       "http://localhost:8000",
		AITimeout:       30 * time.Second,
		AssistantUserID: 1,
		EnableCache:     true,
	}
}

// New creates a new dependency injection container
func New(db *gorm.DB, config *Config) (*Container, error) {
	if config == nil {
		config = DefaultConfig()
	}

	log := logger.New(config.LoggerConfig)
	jwtService := jwt.NewService(config.JWTSecret, config.JWTExpiry)

	var cache *redis.Client
	if config.EnableCache {
		cache = redis.NewClient()
	}

	aiClient := ai.NewClient(config.AIBaseURL, config.AITimeout, log)

	// Repositories
	users := userrepo.NewGormUserRepository(db)
	conversations := convrepo.NewGormConversationRepository(db)
	messages := convrepo.NewGormMessageRepository(db)
	journals := journalrepo.NewGormJournalRepository(db)
	moods := moodrepo.NewGormMoodRepository(db)

	// Services
	userService := userservice.NewUserService(users, cache, jwtService)
	messageService := convservice.NewMessageService(messages, conversations, users)
	conversationService := convservice.NewConversationService(conversations, messages, users, log)
	chatService := convservice.NewChatService(conversationService, messageService, aiClient, config.AssistantUserID, log)
	journalService := journalservice.NewJournalService(journals, users)
	moodService := moodservice.NewMoodService(moods, users)

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterCheck("database", databaseCheck(db))
	if cache != nil {
		checker.RegisterCheck("redis", redisCheck(cache))
	}
	checker.RegisterCheck("ai-service", aiCheck(aiClient))

	return &Container{
		DB:                  db,
		Logger:              log,
		Cache:               cache,
		JWTService:          jwtService,
		AIClient:            aiClient,
		UserService:         userService,
		ConversationService: conversationService,
		MessageService:      messageService,
		ChatService:         chatService,
		JournalService:      journalService,
		MoodService:         moodService,
		HealthChecker:       checker,
	}, nil
}

func databaseCheck(db *gorm.DB) health.Check {
	return func() (health.Status, string, error) {
		sqlDB, err := db.DB()
		if err != nil {
			return health.StatusDown, "cannot obtain connection", err
		}
		if err := sqlDB.Ping(); err != nil {
			return health.StatusDown, "ping failed", err
		}
		return health.StatusUp, "connected", nil
	}
}

func redisCheck(cache *redis.Client) health.Check {
	return func() (health.Status, string, error) {
		if err := cache.Ping(); err != nil {
			// Caching is optional, the app works without it
			return health.StatusDegraded, "unreachable", err
		}
		return health.StatusUp, "connected", nil
	}
}

func aiCheck(client *ai.Client) health.Check {
	return func() (health.Status, string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if !client.IsAvailable(ctx) {
			// Turns still complete with fallback replies
			return health.StatusDegraded, "model endpoint unreachable", nil
		}
		return health.StatusUp, "model ready", nil
	}
}
