package service

import (
	"context"
	"testing"

	"therapeutic-assistant/backend/conversation/models"
	"therapeutic-assistant/backend/conversation/repository"
	"therapeutic-assistant/backend/pkg/logger"
	usermodels "therapeutic-assistant/backend/user/models"
	userrepo "therapeutic-assistant/backend/user/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fixedResponder returns the same reply for every message
type fixedResponder struct {
	reply string
}

func (r fixedResponder) GetReply(_ context.Context, _ string) string {
	return r.reply
}

type testEnv struct {
	db            *gorm.DB
	users         userrepo.UserRepository
	conversations *ConversationService
	messages      *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}, &models.Conversation{}, &models.Message{}))

	log := logger.New(logger.Config{Level: "error"})
	users := userrepo.NewGormUserRepository(db)
	convRepo := repository.NewGormConversationRepository(db)
	msgRepo := repository.NewGormMessageRepository(db)

	messages := NewMessageService(msgRepo, convRepo, users)
	conversations := NewConversationService(convRepo, msgRepo, users, log)

	return &testEnv{
		db:            db,
		users:         users,
		conversations: conversations,
		messages:      messages,
	}
}

func (e *testEnv) chatService(t *testing.T, responder ReplyProvider, assistantID uint) *ChatService {
	t.Helper()
	return NewChatService(e.conversations, e.messages, responder, assistantID, logger.New(logger.Config{Level: "error"}))
}

func (e *testEnv) seedUser(t *testing.T, username string) *usermodels.User {
	t.Helper()
	user := &usermodels.User{Username: username, Password: "secret123"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}
