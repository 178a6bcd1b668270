package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"therapeutic-assistant/backend/conversation/models"
	"therapeutic-assistant/backend/conversation/repository"
	"therapeutic-assistant/backend/conversation/service"
	"therapeutic-assistant/backend/pkg/logger"
	usermodels "therapeutic-assistant/backend/user/models"
	userrepo "therapeutic-assistant/backend/user/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type echoResponder struct{}

func (echoResponder) GetReply(_ context.Context, userMessage string) string {
	return "echo: " + userMessage
}

type apiTestEnv struct {
	engine      *gin.Engine
	db          *gorm.DB
	userID      uint
	assistantID uint
}

func newAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}, &models.Conversation{}, &models.Message{}))

	user := &usermodels.User{Username: "alice", Password: "secret123"}
	require.NoError(t, db.Create(user).Error)
	assistant := &usermodels.User{Username: "assistant", Password: "secret123"}
	require.NoError(t, db.Create(assistant).Error)

	log := logger.New(logger.Config{Level: "error"})
	users := userrepo.NewGormUserRepository(db)
	convRepo := repository.NewGormConversationRepository(db)
	msgRepo := repository.NewGormMessageRepository(db)

	messages := service.NewMessageService(msgRepo, convRepo, users)
	conversations := service.NewConversationService(convRepo, msgRepo, users, log)
	chat := service.NewChatService(conversations, messages, echoResponder{}, assistant.ID, log)

	engine := gin.New()
	NewConversationHandler(conversations, chat, log).RegisterRoutes(engine)
	NewChatHandler(messages).RegisterRoutes(engine)

	return &apiTestEnv{engine: engine, db: db, userID: user.ID, assistantID: assistant.ID}
}

func (e *apiTestEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestCreateConversationEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations", gin.H{
		"titre":  "Ma conversation",
		"userId": env.userID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.NotZero(t, conv.ID)
	assert.Equal(t, "Ma conversation", conv.Titre)
}

func TestCreateConversationUnknownUserEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations", gin.H{
		"titre":  "Ma conversation",
		"userId": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendTurnEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations/send", gin.H{
		"userId":  env.userID,
		"message": "Bonjour",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.Equal(t, service.DefaultConversationTitle, conv.Titre)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Bonjour", conv.Messages[0].Content)
	assert.Equal(t, "echo: Bonjour", conv.Messages[1].Content)
	assert.Equal(t, env.assistantID, conv.Messages[1].SenderID)
}

func TestSendTurnExistingConversationEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations/send", gin.H{
		"userId":  env.userID,
		"message": "Premier",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))

	w = env.request(t, http.MethodPost, "/api/conversations/send", gin.H{
		"userId":         env.userID,
		"conversationId": conv.ID,
		"message":        "Deuxième",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.Len(t, conv.Messages, 4)
}

func TestSendTurnUnknownConversationEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations/send", gin.H{
		"userId":         env.userID,
		"conversationId": 9999,
		"message":        "Bonjour",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendTurnValidation(t *testing.T) {
	env := newAPITestEnv(t)

	// Missing message
	w := env.request(t, http.MethodPost, "/api/conversations/send", gin.H{
		"userId": env.userID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetConversationEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations/send", gin.H{
		"userId":  env.userID,
		"message": "Bonjour",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/conversations/%d", conv.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/conversations/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/conversations/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListConversationsByUserEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/conversations/user/%d", env.userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	env.request(t, http.MethodPost, "/api/conversations", gin.H{"titre": "Une", "userId": env.userID})

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/conversations/user/%d", env.userID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var convs []models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &convs))
	assert.Len(t, convs, 1)
}

func TestUpdateTitleEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations", gin.H{"titre": "Avant", "userId": env.userID})
	require.Equal(t, http.StatusCreated, w.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/conversations/%d/title", conv.ID), gin.H{"title": "Après"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.Equal(t, "Après", conv.Titre)

	w = env.request(t, http.MethodPut, "/api/conversations/9999/title", gin.H{"title": "Après"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteConversationEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations", gin.H{"titre": "À supprimer", "userId": env.userID})
	require.Equal(t, http.StatusCreated, w.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/conversations/%d", conv.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Conversation supprimée")

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/conversations/%d", conv.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDirectMessageEndpoints(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/conversations", gin.H{"titre": "Fil", "userId": env.userID})
	require.Equal(t, http.StatusCreated, w.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))

	w = env.request(t, http.MethodPost, "/api/chat/send", gin.H{
		"senderId":       env.userID,
		"conversationId": conv.ID,
		"content":        "Note directe",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "Note directe", msgs[0].Content)
}

func TestDirectMessageUnknownConversation(t *testing.T) {
	env := newAPITestEnv(t)

	w := env.request(t, http.MethodPost, "/api/chat/send", gin.H{
		"senderId":       env.userID,
		"conversationId": 9999,
		"content":        "Perdu",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
