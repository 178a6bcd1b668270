package service

import (
	"context"
	"testing"

	"therapeutic-assistant/backend/ai"
	"therapeutic-assistant/backend/conversation/models"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	"therapeutic-assistant/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTurnCreatesConversationWithBothMessages(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice")
	assistant := env.seedUser(t, "assistant")
	chat := env.chatService(t, fixedResponder{reply: "Bonjour, comment puis-je vous aider ?"}, assistant.ID)

	conv, err := chat.SendTurn(context.Background(), user.ID, nil, "Bonjour", "")
	require.NoError(t, err)
	require.NotNil(t, conv)

	assert.Equal(t, DefaultConversationTitle, conv.Titre)
	assert.Equal(t, user.ID, conv.UserID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, user.ID, conv.Messages[0].SenderID)
	assert.Equal(t, "Bonjour", conv.Messages[0].Content)
	assert.Equal(t, assistant.ID, conv.Messages[1].SenderID)
	assert.Equal(t, "Bonjour, comment puis-je vous aider ?", conv.Messages[1].Content)
}

func TestSendTurnUsesProvidedTitle(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice")
	assistant := env.seedUser(t, "assistant")
	chat := env.chatService(t, fixedResponder{reply: "ok"}, assistant.ID)

	conv, err := chat.SendTurn(context.Background(), user.ID, nil, "Bonjour", "Check-in du matin")
	require.NoError(t, err)
	assert.Equal(t, "Check-in du matin", conv.Titre)
}

func TestSendTurnAppendsToExistingConversation(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice")
	assistant := env.seedUser(t, "assistant")
	chat := env.chatService(t, fixedResponder{reply: "ok"}, assistant.ID)

	conv, err := chat.SendTurn(context.Background(), user.ID, nil, "Premier message", "")
	require.NoError(t, err)

	conv, err = chat.SendTurn(context.Background(), user.ID, &conv.ID, "Deuxième message", "")
	require.NoError(t, err)

	require.Len(t, conv.Messages, 4)
	assert.Equal(t, "Premier message", conv.Messages[0].Content)
	assert.Equal(t, "Deuxième message", conv.Messages[2].Content)
	assert.Equal(t, assistant.ID, conv.Messages[3].SenderID)

	// Each turn alternates user then assistant
	for i, msg := range conv.Messages {
		if i%2 == 0 {
			assert.Equal(t, user.ID, msg.SenderID)
		} else {
			assert.Equal(t, assistant.ID, msg.SenderID)
		}
	}
}

func TestSendTurnUnknownConversation(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice")
	assistant := env.seedUser(t, "assistant")
	chat := env.chatService(t, fixedResponder{reply: "ok"}, assistant.ID)

	missing := uint(9999)
	_, err := chat.SendTurn(context.Background(), user.ID, &missing, "Bonjour", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	// Nothing was persisted for the failed turn
	var count int64
	env.db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestSendTurnUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	assistant := env.seedUser(t, "assistant")
	chat := env.chatService(t, fixedResponder{reply: "ok"}, assistant.ID)

	_, err := chat.SendTurn(context.Background(), 42, nil, "Bonjour", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSendTurnStoresFallbackWhenModelDown(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice")
	assistant := env.seedUser(t, "assistant")

	// Gateway pointed at a dead endpoint degrades to fallback text
	responder := ai.NewClient("http://127.0.0.1:1", 0, logger.New(logger.Config{Level: "error"}))
	chat := env.chatService(t, responder, assistant.ID)

	conv, err := chat.SendTurn(context.Background(), user.ID, nil, "Bonjour", "")
	require.NoError(t, err)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Bonjour", conv.Messages[0].Content)
	assert.Equal(t, ai.FallbackError, conv.Messages[1].Content)
}
