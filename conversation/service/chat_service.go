package service

import (
	"context"

	"therapeutic-assistant/backend/conversation/models"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	"therapeutic-assistant/backend/pkg/logger"
	"therapeutic-assistant/backend/shared/observability"
)

// DefaultConversationTitle is used when a turn auto-creates a
// conversation and the caller did not name it
const DefaultConversationTitle = "Nouvelle conversation"

// ReplyProvider produces an assistant reply for a user message.
// Implementations are fail-soft: they return fallback text instead of an
// error when the model cannot be reached.
type ReplyProvider interface {
	GetReply(ctx context.Context, userMessage string) string
}

// ChatService orchestrates one chat turn: resolve or create the
// conversation, persist the user message, obtain the assistant reply,
// persist it, and return the updated conversation.
type ChatService struct {
	conversations   *ConversationService
	messages        *MessageService
	responder       ReplyProvider
	assistantUserID uint
	log             *logger.Logger
}

func NewChatService(
	conversations *ConversationService,
	messages *MessageService,
	responder ReplyProvider,
	assistantUserID uint,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		conversations:   conversations,
		messages:        messages,
		responder:       responder,
		assistantUserID: assistantUserID,
		log:             log,
	}
}

// SendTurn runs a full turn for the given user. conversationID may be nil,
// in which case a new conversation is created (titled conversationTitle,
// or the default label). The user message is persisted before the AI call
// and the reply after it; there is no rollback across the steps, so a
// failure after the first append leaves the user message in place.
func (s *ChatService) SendTurn(ctx context.Context, userID uint, conversationID *uint, message, conversationTitle string) (*models.Conversation, error) {
	var convID uint
	if conversationID == nil {
		title := conversationTitle
		if title == "" {
			title = DefaultConversationTitle
		}
		conversation, err := s.conversations.CreateConversation(userID, title)
		if err != nil {
			return nil, err
		}
		convID = conversation.ID
		s.log.Info("conversation created for turn", "conversation_id", convID, "user_id", userID)
	} else {
		conversation, err := s.conversations.GetConversationByID(*conversationID)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, apperrors.NewConversationNotFound(*conversationID)
		}
		convID = conversation.ID
	}

	if _, err := s.messages.SaveMessage(userID, convID, message); err != nil {
		return nil, err
	}

	// Fail-soft: GetReply always yields some text, so the turn cannot
	// fail because the model is down
	reply := s.responder.GetReply(ctx, message)

	if _, err := s.messages.SaveMessage(s.assistantUserID, convID, reply); err != nil {
		return nil, err
	}

	observability.RecordChatTurn(ctx)

	conversation, err := s.conversations.GetConversationByID(convID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperrors.NewConversationNotFound(convID)
	}
	return conversation, nil
}
