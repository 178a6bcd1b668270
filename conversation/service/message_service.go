package service

import (
	"fmt"
	"time"

	"therapeutic-assistant/backend/conversation/models"
	"therapeutic-assistant/backend/conversation/repository"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	userrepo "therapeutic-assistant/backend/user/repository"
)

// MessageService is the store for chat messages. Appends verify that both
// the sender and the conversation exist before anything is written.
type MessageService struct {
	messages      repository.MessageRepository
	conversations repository.ConversationRepository
	users         userrepo.UserRepository
}

func NewMessageService(
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	users userrepo.UserRepository,
) *MessageService {
	return &MessageService{
		messages:      messages,
		conversations: conversations,
		users:         users,
	}
}

// SaveMessage appends a message to a conversation. The creation timestamp
// is assigned here, never taken from the caller.
func (s *MessageService) SaveMessage(senderID, conversationID uint, content string) (*models.Message, error) {
	exists, err := s.users.Exists(senderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("SENDER_NOT_FOUND",
			fmt.Sprintf("Sender user not found with ID: %d", senderID))
	}

	exists, err = s.conversations.Exists(conversationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewConversationNotFound(conversationID)
	}

	message := &models.Message{
		Content:        content,
		CreatedAt:      time.Now(),
		SenderID:       senderID,
		ConversationID: conversationID,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessagesByConversationID returns the conversation's messages in
// creation order; empty for an unknown conversation.
func (s *MessageService) GetMessagesByConversationID(conversationID uint) ([]models.Message, error) {
	return s.messages.GetByConversationID(conversationID)
}

// DeleteByConversationID removes all messages of a conversation; idempotent
func (s *MessageService) DeleteByConversationID(conversationID uint) error {
	return s.messages.DeleteByConversationID(conversationID)
}
