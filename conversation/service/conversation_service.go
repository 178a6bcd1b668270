package service

import (
	"time"

	"therapeutic-assistant/backend/conversation/models"
	"therapeutic-assistant/backend/conversation/repository"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	"therapeutic-assistant/backend/pkg/logger"
	userrepo "therapeutic-assistant/backend/user/repository"

	"gorm.io/gorm"
)

// ConversationService manages the lifecycle of conversations
type ConversationService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	users         userrepo.UserRepository
	log           *logger.Logger
}

func NewConversationService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	users userrepo.UserRepository,
	log *logger.Logger,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		users:         users,
		log:           log,
	}
}

// CreateConversation creates a conversation owned by an existing user.
// The title is stored verbatim; default titles are the caller's business.
func (s *ConversationService) CreateConversation(userID uint, titre string) (*models.Conversation, error) {
	exists, err := s.users.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewUserNotFound(userID)
	}

	conversation := &models.Conversation{
		Titre:     titre,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.conversations.Create(conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// GetConversationByID looks up a conversation with its ordered messages.
// A missing id yields (nil, nil): absence is not an error at this layer.
func (s *ConversationService) GetConversationByID(id uint) (*models.Conversation, error) {
	conversation, err := s.conversations.GetByID(id)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return conversation, nil
}

// GetConversationsByUserID lists a user's conversations; empty if none
func (s *ConversationService) GetConversationsByUserID(userID uint) ([]models.Conversation, error) {
	return s.conversations.GetByUserID(userID)
}

// UpdateTitle renames an existing conversation and returns the updated
// entity; unknown ids fail with a not-found error.
func (s *ConversationService) UpdateTitle(id uint, newTitle string) (*models.Conversation, error) {
	exists, err := s.conversations.Exists(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewConversationNotFound(id)
	}

	if err := s.conversations.UpdateTitle(id, newTitle); err != nil {
		return nil, err
	}
	return s.conversations.GetByID(id)
}

// DeleteConversation removes a conversation and all its messages.
// Deleting an unknown id is a no-op.
func (s *ConversationService) DeleteConversation(id uint) error {
	if err := s.messages.DeleteByConversationID(id); err != nil {
		return err
	}
	if err := s.conversations.Delete(id); err != nil {
		return err
	}
	s.log.Info("conversation deleted", "conversation_id", id)
	return nil
}
