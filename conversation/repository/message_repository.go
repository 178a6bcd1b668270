package repository

import (
	"therapeutic-assistant/backend/conversation/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) error
	GetByConversationID(conversationID uint) ([]models.Message, error)
	DeleteByConversationID(conversationID uint) error
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetByConversationID returns the conversation's messages in creation
// order. An unknown conversation yields an empty slice, not an error.
func (r *GormMessageRepository) GetByConversationID(conversationID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// DeleteByConversationID removes every message of a conversation.
// Idempotent; only used by cascading conversation deletion.
func (r *GormMessageRepository) DeleteByConversationID(conversationID uint) error {
	return r.db.Where("conversation_id = ?", conversationID).Delete(&models.Message{}).Error
}
