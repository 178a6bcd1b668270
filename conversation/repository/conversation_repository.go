package repository

import (
	"therapeutic-assistant/backend/conversation/models"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(conversation *models.Conversation) error
	GetByID(id uint) (*models.Conversation, error)
	GetByUserID(userID uint) ([]models.Conversation, error)
	Exists(id uint) (bool, error)
	UpdateTitle(id uint, titre string) error
	Delete(id uint) error
}

type GormConversationRepository struct {
	db *gorm.DB
}

func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

func (r *GormConversationRepository) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

// GetByID loads a conversation with its messages in chronological order.
// Returns gorm.ErrRecordNotFound when the id is unknown.
func (r *GormConversationRepository) GetByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&conversation, id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *GormConversationRepository) GetByUserID(userID uint) ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *GormConversationRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Conversation{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateTitle writes the title column only, leaving messages untouched
func (r *GormConversationRepository) UpdateTitle(id uint, titre string) error {
	return r.db.Model(&models.Conversation{}).Where("id = ?", id).Update("titre", titre).Error
}

// Delete removes the conversation row. Deleting an unknown id is a no-op.
func (r *GormConversationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Conversation{}, id).Error
}
