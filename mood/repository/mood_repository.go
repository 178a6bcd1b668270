package repository

import (
	"therapeutic-assistant/backend/mood/models"

	"gorm.io/gorm"
)

type MoodRepository interface {
	Create(mood *models.Mood) error
	GetByID(id uint) (*models.Mood, error)
	GetByUserID(userID uint) ([]models.Mood, error)
	Save(mood *models.Mood) error
	Delete(id uint) error
}

type GormMoodRepository struct {
	db *gorm.DB
}

func NewGormMoodRepository(db *gorm.DB) *GormMoodRepository {
	return &GormMoodRepository{db: db}
}

func (r *GormMoodRepository) Create(mood *models.Mood) error {
	return r.db.Create(mood).Error
}

func (r *GormMoodRepository) GetByID(id uint) (*models.Mood, error) {
	var mood models.Mood
	err := r.db.First(&mood, id).Error
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

func (r *GormMoodRepository) GetByUserID(userID uint) ([]models.Mood, error) {
	var moods []models.Mood
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&moods).Error
	return moods, err
}

func (r *GormMoodRepository) Save(mood *models.Mood) error {
	return r.db.Save(mood).Error
}

func (r *GormMoodRepository) Delete(id uint) error {
	return r.db.Delete(&models.Mood{}, id).Error
}
