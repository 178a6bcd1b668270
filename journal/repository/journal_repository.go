package repository

import (
	"therapeutic-assistant/backend/journal/models"

	"gorm.io/gorm"
)

type JournalRepository interface {
	Create(journal *models.Journal) error
	GetByID(id uint) (*models.Journal, error)
	GetByUserID(userID uint) ([]models.Journal, error)
	Save(journal *models.Journal) error
	Delete(id uint) error
}

type GormJournalRepository struct {
	db *gorm.DB
}

func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

func (r *GormJournalRepository) Create(journal *models.Journal) error {
	return r.db.Create(journal).Error
}

func (r *GormJournalRepository) GetByID(id uint) (*models.Journal, error) {
	var journal models.Journal
	err := r.db.First(&journal, id).Error
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

func (r *GormJournalRepository) GetByUserID(userID uint) ([]models.Journal, error) {
	var journals []models.Journal
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&journals).Error
	return journals, err
}

func (r *GormJournalRepository) Save(journal *models.Journal) error {
	return r.db.Save(journal).Error
}

func (r *GormJournalRepository) Delete(id uint) error {
	return r.db.Delete(&models.Journal{}, id).Error
}
