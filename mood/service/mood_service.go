package service

import (
	"fmt"
	"time"

	"therapeutic-assistant/backend/mood/models"
	"therapeutic-assistant/backend/mood/repository"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	userrepo "therapeutic-assistant/backend/user/repository"

	"gorm.io/gorm"
)

// MoodService handles mood entry CRUD
type MoodService struct {
	repo  repository.MoodRepository
	users userrepo.UserRepository
}

func NewMoodService(repo repository.MoodRepository, users userrepo.UserRepository) *MoodService {
	return &MoodService{repo: repo, users: users}
}

// SaveMood records a mood for an existing user
func (s *MoodService) SaveMood(req *models.CreateMoodRequest) (*models.Mood, error) {
	exists, err := s.users.Exists(req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewUserNotFound(req.UserID)
	}

	mood := &models.Mood{
		Mood:      req.Mood,
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(mood); err != nil {
		return nil, err
	}
	return mood, nil
}

// GetMoodByID returns (nil, nil) for an unknown id
func (s *MoodService) GetMoodByID(id uint) (*models.Mood, error) {
	mood, err := s.repo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mood, nil
}

func (s *MoodService) GetMoodsByUserID(userID uint) ([]models.Mood, error) {
	return s.repo.GetByUserID(userID)
}

// UpdateMood corrects an existing mood entry
func (s *MoodService) UpdateMood(id uint, req *models.UpdateMoodRequest) (*models.Mood, error) {
	mood, err := s.GetMoodByID(id)
	if err != nil {
		return nil, err
	}
	if mood == nil {
		return nil, apperrors.NewNotFoundError("MOOD_NOT_FOUND",
			fmt.Sprintf("Mood not found with ID: %d", id))
	}

	mood.Mood = req.Mood
	if err := s.repo.Save(mood); err != nil {
		return nil, err
	}
	return mood, nil
}

// DeleteMood removes a mood entry; unknown ids are a no-op
func (s *MoodService) DeleteMood(id uint) error {
	return s.repo.Delete(id)
}
