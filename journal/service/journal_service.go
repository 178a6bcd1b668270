package service

import (
	"fmt"
	"time"

	"therapeutic-assistant/backend/journal/models"
	"therapeutic-assistant/backend/journal/repository"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	userrepo "therapeutic-assistant/backend/user/repository"

	"gorm.io/gorm"
)

// JournalService handles journal entry CRUD
type JournalService struct {
	repo  repository.JournalRepository
	users userrepo.UserRepository
}

func NewJournalService(repo repository.JournalRepository, users userrepo.UserRepository) *JournalService {
	return &JournalService{repo: repo, users: users}
}

// CreateJournalEntry creates an entry for an existing user. When no title
// is given a dated default is generated.
func (s *JournalService) CreateJournalEntry(req *models.CreateJournalRequest) (*models.Journal, error) {
	exists, err := s.users.Exists(req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewUserNotFound(req.UserID)
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Journal Entry - %s", time.Now().Format("2006-01-02"))
	}

	journal := &models.Journal{
		Title:     title,
		Content:   req.Content,
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// GetJournalByID returns (nil, nil) for an unknown id
func (s *JournalService) GetJournalByID(id uint) (*models.Journal, error) {
	journal, err := s.repo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return journal, nil
}

func (s *JournalService) GetJournalsByUserID(userID uint) ([]models.Journal, error) {
	return s.repo.GetByUserID(userID)
}

// UpdateJournal updates title and/or content of an existing entry
func (s *JournalService) UpdateJournal(id uint, req *models.UpdateJournalRequest) (*models.Journal, error) {
	journal, err := s.GetJournalByID(id)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, apperrors.NewNotFoundError("JOURNAL_NOT_FOUND",
			fmt.Sprintf("Journal not found with ID: %d", id))
	}

	if req.Title != "" {
		journal.Title = req.Title
	}
	if req.Content != "" {
		journal.Content = req.Content
	}
	if err := s.repo.Save(journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// DeleteJournal removes an entry; unknown ids are a no-op
func (s *JournalService) DeleteJournal(id uint) error {
	return s.repo.Delete(id)
}
