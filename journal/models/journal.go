package models

import (
	"time"
)

// Journal represents a personal journal entry
type Journal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Content   string    `json:"content" gorm:"type:text"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateJournalRequest is the request body for creating a journal entry.
// Title is optional; a dated default is generated when omitted.
type CreateJournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
}

// UpdateJournalRequest is the request body for updating a journal entry
type UpdateJournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
