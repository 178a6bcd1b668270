package models

import (
	"time"
)

// Mood represents a recorded mood entry
type Mood struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Mood      string    `json:"mood" gorm:"not null"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateMoodRequest is the request body for recording a mood
type CreateMoodRequest struct {
	Mood   string `json:"mood" binding:"required"`
	UserID uint   `json:"userId" binding:"required"`
}

// UpdateMoodRequest is the request body for correcting a mood entry
type UpdateMoodRequest struct {
	Mood string `json:"mood" binding:"required"`
}
