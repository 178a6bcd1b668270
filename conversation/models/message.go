package models

import (
	"time"
)

// Message is a single chat message. CreatedAt is always assigned
// server-side at append time, never taken from the client.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Content        string    `json:"content" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
	SenderID       uint      `json:"senderId" gorm:"index;not null"`
	ConversationID uint      `json:"conversationId" gorm:"index;not null"`
}

// SendMessageRequest is the request body for a direct message append
// (no AI turn is triggered)
type SendMessageRequest struct {
	SenderID       uint   `json:"senderId" binding:"required"`
	ConversationID uint   `json:"conversationId" binding:"required"`
	Content        string `json:"content" binding:"required"`
}
