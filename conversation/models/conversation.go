package models

import (
	"time"
)

// Conversation is a chat thread owned by exactly one user. The messages
// slice is loaded in chronological order; a conversation exclusively owns
// its messages, which are removed with it on deletion.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Titre     string    `json:"titre"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages" gorm:"foreignKey:ConversationID"`
}

// CreateConversationRequest is the request body for explicit conversation creation
type CreateConversationRequest struct {
	Titre  string `json:"titre"`
	UserID uint   `json:"userId" binding:"required"`
}

// UpdateTitleRequest is the request body for renaming a conversation
type UpdateTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

// SendTurnRequest is the request body for an orchestrated chat turn.
// ConversationID is optional: when absent a new conversation is created.
type SendTurnRequest struct {
	UserID            uint   `json:"userId" binding:"required"`
	ConversationID    *uint  `json:"conversationId"`
	Message           string `json:"message" binding:"required"`
	ConversationTitle string `json:"conversationTitle"`
}
