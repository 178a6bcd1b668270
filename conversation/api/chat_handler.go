package api

import (
	"net/http"

	"therapeutic-assistant/backend/conversation/models"
	"therapeutic-assistant/backend/conversation/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the lower-level message endpoints: a direct append
// that does not trigger an AI turn, and the ordered message listing
type ChatHandler struct {
	messages *service.MessageService
}

func NewChatHandler(messages *service.MessageService) *ChatHandler {
	return &ChatHandler{messages: messages}
}

// RegisterRoutes registers the chat message routes
func (h *ChatHandler) RegisterRoutes(router *gin.Engine) {
	chatGroup := router.Group("/api/chat")
	{
		chatGroup.POST("/send", h.SendMessage)
		chatGroup.GET("/conversations/:conversationId/messages", h.GetMessagesByConversation)
	}
}

// SendMessage appends a single message without invoking the assistant
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.SaveMessage(req.SenderID, req.ConversationID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetMessagesByConversation lists a conversation's messages in creation order
func (h *ChatHandler) GetMessagesByConversation(c *gin.Context) {
	conversationID, ok := parseID(c, "conversationId")
	if !ok {
		return
	}

	messages, err := h.messages.GetMessagesByConversationID(conversationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
