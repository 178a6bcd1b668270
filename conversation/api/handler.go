package api

import (
	"net/http"
	"strconv"

	"therapeutic-assistant/backend/conversation/models"
	"therapeutic-assistant/backend/conversation/service"
	apperrors "therapeutic-assistant/backend/pkg/errors"
	"therapeutic-assistant/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ConversationHandler exposes conversation lifecycle and chat turn endpoints
type ConversationHandler struct {
	conversations *service.ConversationService
	chat          *service.ChatService
	log           *logger.Logger
}

func NewConversationHandler(
	conversations *service.ConversationService,
	chat *service.ChatService,
	log *logger.Logger,
) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		chat:          chat,
		log:           log,
	}
}

// RegisterRoutes registers the conversation routes
func (h *ConversationHandler) RegisterRoutes(router *gin.Engine) {
	convGroup := router.Group("/api/conversations")
	{
		convGroup.POST("", h.CreateConversation)
		convGroup.POST("/send", h.SendTurn)
		convGroup.GET("/user/:userId", h.GetConversationsByUser)
		convGroup.GET("/:id", h.GetConversationByID)
		convGroup.PUT("/:id/title", h.UpdateTitle)
		convGroup.DELETE("/:id", h.DeleteConversation)
	}
}

// CreateConversation creates a conversation for an existing user
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation, err := h.conversations.CreateConversation(req.UserID, req.Titre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conversation)
}

// SendTurn runs one orchestrated chat turn and returns the updated conversation
func (h *ConversationHandler) SendTurn(c *gin.Context) {
	var req models.SendTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation, err := h.chat.SendTurn(
		c.Request.Context(),
		req.UserID,
		req.ConversationID,
		req.Message,
		req.ConversationTitle,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// GetConversationsByUser lists a user's conversations
func (h *ConversationHandler) GetConversationsByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	conversations, err := h.conversations.GetConversationsByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// GetConversationByID returns one conversation with its messages
func (h *ConversationHandler) GetConversationByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	conversation, err := h.conversations.GetConversationByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if conversation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// UpdateTitle renames a conversation
func (h *ConversationHandler) UpdateTitle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation, err := h.conversations.UpdateTitle(id, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// DeleteConversation removes a conversation and its messages; idempotent
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.conversations.DeleteConversation(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation supprimée"})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
