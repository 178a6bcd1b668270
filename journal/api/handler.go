package api

import (
	"net/http"
	"strconv"

	"therapeutic-assistant/backend/journal/models"
	"therapeutic-assistant/backend/journal/service"
	apperrors "therapeutic-assistant/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// JournalHandler exposes journal entry CRUD endpoints
type JournalHandler struct {
	service *service.JournalService
}

func NewJournalHandler(svc *service.JournalService) *JournalHandler {
	return &JournalHandler{service: svc}
}

// RegisterRoutes registers the journal routes
func (h *JournalHandler) RegisterRoutes(router *gin.Engine) {
	journalGroup := router.Group("/api/journals")
	{
		journalGroup.POST("", h.CreateJournal)
		journalGroup.GET("/user/:userId", h.GetJournalsByUser)
		journalGroup.GET("/:id", h.GetJournalByID)
		journalGroup.PUT("/:id", h.UpdateJournal)
		journalGroup.DELETE("/:id", h.DeleteJournal)
	}
}

func (h *JournalHandler) CreateJournal(c *gin.Context) {
	var req models.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal, err := h.service.CreateJournalEntry(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, journal)
}

func (h *JournalHandler) GetJournalsByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	journals, err := h.service.GetJournalsByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, journals)
}

func (h *JournalHandler) GetJournalByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	journal, err := h.service.GetJournalByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if journal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		return
	}
	c.JSON(http.StatusOK, journal)
}

func (h *JournalHandler) UpdateJournal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal, err := h.service.UpdateJournal(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

func (h *JournalHandler) DeleteJournal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteJournal(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
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
