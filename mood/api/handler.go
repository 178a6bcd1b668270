package api

import (
	"net/http"
	"strconv"

	"therapeutic-assistant/backend/mood/models"
	"therapeutic-assistant/backend/mood/service"
	apperrors "therapeutic-assistant/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// MoodHandler exposes mood entry CRUD endpoints
type MoodHandler struct {
	service *service.MoodService
}

func NewMoodHandler(svc *service.MoodService) *MoodHandler {
	return &MoodHandler{service: svc}
}

// RegisterRoutes registers the mood routes
func (h *MoodHandler) RegisterRoutes(router *gin.Engine) {
	moodGroup := router.Group("/api/moods")
	{
		moodGroup.POST("", h.CreateMood)
		moodGroup.GET("/user/:userId", h.GetMoodsByUser)
		moodGroup.GET("/:id", h.GetMoodByID)
		moodGroup.PUT("/:id", h.UpdateMood)
		moodGroup.DELETE("/:id", h.DeleteMood)
	}
}

func (h *MoodHandler) CreateMood(c *gin.Context) {
	var req models.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mood, err := h.service.SaveMood(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mood)
}

func (h *MoodHandler) GetMoodsByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	moods, err := h.service.GetMoodsByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moods)
}

func (h *MoodHandler) GetMoodByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	mood, err := h.service.GetMoodByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if mood == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mood not found"})
		return
	}
	c.JSON(http.StatusOK, mood)
}

func (h *MoodHandler) UpdateMood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mood, err := h.service.UpdateMood(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mood)
}

func (h *MoodHandler) DeleteMood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMood(id); err != nil {
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
