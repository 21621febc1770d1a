package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"popflix/middleware"
	"popflix/models"
)

type WatchHistoryRecords interface {
	Upsert(ctx context.Context, w *models.WatchHistory) error
	ListByUser(ctx context.Context, userID string) ([]models.WatchHistory, error)
}

type WatchHistoryHandler struct {
	store WatchHistoryRecords
}

func NewWatchHistoryHandler(store WatchHistoryRecords) *WatchHistoryHandler {
	return &WatchHistoryHandler{store: store}
}

// Add records progress for a title. One row per (user, content_type,
// tmdb_id); rewatching updates it in place.
func (h *WatchHistoryHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		ContentType string  `json:"content_type" binding:"required,oneof=movie tv"`
		TMDBID      int     `json:"tmdb_id" binding:"required"`
		Title       string  `json:"title" binding:"required"`
		PosterPath  string  `json:"poster_path"`
		Progress    float64 `json:"progress"`
		Season      *int    `json:"season"`
		Episode     *int    `json:"episode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	item := &models.WatchHistory{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		ContentType: req.ContentType,
		TMDBID:      req.TMDBID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		Progress:    req.Progress,
		Season:      req.Season,
		Episode:     req.Episode,
		LastWatched: time.Now().UTC(),
	}

	if err := h.store.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save watch history"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *WatchHistoryHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	history, err := h.store.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, history)
}
