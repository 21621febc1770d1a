package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"popflix/middleware"
	"popflix/models"
	"popflix/store"
)

type FavoriteRecords interface {
	Add(ctx context.Context, f *models.Favorite) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
	Remove(ctx context.Context, userID, contentType string, tmdbID int) error
}

type FavoritesHandler struct {
	store FavoriteRecords
}

func NewFavoritesHandler(store FavoriteRecords) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

// Add favorites a title. Re-favoriting an existing triplet is a no-op.
func (h *FavoritesHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		ContentType string `json:"content_type" binding:"required,oneof=movie tv"`
		TMDBID      int    `json:"tmdb_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		PosterPath  string `json:"poster_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	favorite := &models.Favorite{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		ContentType: req.ContentType,
		TMDBID:      req.TMDBID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		AddedAt:     time.Now().UTC(),
	}

	created, err := h.store.Add(c.Request.Context(), favorite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already in favorites"})
		return
	}
	c.JSON(http.StatusOK, favorite)
}

func (h *FavoritesHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	favorites, err := h.store.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoritesHandler) Remove(c *gin.Context) {
	user := middleware.CurrentUser(c)

	contentType := c.Param("content_type")
	tmdbID, err := strconv.Atoi(c.Param("tmdb_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tmdb_id"})
		return
	}

	if err := h.store.Remove(c.Request.Context(), user.ID, contentType, tmdbID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}
