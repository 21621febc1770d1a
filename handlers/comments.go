package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"popflix/middleware"
	"popflix/models"
)

type CommentRecords interface {
	Insert(ctx context.Context, comment *models.Comment) error
	ListByContent(ctx context.Context, contentType string, tmdbID int) ([]models.Comment, error)
}

type CommentsHandler struct {
	store CommentRecords
}

func NewCommentsHandler(store CommentRecords) *CommentsHandler {
	return &CommentsHandler{store: store}
}

// Add posts a comment. Commenting is a premium feature; listing is public.
func (h *CommentsHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsPremium {
		c.JSON(http.StatusForbidden, gin.H{"error": "Premium membership required for comments"})
		return
	}

	var req struct {
		ContentType string  `json:"content_type" binding:"required,oneof=movie tv"`
		TMDBID      int     `json:"tmdb_id" binding:"required"`
		Text        string  `json:"text" binding:"required"`
		ParentID    *string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	comment := &models.Comment{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		UserName:    user.Name,
		ContentType: req.ContentType,
		TMDBID:      req.TMDBID,
		Text:        req.Text,
		ParentID:    req.ParentID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.store.Insert(c.Request.Context(), comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentsHandler) List(c *gin.Context) {
	contentType := c.Param("content_type")
	tmdbID, err := strconv.Atoi(c.Param("tmdb_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tmdb_id"})
		return
	}

	comments, err := h.store.ListByContent(c.Request.Context(), contentType, tmdbID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
