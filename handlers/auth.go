package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"popflix/middleware"
	"popflix/services"
)

type AuthHandler struct {
	verifier  *services.GoogleVerifier
	directory *services.UserDirectory
	codec     *services.TokenCodec
}

func NewAuthHandler(verifier *services.GoogleVerifier, directory *services.UserDirectory, codec *services.TokenCodec) *AuthHandler {
	return &AuthHandler{verifier: verifier, directory: directory, codec: codec}
}

// GoogleLogin exchanges a Google access token for a session token, creating
// the user record on first login.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	profile, err := h.verifier.Verify(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredential) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google token"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Identity provider unavailable"})
		return
	}

	var picture *string
	if profile.Picture != "" {
		picture = &profile.Picture
	}

	user, err := h.directory.FindOrCreate(c.Request.Context(), profile.Email, profile.Name, picture)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	token, err := h.codec.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Profile returns the authenticated user as reconciled by the request gate.
func Profile(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
