package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"popflix/models"
	"popflix/services"
	"popflix/store"
)

const userContextKey = "currentUser"

// Auth is the request gate: bearer token -> codec validate -> user load ->
// lazy entitlement reconcile -> request-scoped user.
type Auth struct {
	codec       *services.TokenCodec
	directory   *services.UserDirectory
	entitlement *services.Entitlement
}

func NewAuth(codec *services.TokenCodec, directory *services.UserDirectory, entitlement *services.Entitlement) *Auth {
	return &Auth{codec: codec, directory: directory, entitlement: entitlement}
}

func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, _, err := a.codec.Validate(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, services.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		user, err := a.directory.Get(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}

		// Premium expiry is enforced here, on read, not by a sweeper.
		user, err = a.entitlement.Reconcile(c.Request.Context(), user)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the gate-attached user. Only valid on routes behind
// Required.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userContextKey).(*models.User)
	return user
}

// SetCurrentUser injects a user directly; handler tests use it to bypass the
// token flow.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userContextKey, user)
}
