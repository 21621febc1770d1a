package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"popflix/services"
)

// GetStreamURL builds the player URLs for a title. TV shows require both
// season and episode query parameters.
func GetStreamURL(c *gin.Context) {
	contentType := c.Param("content_type")
	tmdbID, err := strconv.Atoi(c.Param("tmdb_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tmdb_id"})
		return
	}

	season := intQuery(c, "season")
	episode := intQuery(c, "episode")

	links, err := services.ResolveStreamLinks(contentType, tmdbID, season, episode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSeasonEpisodeRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Season and episode required for TV shows"})
		case errors.Is(err, services.ErrInvalidContentType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve stream"})
		}
		return
	}

	c.JSON(http.StatusOK, links)
}

func intQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
