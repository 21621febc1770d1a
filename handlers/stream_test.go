package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func streamRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/stream/:content_type/:tmdb_id", GetStreamURL)
	return r
}

func TestGetStreamURLTVWithSeasonEpisode(t *testing.T) {
	r := streamRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stream/tv/1399?season=1&episode=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	for _, key := range []string{"embed_url", "torrent_url", "agg_url", "download_url"} {
		assert.Contains(t, got[key], "type=tv&id=1399&season=1&episode=1")
	}
}

func TestGetStreamURLTVWithoutSeasonEpisode(t *testing.T) {
	r := streamRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stream/tv/1399", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStreamURLInvalidContentType(t *testing.T) {
	r := streamRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stream/anime/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
