package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"popflix/middleware"
	"popflix/models"
	"popflix/store"
)

type mockFavoriteRecords struct {
	mock.Mock
}

func (m *mockFavoriteRecords) Add(ctx context.Context, f *models.Favorite) (bool, error) {
	args := m.Called(ctx, f)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRecords) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	args := m.Called(ctx, userID)
	if f := args.Get(0); f != nil {
		return f.([]models.Favorite), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFavoriteRecords) Remove(ctx context.Context, userID, contentType string, tmdbID int) error {
	args := m.Called(ctx, userID, contentType, tmdbID)
	return args.Error(0)
}

func favoritesRouter(recs *mockFavoriteRecords) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFavoritesHandler(recs)
	user := &models.User{ID: "u1", Name: "Viewer"}

	r := gin.New()
	auth := func(c *gin.Context) { middleware.SetCurrentUser(c, user) }
	r.POST("/api/favorites", auth, h.Add)
	r.GET("/api/favorites", auth, h.List)
	r.DELETE("/api/favorites/:content_type/:tmdb_id", auth, h.Remove)
	return r
}

func TestAddFavorite(t *testing.T) {
	recs := &mockFavoriteRecords{}
	recs.On("Add", mock.Anything, mock.AnythingOfType("*models.Favorite")).Return(true, nil)
	r := favoritesRouter(recs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favorites",
		strings.NewReader(`{"content_type":"tv","tmdb_id":1399,"title":"Game of Thrones"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Favorite
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1399, got.TMDBID)
	assert.Equal(t, "u1", got.UserID)
}

func TestAddDuplicateFavoriteIsNoop(t *testing.T) {
	recs := &mockFavoriteRecords{}
	recs.On("Add", mock.Anything, mock.AnythingOfType("*models.Favorite")).Return(false, nil)
	r := favoritesRouter(recs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favorites",
		strings.NewReader(`{"content_type":"tv","tmdb_id":1399,"title":"Game of Thrones"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Already in favorites"}`, w.Body.String())
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	recs := &mockFavoriteRecords{}
	recs.On("Remove", mock.Anything, "u1", "movie", 603).Return(store.ErrNotFound)
	r := favoritesRouter(recs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/favorites/movie/603", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFavorite(t *testing.T) {
	recs := &mockFavoriteRecords{}
	recs.On("Remove", mock.Anything, "u1", "movie", 603).Return(nil)
	r := favoritesRouter(recs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/favorites/movie/603", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
