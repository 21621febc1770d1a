package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"popflix/middleware"
	"popflix/models"
)

type mockCommentRecords struct {
	mock.Mock
}

func (m *mockCommentRecords) Insert(ctx context.Context, c *models.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentRecords) ListByContent(ctx context.Context, contentType string, tmdbID int) ([]models.Comment, error) {
	args := m.Called(ctx, contentType, tmdbID)
	if c := args.Get(0); c != nil {
		return c.([]models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func commentsRouter(store *mockCommentRecords, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCommentsHandler(store)

	r := gin.New()
	r.POST("/api/comments", func(c *gin.Context) { middleware.SetCurrentUser(c, user) }, h.Add)
	r.GET("/api/comments/:content_type/:tmdb_id", h.List)
	return r
}

func TestAddCommentRequiresPremium(t *testing.T) {
	store := &mockCommentRecords{}
	r := commentsRouter(store, &models.User{ID: "u1", Name: "Viewer", IsPremium: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments",
		strings.NewReader(`{"content_type":"movie","tmdb_id":603,"text":"great"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAddCommentAsPremiumUser(t *testing.T) {
	store := &mockCommentRecords{}
	store.On("Insert", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	expires := time.Now().Add(24 * time.Hour)
	r := commentsRouter(store, &models.User{ID: "u1", Name: "Viewer", IsPremium: true, PremiumExpiresAt: &expires})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments",
		strings.NewReader(`{"content_type":"movie","tmdb_id":603,"text":"great"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Viewer", got.UserName)
	assert.Equal(t, "great", got.Text)
	store.AssertExpectations(t)
}

func TestListCommentsIsPublic(t *testing.T) {
	store := &mockCommentRecords{}
	store.On("ListByContent", mock.Anything, "movie", 603).Return([]models.Comment{
		{ID: "c1", UserName: "Viewer", Text: "great"},
	}, nil)

	r := commentsRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments/movie/603", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}
