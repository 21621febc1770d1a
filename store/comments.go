package store

import (
	"context"
	"database/sql"

	"popflix/models"
)

type CommentStore struct {
	db *sql.DB
}

func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) Insert(ctx context.Context, c *models.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, user_id, user_name, content_type, tmdb_id, text, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.UserID, c.UserName, c.ContentType, c.TMDBID, c.Text, c.ParentID, c.CreatedAt)
	return err
}

func (s *CommentStore) ListByContent(ctx context.Context, contentType string, tmdbID int) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, user_name, content_type, tmdb_id, text, parent_id, created_at
		FROM comments
		WHERE content_type = $1 AND tmdb_id = $2
		ORDER BY created_at DESC
		LIMIT 1000
	`, contentType, tmdbID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserName, &c.ContentType, &c.TMDBID, &c.Text, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
