package store

import (
	"context"
	"database/sql"

	"popflix/models"
)

type FavoriteStore struct {
	db *sql.DB
}

func NewFavoriteStore(db *sql.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// Add inserts the favorite unless the (user, content_type, tmdb_id) triplet
// already exists. It reports whether a new row was created.
func (s *FavoriteStore) Add(ctx context.Context, f *models.Favorite) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, content_type, tmdb_id, title, poster_path, added_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		ON CONFLICT (user_id, content_type, tmdb_id) DO NOTHING
	`, f.ID, f.UserID, f.ContentType, f.TMDBID, f.Title, f.PosterPath, f.AddedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *FavoriteStore) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content_type, tmdb_id, title, COALESCE(poster_path, ''), added_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY added_at DESC
		LIMIT 100
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ContentType, &f.TMDBID, &f.Title, &f.PosterPath, &f.AddedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (s *FavoriteStore) Remove(ctx context.Context, userID, contentType string, tmdbID int) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND content_type = $2 AND tmdb_id = $3
	`, userID, contentType, tmdbID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
