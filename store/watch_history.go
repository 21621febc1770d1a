package store

import (
	"context"
	"database/sql"

	"popflix/models"
)

type WatchHistoryStore struct {
	db *sql.DB
}

func NewWatchHistoryStore(db *sql.DB) *WatchHistoryStore {
	return &WatchHistoryStore{db: db}
}

// Upsert keeps at most one history row per (user, content_type, tmdb_id);
// a rewatch replaces progress and timestamps in place.
func (s *WatchHistoryStore) Upsert(ctx context.Context, w *models.WatchHistory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watch_history
			(id, user_id, content_type, tmdb_id, title, poster_path, progress, season, episode, last_watched)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
		ON CONFLICT (user_id, content_type, tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			poster_path = EXCLUDED.poster_path,
			progress = EXCLUDED.progress,
			season = EXCLUDED.season,
			episode = EXCLUDED.episode,
			last_watched = EXCLUDED.last_watched
	`, w.ID, w.UserID, w.ContentType, w.TMDBID, w.Title, w.PosterPath, w.Progress, w.Season, w.Episode, w.LastWatched)
	return err
}

func (s *WatchHistoryStore) ListByUser(ctx context.Context, userID string) ([]models.WatchHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content_type, tmdb_id, title, COALESCE(poster_path, ''), progress, season, episode, last_watched
		FROM watch_history
		WHERE user_id = $1
		ORDER BY last_watched DESC
		LIMIT 100
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.WatchHistory{}
	for rows.Next() {
		var w models.WatchHistory
		if err := rows.Scan(&w.ID, &w.UserID, &w.ContentType, &w.TMDBID, &w.Title, &w.PosterPath,
			&w.Progress, &w.Season, &w.Episode, &w.LastWatched); err != nil {
			return nil, err
		}
		history = append(history, w)
	}
	return history, rows.Err()
}
