package models

import (
	"time"
)

type Movie struct {
	TMDBID       int     `json:"tmdb_id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	GenreIDs     []int   `json:"genre_ids"`
	Adult        bool    `json:"adult"`
}

type TVShow struct {
	TMDBID       int     `json:"tmdb_id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	GenreIDs     []int   `json:"genre_ids"`
}

type WatchHistory struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ContentType string    `json:"content_type"` // movie, tv
	TMDBID      int       `json:"tmdb_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	Progress    float64   `json:"progress"` // 0.0 to 1.0
	Season      *int      `json:"season,omitempty"`
	Episode     *int      `json:"episode,omitempty"`
	LastWatched time.Time `json:"last_watched"`
}

type Favorite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ContentType string    `json:"content_type"` // movie, tv
	TMDBID      int       `json:"tmdb_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

type Comment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	ContentType string    `json:"content_type"`
	TMDBID      int       `json:"tmdb_id"`
	Text        string    `json:"text"`
	ParentID    *string   `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

type PaymentTransaction struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	SessionID     string            `json:"session_id"`
	PaymentID     string            `json:"payment_id,omitempty"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentStatus string            `json:"payment_status"` // pending, paid, failed
	Metadata      map[string]string `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
