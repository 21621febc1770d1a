package store

import (
	"context"
	"database/sql"
	"time"

	"popflix/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, email, name, picture, is_premium, premium_expires_at, created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.IsPremium, &u.PremiumExpiresAt, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

// Insert adds a new user. On an email collision the insert is a no-op and
// Insert returns false, so concurrent first logins cannot create duplicates.
func (s *UserStore) Insert(ctx context.Context, u *models.User) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, picture, is_premium, premium_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
	`, u.ID, u.Email, u.Name, u.Picture, u.IsPremium, u.PremiumExpiresAt, u.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *UserStore) SetPremium(ctx context.Context, id string, expiresAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_premium = TRUE, premium_expires_at = $2 WHERE id = $1
	`, id, expiresAt)
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

// ClearExpiredPremium downgrades the user only if their premium window has
// already closed, so a concurrent renewal cannot be clobbered.
func (s *UserStore) ClearExpiredPremium(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_premium = FALSE, premium_expires_at = NULL
		WHERE id = $1 AND is_premium = TRUE AND premium_expires_at IS NOT NULL AND premium_expires_at <= $2
	`, id, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
