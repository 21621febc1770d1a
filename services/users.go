package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"popflix/models"
	"popflix/store"
)

// UserRecords is the slice of the user store the directory needs.
type UserRecords interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (bool, error)
}

// UserDirectory provides create-or-fetch-by-email semantics over the user
// store. Identity fields of an existing user are deliberately not refreshed
// from the provider on later logins.
type UserDirectory struct {
	users UserRecords
	now   func() time.Time
}

func NewUserDirectory(users UserRecords) *UserDirectory {
	return &UserDirectory{users: users, now: time.Now}
}

func (d *UserDirectory) FindOrCreate(ctx context.Context, email, name string, picture *string) (*models.User, error) {
	existing, err := d.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Picture:   picture,
		IsPremium: false,
		CreatedAt: d.now().UTC(),
	}

	inserted, err := d.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost a first-login race; the row that won is the user.
		return d.users.GetByEmail(ctx, email)
	}
	return user, nil
}

func (d *UserDirectory) Get(ctx context.Context, id string) (*models.User, error) {
	return d.users.GetByID(ctx, id)
}
