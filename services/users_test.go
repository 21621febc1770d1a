package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"popflix/models"
	"popflix/store"
)

func TestFindOrCreateReturnsExistingUnchanged(t *testing.T) {
	users := &mockUserRecords{}
	existing := &models.User{ID: "u1", Email: "viewer@example.com", Name: "Old Name"}
	users.On("GetByEmail", mock.Anything, "viewer@example.com").Return(existing, nil)

	d := NewUserDirectory(users)
	got, err := d.FindOrCreate(context.Background(), "viewer@example.com", "New Name", nil)

	assert.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	// Identity fields are not refreshed on subsequent logins.
	assert.Equal(t, "Old Name", got.Name)
	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestFindOrCreateSameEmailYieldsSameID(t *testing.T) {
	users := &mockUserRecords{}
	users.On("GetByEmail", mock.Anything, "viewer@example.com").Return(nil, store.ErrNotFound).Once()

	var created *models.User
	users.On("Insert", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.User)
	}).Return(true, nil).Once()

	d := NewUserDirectory(users)
	first, err := d.FindOrCreate(context.Background(), "viewer@example.com", "Viewer", nil)
	assert.NoError(t, err)
	assert.False(t, first.IsPremium)
	assert.NotEmpty(t, first.ID)

	users.On("GetByEmail", mock.Anything, "viewer@example.com").Return(created, nil)
	second, err := d.FindOrCreate(context.Background(), "viewer@example.com", "Viewer", nil)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	users.AssertNumberOfCalls(t, "Insert", 1)
}

func TestFindOrCreateLosesInsertRace(t *testing.T) {
	users := &mockUserRecords{}
	winner := &models.User{ID: "winner", Email: "viewer@example.com"}

	users.On("GetByEmail", mock.Anything, "viewer@example.com").Return(nil, store.ErrNotFound).Once()
	users.On("Insert", mock.Anything, mock.AnythingOfType("*models.User")).Return(false, nil)
	users.On("GetByEmail", mock.Anything, "viewer@example.com").Return(winner, nil)

	d := NewUserDirectory(users)
	got, err := d.FindOrCreate(context.Background(), "viewer@example.com", "Viewer", nil)

	assert.NoError(t, err)
	assert.Equal(t, "winner", got.ID)
}
