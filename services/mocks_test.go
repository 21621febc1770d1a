package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"popflix/models"
)

// mockUserRecords implements UserRecords and EntitlementUsers.
type mockUserRecords struct {
	mock.Mock
}

func (m *mockUserRecords) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRecords) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRecords) Insert(ctx context.Context, u *models.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRecords) SetPremium(ctx context.Context, id string, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *mockUserRecords) ClearExpiredPremium(ctx context.Context, id string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}

// mockTransactions implements CheckoutStore and EntitlementTransactions.
type mockTransactions struct {
	mock.Mock
}

func (m *mockTransactions) Insert(ctx context.Context, t *models.PaymentTransaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTransactions) GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	args := m.Called(ctx, sessionID)
	if t := args.Get(0); t != nil {
		return t.(*models.PaymentTransaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactions) MarkPaid(ctx context.Context, sessionID, paymentID string, now time.Time) (bool, error) {
	args := m.Called(ctx, sessionID, paymentID, now)
	return args.Bool(0), args.Error(1)
}

// mockProvider implements CheckoutProvider.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, amount float64, currency, productName, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error) {
	args := m.Called(ctx, amount, currency, productName, successURL, cancelURL, metadata)
	if s := args.Get(0); s != nil {
		return s.(*CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if s := args.Get(0); s != nil {
		return s.(*CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	args := m.Called(payload, signatureHeader)
	if e := args.Get(0); e != nil {
		return e.(*WebhookEvent), args.Error(1)
	}
	return nil, args.Error(1)
}
