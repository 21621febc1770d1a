package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"popflix/models"
	"popflix/store"
)

var (
	ErrUnknownPackage = errors.New("invalid package")
	ErrMissingOrigin  = errors.New("origin URL required")
)

type CheckoutStore interface {
	Insert(ctx context.Context, t *models.PaymentTransaction) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
}

type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, amount float64, currency, productName, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}

// Payments brokers checkout creation and the two completion triggers (status
// poll and webhook) against the entitlement state machine.
type Payments struct {
	provider    CheckoutProvider
	txns        CheckoutStore
	entitlement *Entitlement
	now         func() time.Time
}

func NewPayments(provider CheckoutProvider, txns CheckoutStore, entitlement *Entitlement) *Payments {
	return &Payments{
		provider:    provider,
		txns:        txns,
		entitlement: entitlement,
		now:         time.Now,
	}
}

type Checkout struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateCheckout opens a provider checkout session for the package and
// persists the pending transaction. The local record is written only after
// the provider confirms session creation, so there is never a pending row
// without a real session behind it.
func (p *Payments) CreateCheckout(ctx context.Context, user *models.User, packageID, originURL string) (*Checkout, error) {
	if originURL == "" {
		return nil, ErrMissingOrigin
	}
	if packageID == "" {
		packageID = PackagePremiumMonthly
	}
	pkg, ok := LookupPackage(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}

	origin := strings.TrimRight(originURL, "/")
	successURL := origin + "/premium/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/premium/cancel"

	metadata := map[string]string{
		"user_id":    user.ID,
		"package_id": packageID,
		"email":      user.Email,
	}

	session, err := p.provider.CreateCheckoutSession(ctx, pkg.Amount, pkg.Currency, "PopFlix Premium", successURL, cancelURL, metadata)
	if err != nil {
		return nil, err
	}

	now := p.now().UTC()
	txn := &models.PaymentTransaction{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		SessionID:     session.ID,
		Amount:        pkg.Amount,
		Currency:      pkg.Currency,
		PaymentStatus: models.PaymentPending,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.txns.Insert(ctx, txn); err != nil {
		return nil, err
	}

	return &Checkout{CheckoutURL: session.URL, SessionID: session.ID}, nil
}

type CheckoutStatus struct {
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// PollStatus asks the provider for the authoritative session state and, when
// it reports paid, applies the entitlement transition. Safe to call any
// number of times; the stored payment_status guards the transition.
func (p *Payments) PollStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	if _, err := p.txns.GetBySessionID(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	session, err := p.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.PaymentStatus == models.PaymentPaid {
		if _, err := p.entitlement.ApplyPurchase(ctx, sessionID, session.PaymentIntent); err != nil {
			return nil, err
		}
	}

	return &CheckoutStatus{
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		Amount:        session.AmountMajor(),
		Currency:      session.Currency,
	}, nil
}

// HandleWebhook verifies the provider signature and applies the completion
// transition for checkout.session.completed events. A webhook for a session
// this instance never recorded is acknowledged and dropped.
func (p *Payments) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := p.provider.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return err
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	session, err := event.Session()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if _, err := p.entitlement.ApplyPurchase(ctx, session.ID, session.PaymentIntent); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			fmt.Printf("Webhook for unknown checkout session %s ignored\n", session.ID)
			return nil
		}
		return err
	}
	return nil
}
