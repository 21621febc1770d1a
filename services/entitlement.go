package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"popflix/models"
	"popflix/store"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// PremiumDuration is the premium window granted per completed purchase.
// A renewal resets the window from the grant time; it does not stack onto
// the previous expiry.
const PremiumDuration = 30 * 24 * time.Hour

type EntitlementUsers interface {
	SetPremium(ctx context.Context, id string, expiresAt time.Time) error
	ClearExpiredPremium(ctx context.Context, id string, now time.Time) (bool, error)
}

type EntitlementTransactions interface {
	GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	MarkPaid(ctx context.Context, sessionID, paymentID string, now time.Time) (bool, error)
}

// PurchaseNotifier receives a best-effort notification after a premium grant.
type PurchaseNotifier interface {
	PremiumGranted(user models.User, txn models.PaymentTransaction)
}

// Entitlement drives the FREE/PREMIUM state machine. The only mutation paths
// are ApplyPurchase (poll or webhook) and the lazy Reconcile on read.
type Entitlement struct {
	users     EntitlementUsers
	directory *UserDirectory
	txns      EntitlementTransactions
	notifiers []PurchaseNotifier
	now       func() time.Time
}

func NewEntitlement(users EntitlementUsers, directory *UserDirectory, txns EntitlementTransactions, notifiers ...PurchaseNotifier) *Entitlement {
	return &Entitlement{
		users:     users,
		directory: directory,
		txns:      txns,
		notifiers: notifiers,
		now:       time.Now,
	}
}

// Reconcile lazily downgrades a premium user whose window has closed. It is
// invoked on every authenticated read; there is no background sweep. The
// returned user reflects the post-reconciliation state.
func (e *Entitlement) Reconcile(ctx context.Context, user *models.User) (*models.User, error) {
	if !user.IsPremium || user.PremiumExpiresAt == nil {
		return user, nil
	}
	now := e.now().UTC()
	if now.Before(*user.PremiumExpiresAt) {
		return user, nil
	}

	// The store guards on expiry too, so a concurrent renewal wins.
	downgraded, err := e.users.ClearExpiredPremium(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}
	if downgraded {
		user.IsPremium = false
		user.PremiumExpiresAt = nil
	}
	return user, nil
}

// ApplyPurchase applies the "purchase completed" transition for a checkout
// session. Poll and webhook both funnel through here; the transaction's
// stored payment_status is the idempotency guard, so concurrent triggers
// extend entitlement exactly once. It reports whether this call applied the
// transition.
func (e *Entitlement) ApplyPurchase(ctx context.Context, sessionID, paymentID string) (bool, error) {
	txn, err := e.txns.GetBySessionID(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return false, ErrTransactionNotFound
	}
	if err != nil {
		return false, err
	}
	if txn.PaymentStatus == models.PaymentPaid {
		return false, nil
	}

	now := e.now().UTC()
	applied, err := e.txns.MarkPaid(ctx, sessionID, paymentID, now)
	if err != nil {
		return false, err
	}
	if !applied {
		// Another trigger won the compare-and-set.
		return false, nil
	}

	expiresAt := now.Add(PremiumDuration)
	if err := e.users.SetPremium(ctx, txn.UserID, expiresAt); err != nil {
		return false, fmt.Errorf("transaction %s paid but premium grant failed: %w", txn.ID, err)
	}

	txn.PaymentStatus = models.PaymentPaid
	txn.UpdatedAt = now
	e.notify(ctx, txn)
	return true, nil
}

func (e *Entitlement) notify(ctx context.Context, txn *models.PaymentTransaction) {
	if len(e.notifiers) == 0 {
		return
	}
	user, err := e.directory.Get(ctx, txn.UserID)
	if err != nil {
		fmt.Printf("Error loading user %s for purchase notification: %v\n", txn.UserID, err)
		return
	}
	for _, n := range e.notifiers {
		// Fire-and-forget; a notification failure never fails the purchase.
		go n.PremiumGranted(*user, *txn)
	}
}
