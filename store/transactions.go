package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"popflix/models"
)

type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Insert(ctx context.Context, t *models.PaymentTransaction) error {
	metadataJSON, err := json.Marshal(t.Metadata)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payment_transactions
			(id, user_id, session_id, payment_id, amount, currency, payment_status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10)
	`, t.ID, t.UserID, t.SessionID, t.PaymentID, t.Amount, t.Currency, t.PaymentStatus, metadataJSON, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *TransactionStore) GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, COALESCE(payment_id, ''), amount, currency, payment_status, metadata, created_at, updated_at
		FROM payment_transactions WHERE session_id = $1
	`, sessionID)

	var t models.PaymentTransaction
	var metadataRaw []byte
	err := row.Scan(&t.ID, &t.UserID, &t.SessionID, &t.PaymentID, &t.Amount, &t.Currency,
		&t.PaymentStatus, &metadataRaw, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &t.Metadata); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// MarkPaid is the idempotency guard for the premium transition: a
// compare-and-set on payment_status. It reports whether this call won the
// transition; a transaction that is already paid is left untouched.
func (s *TransactionStore) MarkPaid(ctx context.Context, sessionID, paymentID string, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET payment_status = 'paid', payment_id = COALESCE(NULLIF($2, ''), payment_id), updated_at = $3
		WHERE session_id = $1 AND payment_status <> 'paid'
	`, sessionID, paymentID, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
