// internal/database/payment.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/payments"
)

// CreatePayment records a pending subscription purchase.
func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Status = models.PaymentPending

	q := `
	INSERT INTO payments (id, user_id, provider_session_id, amount, status)
	VALUES ($1, $2, $3, $4, $5)
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, p.ID, p.UserID, p.ProviderSessionID, p.Amount, p.Status)
		return e
	})
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPaymentBySession looks a payment up by the provider's session id.
func (s *Store) GetPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error) {
	var p models.Payment
	q := `
	SELECT id, user_id, provider_session_id, amount, nights, status, created_at, completed_at
	FROM payments
	WHERE provider_session_id = $1
	`
	err := s.pool.QueryRow(ctx, q, sessionID).Scan(
		&p.ID, &p.UserID, &p.ProviderSessionID, &p.Amount, &p.Nights,
		&p.Status, &p.CreatedAt, &p.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CompletePaymentBySession marks the payment completed and credits the
// purchased nights to the user, in a single transaction. The status flip
// is a conditional UPDATE checking the current status, so redelivered
// webhooks find zero affected rows and credit nothing: the operation is
// idempotent. Returns the nights credited by this call (0 for a
// redelivery no-op) and whether the payment was already completed.
func (s *Store) CompletePaymentBySession(ctx context.Context, sessionID string) (int, bool, error) {
	var (
		nights    int
		alreadyOK bool
	)
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var (
			userID uuid.UUID
			amount int64
		)
		flip := `
		UPDATE payments
		SET status = $1, completed_at = NOW()
		WHERE provider_session_id = $2 AND status <> $1
		RETURNING user_id, amount
		`
		err := tx.QueryRow(ctx, flip, models.PaymentCompleted, sessionID).Scan(&userID, &amount)
		if errors.Is(err, pgx.ErrNoRows) {
			// either unknown session or already completed
			var status string
			err = tx.QueryRow(ctx, `SELECT status FROM payments WHERE provider_session_id=$1`, sessionID).Scan(&status)
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			alreadyOK = status == models.PaymentCompleted
			return nil
		}
		if err != nil {
			return err
		}

		nights = payments.NightsForAmount(amount)
		if _, err := tx.Exec(ctx, `UPDATE payments SET nights=$1 WHERE provider_session_id=$2`, nights, sessionID); err != nil {
			return err
		}

		credit := `
		UPDATE users
		SET premium_nights = premium_nights + $1,
		    role = CASE WHEN role = $2 THEN $3 ELSE role END
		WHERE id = $4
		`
		_, err = tx.Exec(ctx, credit, nights, models.RoleUser, models.RolePremium, userID)
		return err
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to complete payment: %w", err)
	}
	return nights, alreadyOK, nil
}
