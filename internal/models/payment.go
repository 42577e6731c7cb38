package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses. The only legal transition is pending -> completed.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

type Payment struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	// Session identifier assigned by the payment provider; unique per payment.
	ProviderSessionID string `json:"provider_session_id"`
	// Amount in the smallest currency unit.
	Amount      int64      `json:"amount"`
	Nights      int        `json:"nights"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
