package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/middleware"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// PaymentStore is the slice of the datastore the payment handlers need.
type PaymentStore interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error)
	CompletePaymentBySession(ctx context.Context, sessionID string) (int, bool, error)
}

type checkoutRequest struct {
	ProviderSessionID string `json:"provider_session_id"`
	Amount            int64  `json:"amount"`
}

// CheckoutHandler records a pending premium purchase for the caller. The
// provider session is created client-side; we only track it.
func CheckoutHandler(store PaymentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.ProviderSessionID == "" || req.Amount <= 0 {
			http.Error(w, "provider_session_id and a positive amount are required", http.StatusBadRequest)
			return
		}

		payment := models.Payment{
			UserID:            middleware.UserID(r.Context()),
			ProviderSessionID: req.ProviderSessionID,
			Amount:            req.Amount,
		}
		if err := store.CreatePayment(r.Context(), &payment); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				http.Error(w, "payment session already recorded", http.StatusConflict)
				return
			}
			log.WithError(err).Error("create payment")
			http.Error(w, "error creating payment", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, payment)
	}
}

// PaymentStatusHandler lets the purchaser poll their payment by session
// id. Admins may inspect any payment.
func PaymentStatusHandler(store PaymentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		payment, err := store.GetPaymentBySession(r.Context(), sessionID)
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.WithError(err).Error("payment status")
			http.Error(w, "error loading payment", http.StatusInternalServerError)
			return
		}
		if payment.UserID != middleware.UserID(r.Context()) && middleware.Role(r.Context()) != models.RoleAdmin {
			http.Error(w, "not your payment", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, payment)
	}
}

type webhookRequest struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type webhookResponse struct {
	Nights           int  `json:"nights"`
	AlreadyCompleted bool `json:"already_completed"`
}

// PaymentWebhookHandler processes the provider's payment notification.
// Failures answer 400 so the provider's retry mechanism redelivers;
// completion is idempotent, so a redelivery for an already-completed
// payment is a 200 no-op and credits nothing.
func PaymentWebhookHandler(store PaymentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.WithError(err).Warn("payment webhook: malformed payload")
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}
		if req.Status != "paid" {
			log.Warnf("payment webhook: unexpected status %q for session %s", req.Status, req.SessionID)
			http.Error(w, "unexpected status", http.StatusBadRequest)
			return
		}

		nights, already, err := store.CompletePaymentBySession(r.Context(), req.SessionID)
		if errors.Is(err, database.ErrNotFound) {
			log.Warnf("payment webhook: unknown session %s", req.SessionID)
			http.Error(w, "unknown session", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.WithError(err).Error("payment webhook")
			http.Error(w, "error completing payment", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, webhookResponse{Nights: nights, AlreadyCompleted: already})
	}
}
