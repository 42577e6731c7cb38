// internal/handlers/payment_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/payments"
)

// fakePaymentStore mimics the datastore's conditional-update semantics:
// only a pending payment can be completed, and only once.
type fakePaymentStore struct {
	payments map[string]*models.Payment
	balance  map[string]int // user id -> credited nights
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		payments: make(map[string]*models.Payment),
		balance:  make(map[string]int),
	}
}

func (f *fakePaymentStore) CreatePayment(_ context.Context, p *models.Payment) error {
	if _, exists := f.payments[p.ProviderSessionID]; exists {
		return fmt.Errorf("insert payment: %w", &pgconn.PgError{Code: "23505"})
	}
	p.Status = models.PaymentPending
	f.payments[p.ProviderSessionID] = p
	return nil
}

func (f *fakePaymentStore) GetPaymentBySession(_ context.Context, sessionID string) (*models.Payment, error) {
	p, ok := f.payments[sessionID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) CompletePaymentBySession(_ context.Context, sessionID string) (int, bool, error) {
	p, ok := f.payments[sessionID]
	if !ok {
		return 0, false, database.ErrNotFound
	}
	if p.Status == models.PaymentCompleted {
		return 0, true, nil
	}
	p.Status = models.PaymentCompleted
	nights := payments.NightsForAmount(p.Amount)
	p.Nights = nights
	f.balance[p.UserID.String()] += nights
	return nights, false, nil
}

func deliverWebhook(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/payments/webhook", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestWebhookIdempotence ensures a redelivered webhook does not
// double-credit nights.
func TestWebhookIdempotence(t *testing.T) {
	store := newFakePaymentStore()
	p := &models.Payment{ProviderSessionID: "sess-1", Amount: 3600}
	store.CreatePayment(context.Background(), p)

	h := PaymentWebhookHandler(store)
	body := `{"session_id":"sess-1","status":"paid"}`

	w1 := deliverWebhook(t, h, body)
	if w1.Code != http.StatusOK {
		t.Fatalf("first delivery: expected 200, got %d, body=%s", w1.Code, w1.Body.String())
	}
	var resp1 webhookResponse
	if err := json.Unmarshal(w1.Body.Bytes(), &resp1); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp1.Nights != 8 {
		t.Fatalf("expected 8 nights for amount 3600, got %d", resp1.Nights)
	}

	w2 := deliverWebhook(t, h, body)
	if w2.Code != http.StatusOK {
		t.Fatalf("redelivery: expected 200, got %d", w2.Code)
	}
	var resp2 webhookResponse
	if err := json.Unmarshal(w2.Body.Bytes(), &resp2); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp2.AlreadyCompleted || resp2.Nights != 0 {
		t.Fatalf("redelivery must be a no-op, got %+v", resp2)
	}

	if got := store.balance[p.UserID.String()]; got != 8 {
		t.Fatalf("expected final balance 8 after double delivery, got %d", got)
	}
}

// TestCheckoutDuplicateSession ensures recording the same provider
// session twice answers 409, not a generic 500.
func TestCheckoutDuplicateSession(t *testing.T) {
	store := newFakePaymentStore()
	h := CheckoutHandler(store)
	body := `{"provider_session_id":"sess-dup","amount":2000}`

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/payments/checkout", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := post(); w.Code != http.StatusCreated {
		t.Fatalf("first checkout: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
	if w := post(); w.Code != http.StatusConflict {
		t.Fatalf("duplicate checkout: expected 409, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestWebhookMalformedPayload(t *testing.T) {
	h := PaymentWebhookHandler(newFakePaymentStore())

	w := deliverWebhook(t, h, `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed payload, got %d", w.Code)
	}
}

func TestWebhookMissingSession(t *testing.T) {
	h := PaymentWebhookHandler(newFakePaymentStore())

	w := deliverWebhook(t, h, `{"session_id":"","status":"paid"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing session, got %d", w.Code)
	}
}

func TestWebhookUnknownSession(t *testing.T) {
	h := PaymentWebhookHandler(newFakePaymentStore())

	// 400 so the provider retries; the session may just not be recorded yet
	w := deliverWebhook(t, h, `{"session_id":"nope","status":"paid"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown session, got %d", w.Code)
	}
}

func TestWebhookUnexpectedStatus(t *testing.T) {
	store := newFakePaymentStore()
	store.CreatePayment(context.Background(), &models.Payment{ProviderSessionID: "sess-2", Amount: 2000})

	h := PaymentWebhookHandler(store)
	w := deliverWebhook(t, h, `{"session_id":"sess-2","status":"cancelled"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unexpected status, got %d", w.Code)
	}
	if store.payments["sess-2"].Status != models.PaymentPending {
		t.Fatal("payment must stay pending on a non-paid status")
	}
}
