// internal/handlers/player_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/foundermafstat/mafstat2-sub002/internal/auth"
	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/middleware"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/scoring"
)

type fakePlayerStore struct {
	history map[uuid.UUID][]database.PlayerGameRecord
}

func (f *fakePlayerStore) PlayerStats(_ context.Context, playerID uuid.UUID) (*scoring.PlayerStats, error) {
	var parts []scoring.Participation
	for _, r := range f.history[playerID] {
		parts = append(parts, scoring.Participation{Role: r.Role, Result: r.Game.Result})
	}
	stats := scoring.AggregateStats(parts)
	return &stats, nil
}

func (f *fakePlayerStore) PlayerHistory(_ context.Context, playerID uuid.UUID) ([]database.PlayerGameRecord, error) {
	return f.history[playerID], nil
}

func (f *fakePlayerStore) SearchPlayers(_ context.Context, _ database.PlayerFilter) ([]models.User, error) {
	return nil, nil
}

func TestPlayerHistory(t *testing.T) {
	playerID := uuid.New()
	store := &fakePlayerStore{history: map[uuid.UUID][]database.PlayerGameRecord{
		playerID: {
			{Game: models.Game{Result: models.ResultCiviliansWin}, Role: models.RoleSheriff, Win: true},
			{Game: models.Game{Result: models.ResultMafiaWin}, Role: models.RoleCivilian},
		},
	}}

	h := PlayerHistoryHandler(store)
	req := httptest.NewRequest("GET", "/players/history?id="+playerID.String(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var records []database.PlayerGameRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

// TestPlayerHistoryPremiumGate exercises the route gating used in
// cmd/server: plain users are refused, premium and admin pass.
func TestPlayerHistoryPremiumGate(t *testing.T) {
	auth.Init(0) // ephemeral keys, no DB needed

	playerID := uuid.New()
	store := &fakePlayerStore{history: map[uuid.UUID][]database.PlayerGameRecord{}}
	gated := middleware.Require(models.RolePremium, models.RoleAdmin)(PlayerHistoryHandler(store))

	cases := []struct {
		role string
		want int
	}{
		{models.RoleUser, http.StatusForbidden},
		{models.RolePremium, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		token, _ := auth.CreateJWT(uuid.NewString(), tc.role)
		req := httptest.NewRequest("GET", "/players/history?id="+playerID.String(), nil)
		req.Header.Set("Cookie", "auth_token="+token)
		w := httptest.NewRecorder()
		gated.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, w.Code)
		}
	}
}
