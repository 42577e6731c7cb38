package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/scoring"
)

// PlayerStore is the slice of the datastore the player handlers need.
type PlayerStore interface {
	PlayerStats(ctx context.Context, playerID uuid.UUID) (*scoring.PlayerStats, error)
	PlayerHistory(ctx context.Context, playerID uuid.UUID) ([]database.PlayerGameRecord, error)
	SearchPlayers(ctx context.Context, f database.PlayerFilter) ([]models.User, error)
}

// PlayerStatsHandler returns per-role win rates for a player, recomputed
// from the full game history on every call.
func PlayerStatsHandler(store PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "invalid player id", http.StatusBadRequest)
			return
		}
		stats, err := store.PlayerStats(r.Context(), id)
		if err != nil {
			log.WithError(err).Error("player stats")
			http.Error(w, "error computing stats", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// PlayerHistoryHandler returns a player's full game-by-game record. The
// router gates this behind the premium (or admin) role; the aggregate
// stats endpoint stays public.
func PlayerHistoryHandler(store PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "invalid player id", http.StatusBadRequest)
			return
		}
		records, err := store.PlayerHistory(r.Context(), id)
		if err != nil {
			log.WithError(err).Error("player history")
			http.Error(w, "error loading history", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []database.PlayerGameRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// SearchPlayersHandler runs the filtered player search.
func SearchPlayersHandler(store PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.PlayerFilter{
			Search:       q.Get("search"),
			ClubID:       q.Get("club"),
			FederationID: q.Get("federation"),
			JudgesOnly:   q.Get("judges") == "true",
		}

		users, err := store.SearchPlayers(r.Context(), filter)
		if err != nil {
			log.WithError(err).Error("search players")
			http.Error(w, "error searching players", http.StatusInternalServerError)
			return
		}
		if users == nil {
			users = []models.User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}
