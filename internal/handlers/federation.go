package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// FederationStore is the slice of the datastore the federation handlers need.
type FederationStore interface {
	CreateFederation(ctx context.Context, fed *models.Federation) error
	ListFederations(ctx context.Context) ([]models.Federation, error)
	FederationPlayers(ctx context.Context, federationID uuid.UUID) ([]database.FederationPlayer, error)
}

type createFederationRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// CreateFederationHandler registers a federation. Admin only, gated by
// the router.
func CreateFederationHandler(store FederationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFederationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		fed := models.Federation{Name: req.Name, Country: req.Country}
		if err := store.CreateFederation(r.Context(), &fed); err != nil {
			log.WithError(err).Error("create federation")
			http.Error(w, "error creating federation", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, fed)
	}
}

// ListFederationsHandler returns every federation with its computed
// member counts.
func ListFederationsHandler(store FederationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feds, err := store.ListFederations(r.Context())
		if err != nil {
			log.WithError(err).Error("list federations")
			http.Error(w, "error listing federations", http.StatusInternalServerError)
			return
		}
		if feds == nil {
			feds = []models.Federation{}
		}
		writeJSON(w, http.StatusOK, feds)
	}
}

// FederationPlayersHandler lists a federation's players with win rates.
func FederationPlayersHandler(store FederationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "invalid federation id", http.StatusBadRequest)
			return
		}
		players, err := store.FederationPlayers(r.Context(), id)
		if err != nil {
			log.WithError(err).Error("federation players")
			http.Error(w, "error listing federation players", http.StatusInternalServerError)
			return
		}
		if players == nil {
			players = []database.FederationPlayer{}
		}
		writeJSON(w, http.StatusOK, players)
	}
}
