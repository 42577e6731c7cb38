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

// ClubStore is the slice of the datastore the club handlers need.
type ClubStore interface {
	CreateClub(ctx context.Context, club *models.Club) error
	SearchClubs(ctx context.Context, f database.ClubFilter) ([]models.Club, error)
}

type createClubRequest struct {
	Name         string     `json:"name"`
	City         string     `json:"city"`
	FederationID *uuid.UUID `json:"federation_id"`
}

// CreateClubHandler registers a club. Admin only, gated by the router.
func CreateClubHandler(store ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClubRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		club := models.Club{Name: req.Name, City: req.City, FederationID: req.FederationID}
		if err := store.CreateClub(r.Context(), &club); err != nil {
			log.WithError(err).Error("create club")
			http.Error(w, "error creating club", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, club)
	}
}

// SearchClubsHandler runs the filtered club search.
func SearchClubsHandler(store ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.ClubFilter{
			Search:       q.Get("search"),
			City:         q.Get("city"),
			FederationID: q.Get("federation"),
		}

		clubs, err := store.SearchClubs(r.Context(), filter)
		if err != nil {
			log.WithError(err).Error("search clubs")
			http.Error(w, "error searching clubs", http.StatusInternalServerError)
			return
		}
		if clubs == nil {
			clubs = []models.Club{}
		}
		writeJSON(w, http.StatusOK, clubs)
	}
}
