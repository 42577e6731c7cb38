package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// RatingStore is the slice of the datastore the rating handlers need.
type RatingStore interface {
	CreateRating(ctx context.Context, r *models.Rating) error
	Leaderboard(ctx context.Context, ratingID uuid.UUID) ([]models.RatingResult, error)
}

type createRatingRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// CreateRatingHandler registers a competition. Admin only, gated by the
// router.
func CreateRatingHandler(store RatingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		rating := models.Rating{
			Name:        req.Name,
			Description: req.Description,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		}
		if err := store.CreateRating(r.Context(), &rating); err != nil {
			log.WithError(err).Error("create rating")
			http.Error(w, "error creating rating", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, rating)
	}
}

// LeaderboardHandler returns the aggregated standings for a rating.
func LeaderboardHandler(store RatingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "invalid rating id", http.StatusBadRequest)
			return
		}
		board, err := store.Leaderboard(r.Context(), id)
		if err != nil {
			log.WithError(err).Error("leaderboard")
			http.Error(w, "error loading leaderboard", http.StatusInternalServerError)
			return
		}
		if board == nil {
			board = []models.RatingResult{}
		}
		writeJSON(w, http.StatusOK, board)
	}
}
