package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// maxSeats is the table capacity of the tracked game variant.
const maxSeats = 10

// GameStore is the slice of the datastore the game handlers need.
type GameStore interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	SearchGames(ctx context.Context, f database.GameFilter) ([]models.Game, error)
	ApplyBestMove(ctx context.Context, gameID, killedPlayerID uuid.UUID, nominatedIDs []uuid.UUID) (float64, error)
}

type createGameRequest struct {
	GameType    string     `json:"game_type"`
	TableNumber int        `json:"table_number"`
	RefereeID   uuid.UUID  `json:"referee_id"`
	RatingID    *uuid.UUID `json:"rating_id"`
	Description string     `json:"description"`
	Result      string     `json:"result"`
	PlayedAt    time.Time  `json:"played_at"`

	Players []struct {
		PlayerID         uuid.UUID `json:"player_id"`
		Role             string    `json:"role"`
		SlotNumber       int       `json:"slot_number"`
		Fouls            int       `json:"fouls"`
		AdditionalPoints float64   `json:"additional_points"`
	} `json:"players"`
}

func (req *createGameRequest) validate() error {
	if !models.ValidResults[req.Result] {
		return fmt.Errorf("invalid result %q", req.Result)
	}
	if req.RefereeID == uuid.Nil {
		return fmt.Errorf("referee_id is required")
	}
	if len(req.Players) > maxSeats {
		return fmt.Errorf("at most %d participants per game", maxSeats)
	}
	for _, p := range req.Players {
		if p.PlayerID == uuid.Nil {
			return fmt.Errorf("player_id is required for every participant")
		}
		if !models.ValidRoles[p.Role] {
			return fmt.Errorf("invalid role %q", p.Role)
		}
		if p.SlotNumber < 1 || p.SlotNumber > maxSeats {
			return fmt.Errorf("slot_number must be 1..%d", maxSeats)
		}
		if p.Fouls < 0 {
			return fmt.Errorf("fouls must not be negative")
		}
	}
	return nil
}

// CreateGameHandler records a completed game with its nested participant
// list in one shot.
func CreateGameHandler(store GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.PlayedAt.IsZero() {
			req.PlayedAt = time.Now()
		}

		game := models.Game{
			GameType:    req.GameType,
			TableNumber: req.TableNumber,
			RefereeID:   req.RefereeID,
			RatingID:    req.RatingID,
			Description: req.Description,
			Result:      req.Result,
			PlayedAt:    req.PlayedAt,
		}
		for _, p := range req.Players {
			game.Players = append(game.Players, models.GamePlayer{
				PlayerID:         p.PlayerID,
				Role:             p.Role,
				SlotNumber:       p.SlotNumber,
				Fouls:            p.Fouls,
				AdditionalPoints: p.AdditionalPoints,
			})
		}

		if err := store.CreateGame(r.Context(), &game); err != nil {
			log.WithError(err).Error("create game")
			http.Error(w, "error creating game", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, game)
	}
}

// GetGameHandler returns a game with participants by ?id=.
func GetGameHandler(store GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}
		game, err := store.GetGame(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.WithError(err).Error("get game")
			http.Error(w, "error loading game", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

// SearchGamesHandler runs the filtered game search. Dates use the
// YYYY-MM-DD form; the end date is inclusive through its last second.
func SearchGamesHandler(store GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.GameFilter{
			Search:       q.Get("search"),
			Result:       q.Get("result"),
			FederationID: q.Get("federation"),
			ClubID:       q.Get("club"),
			PlayerID:     q.Get("player"),
		}

		for param, dest := range map[string]**time.Time{
			"date_from": &filter.DateFrom,
			"date_to":   &filter.DateTo,
		} {
			if v := q.Get(param); v != "" {
				t, err := time.Parse("2006-01-02", v)
				if err != nil {
					http.Error(w, "invalid "+param+", expected YYYY-MM-DD", http.StatusBadRequest)
					return
				}
				*dest = &t
			}
		}

		games, err := store.SearchGames(r.Context(), filter)
		if err != nil {
			log.WithError(err).Error("search games")
			http.Error(w, "error searching games", http.StatusInternalServerError)
			return
		}
		if games == nil {
			games = []models.Game{}
		}
		writeJSON(w, http.StatusOK, games)
	}
}

type bestMoveRequest struct {
	GameID             uuid.UUID   `json:"game_id"`
	KilledPlayerID     uuid.UUID   `json:"killed_player_id"`
	NominatedPlayerIDs []uuid.UUID `json:"nominated_player_ids"`
}

type bestMoveResponse struct {
	Bonus float64 `json:"bonus"`
}

// BestMoveHandler scores the eliminated player's mafia guesses and adds
// the bonus to their additional_points.
func BestMoveHandler(store GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bestMoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.GameID == uuid.Nil || req.KilledPlayerID == uuid.Nil {
			http.Error(w, "game_id and killed_player_id are required", http.StatusBadRequest)
			return
		}
		if len(req.NominatedPlayerIDs) > 3 {
			http.Error(w, "at most three nominations", http.StatusBadRequest)
			return
		}

		bonus, err := store.ApplyBestMove(r.Context(), req.GameID, req.KilledPlayerID, req.NominatedPlayerIDs)
		if errors.Is(err, database.ErrParticipantNotFound) {
			http.Error(w, "killed player is not a participant of the game", http.StatusNotFound)
			return
		}
		if err != nil {
			log.WithError(err).Error("apply best move")
			http.Error(w, "error applying best move", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, bestMoveResponse{Bonus: bonus})
	}
}
