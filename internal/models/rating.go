package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a named competition scoping a subset of games.
type Rating struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// RatingResult is one leaderboard row, recomputed by the aggregation job.
type RatingResult struct {
	RatingID uuid.UUID `json:"rating_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Nickname string    `json:"nickname"`

	Points        float64 `json:"points"`
	GamesPlayed   int     `json:"games_played"`
	CivilianWins  int     `json:"civilian_wins"`
	SheriffWins   int     `json:"sheriff_wins"`
	MafiaWins     int     `json:"mafia_wins"`
	DonWins       int     `json:"don_wins"`
	BestMoveCount int     `json:"best_move_count"`
}
