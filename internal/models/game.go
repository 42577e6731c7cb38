package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant roles. Civilian and sheriff are allied against mafia and don.
const (
	RoleCivilian = "civilian"
	RoleSheriff  = "sheriff"
	RoleMafia    = "mafia"
	RoleDon      = "don"
)

// Declared game outcomes.
const (
	ResultCiviliansWin = "civilians_win"
	ResultMafiaWin     = "mafia_win"
	ResultDraw         = "draw"
)

// ValidRoles and ValidResults guard game creation payloads.
var ValidRoles = map[string]bool{
	RoleCivilian: true,
	RoleSheriff:  true,
	RoleMafia:    true,
	RoleDon:      true,
}

var ValidResults = map[string]bool{
	ResultCiviliansWin: true,
	ResultMafiaWin:     true,
	ResultDraw:         true,
}

type Game struct {
	ID          uuid.UUID  `json:"id"`
	GameType    string     `json:"game_type"`
	TableNumber int        `json:"table_number"`
	RefereeID   uuid.UUID  `json:"referee_id"`
	RatingID    *uuid.UUID `json:"rating_id,omitempty"`
	Description string     `json:"description"`
	Result      string     `json:"result"`
	PlayedAt    time.Time  `json:"played_at"`
	CreatedAt   time.Time  `json:"created_at"`

	Players []GamePlayer `json:"players,omitempty"`
}

// GamePlayer links a game to a seated participant.
type GamePlayer struct {
	GameID   uuid.UUID `json:"game_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Role     string    `json:"role"`
	// Seating position, 1..10. Uniqueness within a game is not enforced
	// at the data layer; entries are trusted as recorded.
	SlotNumber       int     `json:"slot_number"`
	Fouls            int     `json:"fouls"`
	AdditionalPoints float64 `json:"additional_points"`
}
