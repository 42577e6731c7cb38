package models

import (
	"time"

	"github.com/google/uuid"
)

type Club struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	FederationID *uuid.UUID `json:"federation_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Federation groups clubs; the member counts are computed at query time,
// never stored.
type Federation struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`

	ClubsCount   int `json:"clubs_count"`
	PlayersCount int `json:"players_count"`
}
