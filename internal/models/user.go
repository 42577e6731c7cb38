package models

import (
	"time"

	"github.com/google/uuid"
)

// Account roles used for route gating.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RolePremium = "premium"
)

type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Nickname string    `json:"nickname"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Country  string    `json:"country"`

	ClubID *uuid.UUID `json:"club_id,omitempty"`

	Role    string `json:"role"` // 'user', 'admin', 'premium'
	IsJudge bool   `json:"is_judge"`

	// Remaining paid premium entitlement, in nights.
	PremiumNights int `json:"premium_nights"`

	IsDisabled bool      `json:"is_disabled"`
	CreatedAt  time.Time `json:"created_at"`
}
