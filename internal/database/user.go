package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foundermafstat/mafstat2-sub002/internal/auth"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/scoring"
	"github.com/foundermafstat/mafstat2-sub002/internal/search"
)

const userColumns = `id, email, password, nickname, name, surname, country,
       club_id, role, is_judge, premium_nights, is_disabled, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Nickname, &u.Name, &u.Surname, &u.Country,
		&u.ClubID, &u.Role, &u.IsJudge, &u.PremiumNights, &u.IsDisabled, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a user. The plaintext password is replaced by its
// argon2id hash before the insert.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	hash, err := auth.CreateHash(user.Password, auth.Params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO users (id, email, password, nickname, name, surname, country, club_id, role, is_judge)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			user.ID, user.Email, user.Password, user.Nickname,
			user.Name, user.Surname, user.Country, user.ClubID,
			user.Role, user.IsJudge,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(s.pool.QueryRow(ctx, q, email))
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(s.pool.QueryRow(ctx, q, id))
}

// AuthenticateUser verifies credentials and returns a signed session token
// carrying the user's role.
func (s *Store) AuthenticateUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("user not found or db error: %w", err)
	}
	if user.IsDisabled {
		return "", fmt.Errorf("account disabled")
	}

	match, err := auth.ComparePasswordAndHash(password, user.Password)
	if err != nil || !match {
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := auth.CreateJWT(user.ID.String(), user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to create jwt: %w", err)
	}
	return token, nil
}

// UpdateProfile writes the editable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, u *models.User) error {
	q := `UPDATE users SET nickname=$1, name=$2, surname=$3, country=$4, club_id=$5 WHERE id=$6`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ct, e := tx.Exec(ctx, q, u.Nickname, u.Name, u.Surname, u.Country, u.ClubID, u.ID)
		if e != nil {
			return e
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// PlayerStats recomputes a player's per-role win rates from raw
// participation rows. No cached counters are read or written.
func (s *Store) PlayerStats(ctx context.Context, playerID uuid.UUID) (*scoring.PlayerStats, error) {
	q := `
	SELECT gp.role, g.result
	FROM game_players gp
	JOIN games g ON g.id = gp.game_id
	WHERE gp.player_id = $1
	`
	rows, err := s.pool.Query(ctx, q, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []scoring.Participation
	for rows.Next() {
		var p scoring.Participation
		if err := rows.Scan(&p.Role, &p.Result); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats := scoring.AggregateStats(parts)
	return &stats, nil
}

// PlayerGameRecord is one row of a player's full game history.
type PlayerGameRecord struct {
	Game             models.Game `json:"game"`
	Role             string      `json:"role"`
	SlotNumber       int         `json:"slot_number"`
	Fouls            int         `json:"fouls"`
	AdditionalPoints float64     `json:"additional_points"`
	Win              bool        `json:"win"`
}

// PlayerHistory returns every game a player took part in, latest first,
// with their seat, role, and the win flag derived from the shared rule.
func (s *Store) PlayerHistory(ctx context.Context, playerID uuid.UUID) ([]PlayerGameRecord, error) {
	q := `
	SELECT g.id, g.game_type, g.table_number, g.referee_id, g.rating_id, g.description, g.result, g.played_at, g.created_at,
	       gp.role, gp.slot_number, gp.fouls, gp.additional_points
	FROM game_players gp
	JOIN games g ON g.id = gp.game_id
	WHERE gp.player_id = $1
	ORDER BY g.played_at DESC
	`
	rows, err := s.pool.Query(ctx, q, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PlayerGameRecord
	for rows.Next() {
		var r PlayerGameRecord
		if err := rows.Scan(
			&r.Game.ID, &r.Game.GameType, &r.Game.TableNumber, &r.Game.RefereeID, &r.Game.RatingID,
			&r.Game.Description, &r.Game.Result, &r.Game.PlayedAt, &r.Game.CreatedAt,
			&r.Role, &r.SlotNumber, &r.Fouls, &r.AdditionalPoints,
		); err != nil {
			return nil, err
		}
		r.Win = scoring.IsWin(r.Role, r.Game.Result)
		records = append(records, r)
	}
	return records, rows.Err()
}

// PlayerFilter holds the optional player search dimensions; empty or
// "all" values apply no constraint.
type PlayerFilter struct {
	Search       string
	ClubID       string
	FederationID string
	JudgesOnly   bool
}

// SearchPlayers lists players matching the conjunction of filters.
func (s *Store) SearchPlayers(ctx context.Context, f PlayerFilter) ([]models.User, error) {
	b := search.NewBuilder()
	b.TextSearch("u.nickname || ' ' || u.name || ' ' || u.surname", f.Search)
	b.Equals("u.club_id::text", f.ClubID)
	b.Equals("c.federation_id::text", f.FederationID)
	if f.JudgesOnly {
		b.Where("u.is_judge = ?", true)
	}
	b.Where("u.is_disabled = ?", false)

	q := `
	SELECT u.id, u.nickname, u.name, u.surname, u.country, u.club_id, u.role, u.is_judge, u.created_at
	FROM users u
	LEFT JOIN clubs c ON c.id = u.club_id` +
		b.Clause() + `
	ORDER BY u.nickname
	LIMIT 200`

	rows, err := s.pool.Query(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Nickname, &u.Name, &u.Surname, &u.Country,
			&u.ClubID, &u.Role, &u.IsJudge, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
