// internal/database/club.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/search"
)

// CreateClub inserts a club record.
func (s *Store) CreateClub(ctx context.Context, club *models.Club) error {
	if club.ID == uuid.Nil {
		club.ID = uuid.New()
	}
	q := `INSERT INTO clubs (id, name, city, federation_id) VALUES ($1, $2, $3, $4)`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, club.ID, club.Name, club.City, club.FederationID)
		return e
	})
	if err != nil {
		return fmt.Errorf("failed to insert club: %w", err)
	}
	return nil
}

// ClubFilter holds the optional club search dimensions.
type ClubFilter struct {
	Search       string
	City         string
	FederationID string
}

// SearchClubs lists clubs matching the conjunction of filters.
func (s *Store) SearchClubs(ctx context.Context, f ClubFilter) ([]models.Club, error) {
	b := search.NewBuilder()
	b.TextSearch("name", f.Search)
	b.Equals("city", f.City)
	b.Equals("federation_id::text", f.FederationID)

	q := `SELECT id, name, city, federation_id, created_at FROM clubs` +
		b.Clause() + ` ORDER BY name LIMIT 200`

	rows, err := s.pool.Query(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		var c models.Club
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.FederationID, &c.CreatedAt); err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// ClubStanding is a dashboard row: a club ranked by recorded games.
type ClubStanding struct {
	Club       models.Club `json:"club"`
	GamesCount int         `json:"games_count"`
}

// TopClubs ranks clubs by the number of games their members refereed.
func (s *Store) TopClubs(ctx context.Context, limit int) ([]ClubStanding, error) {
	q := `
	SELECT c.id, c.name, c.city, c.federation_id, c.created_at, COUNT(g.id) AS games_count
	FROM clubs c
	LEFT JOIN users u ON u.club_id = c.id
	LEFT JOIN games g ON g.referee_id = u.id
	GROUP BY c.id
	ORDER BY games_count DESC, c.name
	LIMIT $1
	`
	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClubStanding
	for rows.Next() {
		var st ClubStanding
		if err := rows.Scan(&st.Club.ID, &st.Club.Name, &st.Club.City,
			&st.Club.FederationID, &st.Club.CreatedAt, &st.GamesCount); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
