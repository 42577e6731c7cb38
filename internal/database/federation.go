// internal/database/federation.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/scoring"
)

// CreateFederation inserts a federation record.
func (s *Store) CreateFederation(ctx context.Context, fed *models.Federation) error {
	if fed.ID == uuid.Nil {
		fed.ID = uuid.New()
	}
	q := `INSERT INTO federations (id, name, country) VALUES ($1, $2, $3)`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, fed.ID, fed.Name, fed.Country)
		return e
	})
	if err != nil {
		return fmt.Errorf("failed to insert federation: %w", err)
	}
	return nil
}

// ListFederations returns all federations with member counts computed at
// query time; the counts are never stored.
func (s *Store) ListFederations(ctx context.Context) ([]models.Federation, error) {
	q := `
	SELECT f.id, f.name, f.country,
	       COUNT(DISTINCT c.id) AS clubs_count,
	       COUNT(DISTINCT u.id) AS players_count
	FROM federations f
	LEFT JOIN clubs c ON c.federation_id = f.id
	LEFT JOIN users u ON u.club_id = c.id
	GROUP BY f.id
	ORDER BY f.name
	`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feds []models.Federation
	for rows.Next() {
		var f models.Federation
		if err := rows.Scan(&f.ID, &f.Name, &f.Country, &f.ClubsCount, &f.PlayersCount); err != nil {
			return nil, err
		}
		feds = append(feds, f)
	}
	return feds, rows.Err()
}

// FederationPlayer is one row of a federation's player list with the
// player's overall record.
type FederationPlayer struct {
	PlayerID uuid.UUID `json:"player_id"`
	Nickname string    `json:"nickname"`
	ClubName string    `json:"club_name"`
	Games    int       `json:"games"`
	Wins     int       `json:"wins"`
	WinRate  string    `json:"win_rate"`
}

// FederationPlayers lists a federation's players with win statistics
// derived from raw participation rows, using the same win rule as every
// other aggregation.
func (s *Store) FederationPlayers(ctx context.Context, federationID uuid.UUID) ([]FederationPlayer, error) {
	q := `
	SELECT u.id, u.nickname, c.name, gp.role, g.result
	FROM users u
	JOIN clubs c ON c.id = u.club_id
	LEFT JOIN game_players gp ON gp.player_id = u.id
	LEFT JOIN games g ON g.id = gp.game_id
	WHERE c.federation_id = $1
	ORDER BY u.nickname
	`
	rows, err := s.pool.Query(ctx, q, federationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPlayer := make(map[uuid.UUID]*FederationPlayer)
	var order []uuid.UUID
	for rows.Next() {
		var (
			id           uuid.UUID
			nickname     string
			clubName     string
			role, result *string
		)
		if err := rows.Scan(&id, &nickname, &clubName, &role, &result); err != nil {
			return nil, err
		}
		fp, ok := byPlayer[id]
		if !ok {
			fp = &FederationPlayer{PlayerID: id, Nickname: nickname, ClubName: clubName}
			byPlayer[id] = fp
			order = append(order, id)
		}
		if role == nil || result == nil {
			continue // player with no recorded games
		}
		fp.Games++
		if scoring.IsWin(*role, *result) {
			fp.Wins++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]FederationPlayer, 0, len(order))
	for _, id := range order {
		fp := byPlayer[id]
		fp.WinRate = scoring.WinRate(fp.Wins, fp.Games)
		out = append(out, *fp)
	}
	return out, nil
}
