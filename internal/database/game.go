// internal/database/game.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/scoring"
	"github.com/foundermafstat/mafstat2-sub002/internal/search"
)

// CreateGame persists a game and its participant list in one transaction.
func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}

	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
		INSERT INTO games (id, game_type, table_number, referee_id, rating_id, description, result, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, e := tx.Exec(ctx, q,
			game.ID, game.GameType, game.TableNumber, game.RefereeID,
			game.RatingID, game.Description, game.Result, game.PlayedAt,
		); e != nil {
			return e
		}

		for _, p := range game.Players {
			pq := `
			INSERT INTO game_players (game_id, player_id, role, slot_number, fouls, additional_points)
			VALUES ($1, $2, $3, $4, $5, $6)
			`
			if _, e := tx.Exec(ctx, pq,
				game.ID, p.PlayerID, p.Role, p.SlotNumber, p.Fouls, p.AdditionalPoints,
			); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

// GetGame loads a game with its participants.
func (s *Store) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var g models.Game
	q := `
	SELECT id, game_type, table_number, referee_id, rating_id, description, result, played_at, created_at
	FROM games WHERE id=$1
	`
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&g.ID, &g.GameType, &g.TableNumber, &g.RefereeID, &g.RatingID,
		&g.Description, &g.Result, &g.PlayedAt, &g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	players, err := s.gameParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Players = players
	return &g, nil
}

func (s *Store) gameParticipants(ctx context.Context, gameID uuid.UUID) ([]models.GamePlayer, error) {
	q := `
	SELECT game_id, player_id, role, slot_number, fouls, additional_points
	FROM game_players
	WHERE game_id = $1
	ORDER BY slot_number
	`
	rows, err := s.pool.Query(ctx, q, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.GamePlayer
	for rows.Next() {
		var p models.GamePlayer
		if err := rows.Scan(&p.GameID, &p.PlayerID, &p.Role, &p.SlotNumber, &p.Fouls, &p.AdditionalPoints); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GameFilter holds the optional game search dimensions. Empty or "all"
// string values apply no constraint; nil times skip the date bounds.
type GameFilter struct {
	Search       string
	Result       string
	FederationID string
	ClubID       string
	PlayerID     string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// SearchGames builds the filtered game query with parameterized
// predicates; filters compose conjunctively.
func (s *Store) SearchGames(ctx context.Context, f GameFilter) ([]models.Game, error) {
	b := search.NewBuilder()
	b.TextSearch("g.description || ' ' || ref.nickname", f.Search)
	b.Equals("g.result", f.Result)
	b.Equals("refclub.federation_id::text", f.FederationID)
	b.Equals("refclub.id::text", f.ClubID)
	if !search.Skip(f.PlayerID) {
		b.Where("EXISTS (SELECT 1 FROM game_players gp WHERE gp.game_id = g.id AND gp.player_id::text = ?)", f.PlayerID)
	}
	if f.DateFrom != nil {
		b.DateFrom("g.played_at", *f.DateFrom)
	}
	if f.DateTo != nil {
		b.DateTo("g.played_at", *f.DateTo)
	}

	q := `
	SELECT g.id, g.game_type, g.table_number, g.referee_id, g.rating_id, g.description, g.result, g.played_at, g.created_at
	FROM games g
	JOIN users ref ON ref.id = g.referee_id
	LEFT JOIN clubs refclub ON refclub.id = ref.club_id` +
		b.Clause() + `
	ORDER BY g.played_at DESC
	LIMIT 200`

	rows, err := s.pool.Query(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.GameType, &g.TableNumber, &g.RefereeID, &g.RatingID,
			&g.Description, &g.Result, &g.PlayedAt, &g.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ApplyBestMove awards the best-move bonus to the eliminated player's
// additional_points, based on how many of the nominated players actually
// held mafia or don. The nominations are a set: duplicate ids count
// once, a self-nomination of the killed player is ignored, and ids that
// are not participants of the game are simply absent from the
// correctness count. Returns the awarded bonus, or
// ErrParticipantNotFound when the killed player is not seated in the
// game (no update occurs).
func (s *Store) ApplyBestMove(ctx context.Context, gameID, killedPlayerID uuid.UUID, nominatedIDs []uuid.UUID) (float64, error) {
	players, err := s.gameParticipants(ctx, gameID)
	if err != nil {
		return 0, err
	}

	roleByPlayer := make(map[uuid.UUID]string, len(players))
	for _, p := range players {
		roleByPlayer[p.PlayerID] = p.Role
	}
	if _, ok := roleByPlayer[killedPlayerID]; !ok {
		return 0, ErrParticipantNotFound
	}

	seen := make(map[uuid.UUID]bool, len(nominatedIDs))
	var nominatedRoles []string
	for _, id := range nominatedIDs {
		if id == killedPlayerID || seen[id] {
			continue
		}
		seen[id] = true
		if role, ok := roleByPlayer[id]; ok {
			nominatedRoles = append(nominatedRoles, role)
		}
	}
	bonus := scoring.BestMoveBonus(nominatedRoles)

	q := `
	UPDATE game_players
	SET additional_points = additional_points + $1
	WHERE game_id = $2 AND player_id = $3
	`
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ct, e := tx.Exec(ctx, q, bonus, gameID, killedPlayerID)
		if e != nil {
			return e
		}
		if ct.RowsAffected() == 0 {
			return ErrParticipantNotFound
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to apply best move bonus: %w", err)
	}
	return bonus, nil
}

// RecentGames returns the latest recorded games for the dashboard.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]models.Game, error) {
	q := `
	SELECT id, game_type, table_number, referee_id, rating_id, description, result, played_at, created_at
	FROM games
	ORDER BY created_at DESC
	LIMIT $1
	`
	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.GameType, &g.TableNumber, &g.RefereeID, &g.RatingID,
			&g.Description, &g.Result, &g.PlayedAt, &g.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
