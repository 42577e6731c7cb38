// internal/database/rating.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
	"github.com/foundermafstat/mafstat2-sub002/internal/scoring"
)

// CreateRating inserts a named competition.
func (s *Store) CreateRating(ctx context.Context, r *models.Rating) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	q := `INSERT INTO ratings (id, name, description, starts_at, ends_at) VALUES ($1, $2, $3, $4, $5)`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, r.ID, r.Name, r.Description, r.StartsAt, r.EndsAt)
		return e
	})
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}
	return nil
}

// ListRatingIDs returns the ids of every rating, for the aggregation job.
func (s *Store) ListRatingIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM ratings ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Leaderboard reads the aggregated rating_results rows, best first.
func (s *Store) Leaderboard(ctx context.Context, ratingID uuid.UUID) ([]models.RatingResult, error) {
	q := `
	SELECT rr.rating_id, rr.player_id, u.nickname, rr.points, rr.games_played,
	       rr.civilian_wins, rr.sheriff_wins, rr.mafia_wins, rr.don_wins, rr.best_move_count
	FROM rating_results rr
	JOIN users u ON u.id = rr.player_id
	WHERE rr.rating_id = $1
	ORDER BY rr.points DESC, u.nickname
	`
	rows, err := s.pool.Query(ctx, q, ratingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RatingResult
	for rows.Next() {
		var r models.RatingResult
		if err := rows.Scan(&r.RatingID, &r.PlayerID, &r.Nickname, &r.Points, &r.GamesPlayed,
			&r.CivilianWins, &r.SheriffWins, &r.MafiaWins, &r.DonWins, &r.BestMoveCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecomputeRatingResults rebuilds the rating_results rows for one rating
// from the raw game records: one point per win plus accumulated
// additional_points, per-role win counters, and a best-move counter
// (participations with a positive bonus).
func (s *Store) RecomputeRatingResults(ctx context.Context, ratingID uuid.UUID) error {
	q := `
	SELECT gp.player_id, gp.role, gp.additional_points, g.result
	FROM game_players gp
	JOIN games g ON g.id = gp.game_id
	WHERE g.rating_id = $1
	`
	rows, err := s.pool.Query(ctx, q, ratingID)
	if err != nil {
		return err
	}
	defer rows.Close()

	results := make(map[uuid.UUID]*models.RatingResult)
	for rows.Next() {
		var (
			playerID uuid.UUID
			role     string
			extra    float64
			result   string
		)
		if err := rows.Scan(&playerID, &role, &extra, &result); err != nil {
			return err
		}

		r, ok := results[playerID]
		if !ok {
			r = &models.RatingResult{RatingID: ratingID, PlayerID: playerID}
			results[playerID] = r
		}

		r.GamesPlayed++
		r.Points += extra
		if extra > 0 {
			r.BestMoveCount++
		}
		if scoring.IsWin(role, result) {
			r.Points++
			switch role {
			case models.RoleCivilian:
				r.CivilianWins++
			case models.RoleSheriff:
				r.SheriffWins++
			case models.RoleMafia:
				r.MafiaWins++
			case models.RoleDon:
				r.DonWins++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, e := tx.Exec(ctx, `DELETE FROM rating_results WHERE rating_id=$1`, ratingID); e != nil {
			return e
		}
		ins := `
		INSERT INTO rating_results (rating_id, player_id, points, games_played,
		        civilian_wins, sheriff_wins, mafia_wins, don_wins, best_move_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		for _, r := range results {
			if _, e := tx.Exec(ctx, ins, r.RatingID, r.PlayerID, r.Points, r.GamesPlayed,
				r.CivilianWins, r.SheriffWins, r.MafiaWins, r.DonWins, r.BestMoveCount); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store rating results: %w", err)
	}
	return nil
}
