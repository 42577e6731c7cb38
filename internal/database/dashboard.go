// internal/database/dashboard.go
package database

import "context"

// SiteStats are the headline counters shown on the dashboard shell.
type SiteStats struct {
	Games   int `json:"games"`
	Players int `json:"players"`
	Clubs   int `json:"clubs"`
}

// CountSiteStats computes the dashboard counters in one round trip.
func (s *Store) CountSiteStats(ctx context.Context) (*SiteStats, error) {
	q := `
	SELECT
	  (SELECT COUNT(*) FROM games),
	  (SELECT COUNT(*) FROM users WHERE NOT is_disabled),
	  (SELECT COUNT(*) FROM clubs)
	`
	var stats SiteStats
	if err := s.pool.QueryRow(ctx, q).Scan(&stats.Games, &stats.Players, &stats.Clubs); err != nil {
		return nil, err
	}
	return &stats, nil
}
