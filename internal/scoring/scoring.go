// Package scoring holds the win determination rule, per-role win rate
// aggregation, and the best-move bonus calculator. Everything here is a
// pure function over already-persisted game and participant records.
package scoring

import (
	"fmt"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// IsWin reports whether a participant with the given role won a game with
// the given declared result. Draws award no win to anyone.
func IsWin(role, result string) bool {
	switch result {
	case models.ResultCiviliansWin:
		return role == models.RoleCivilian || role == models.RoleSheriff
	case models.ResultMafiaWin:
		return role == models.RoleMafia || role == models.RoleDon
	default:
		return false
	}
}

// WinRate formats wins/games as a percentage with two decimals. Zero games
// yields "0" rather than an error or null so the value stays sortable.
func WinRate(wins, games int) string {
	if games == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", float64(wins)/float64(games)*100)
}

// RoleStats is the per-role slice of a player's record.
type RoleStats struct {
	Games   int    `json:"games"`
	Wins    int    `json:"wins"`
	WinRate string `json:"win_rate"`
}

// PlayerStats aggregates a player's full history by role.
type PlayerStats struct {
	TotalGames int                  `json:"total_games"`
	TotalWins  int                  `json:"total_wins"`
	WinRate    string               `json:"win_rate"`
	ByRole     map[string]RoleStats `json:"by_role"`
}

// Participation is one (role, game result) row scanned from the join of
// game_players to games.
type Participation struct {
	Role   string
	Result string
}

// AggregateStats recomputes a player's statistics from raw participation
// rows. Every role appears in ByRole even with zero games so clients get a
// stable shape.
func AggregateStats(rows []Participation) PlayerStats {
	stats := PlayerStats{ByRole: make(map[string]RoleStats, 4)}
	games := make(map[string]int, 4)
	wins := make(map[string]int, 4)

	for _, p := range rows {
		games[p.Role]++
		stats.TotalGames++
		if IsWin(p.Role, p.Result) {
			wins[p.Role]++
			stats.TotalWins++
		}
	}

	for _, role := range []string{models.RoleCivilian, models.RoleSheriff, models.RoleMafia, models.RoleDon} {
		stats.ByRole[role] = RoleStats{
			Games:   games[role],
			Wins:    wins[role],
			WinRate: WinRate(wins[role], games[role]),
		}
	}
	stats.WinRate = WinRate(stats.TotalWins, stats.TotalGames)
	return stats
}

// BestMoveBonus computes the bonus awarded to an eliminated player for
// naming up to three suspected mafia members. The input is the actual
// roles of the nominated players; nominations that could not be resolved
// to a participant are simply absent from the slice.
func BestMoveBonus(nominatedRoles []string) float64 {
	correct := 0
	for _, role := range nominatedRoles {
		if role == models.RoleMafia || role == models.RoleDon {
			correct++
		}
	}
	switch {
	case correct >= 3:
		return 0.5
	case correct == 2:
		return 0.25
	default:
		return 0
	}
}
