package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

func TestIsWin(t *testing.T) {
	roles := []string{models.RoleCivilian, models.RoleSheriff, models.RoleMafia, models.RoleDon}
	results := []string{models.ResultCiviliansWin, models.ResultMafiaWin, models.ResultDraw}

	civSide := map[string]bool{models.RoleCivilian: true, models.RoleSheriff: true}

	for _, role := range roles {
		for _, result := range results {
			want := false
			if result == models.ResultCiviliansWin && civSide[role] {
				want = true
			}
			if result == models.ResultMafiaWin && !civSide[role] {
				want = true
			}
			if got := IsWin(role, result); got != want {
				t.Errorf("IsWin(%s, %s) = %v, want %v", role, result, got, want)
			}
		}
	}
}

func TestIsWinUnknownResult(t *testing.T) {
	if IsWin(models.RoleCivilian, "cancelled") {
		t.Fatal("unknown result must never award a win")
	}
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, "0", WinRate(0, 0))
	assert.Equal(t, "25.00", WinRate(1, 4))
	assert.Equal(t, "100.00", WinRate(3, 3))
	assert.Equal(t, "33.33", WinRate(1, 3))
}

func TestAggregateStats(t *testing.T) {
	rows := []Participation{
		{Role: models.RoleCivilian, Result: models.ResultCiviliansWin},
		{Role: models.RoleCivilian, Result: models.ResultMafiaWin},
		{Role: models.RoleCivilian, Result: models.ResultDraw},
		{Role: models.RoleCivilian, Result: models.ResultMafiaWin},
		{Role: models.RoleDon, Result: models.ResultMafiaWin},
	}

	stats := AggregateStats(rows)

	assert.Equal(t, 5, stats.TotalGames)
	assert.Equal(t, 2, stats.TotalWins)
	assert.Equal(t, "40.00", stats.WinRate)

	assert.Equal(t, RoleStats{Games: 4, Wins: 1, WinRate: "25.00"}, stats.ByRole[models.RoleCivilian])
	assert.Equal(t, RoleStats{Games: 1, Wins: 1, WinRate: "100.00"}, stats.ByRole[models.RoleDon])

	// roles without games still get a stable zero entry
	assert.Equal(t, RoleStats{Games: 0, Wins: 0, WinRate: "0"}, stats.ByRole[models.RoleSheriff])
	assert.Equal(t, RoleStats{Games: 0, Wins: 0, WinRate: "0"}, stats.ByRole[models.RoleMafia])
}

func TestAggregateStatsEmpty(t *testing.T) {
	stats := AggregateStats(nil)
	assert.Equal(t, "0", stats.WinRate)
	assert.Len(t, stats.ByRole, 4)
}

func TestBestMoveBonus(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		want  float64
	}{
		{"none correct", []string{models.RoleCivilian, models.RoleCivilian, models.RoleSheriff}, 0},
		{"one correct", []string{models.RoleMafia, models.RoleCivilian, models.RoleCivilian}, 0},
		{"two correct", []string{models.RoleMafia, models.RoleDon, models.RoleCivilian}, 0.25},
		{"three correct", []string{models.RoleMafia, models.RoleMafia, models.RoleDon}, 0.5},
		{"order does not matter", []string{models.RoleCivilian, models.RoleDon, models.RoleMafia}, 0.25},
		{"fewer than three nominations", []string{models.RoleMafia, models.RoleDon}, 0.25},
		{"single nomination", []string{models.RoleMafia}, 0},
		{"no nominations", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BestMoveBonus(tc.roles))
		})
	}
}
