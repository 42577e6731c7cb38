package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuilderEmpty(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "", b.Clause())
	assert.Equal(t, "", b.And())
	assert.Empty(t, b.Args())
}

func TestBuilderComposition(t *testing.T) {
	b := NewBuilder()
	b.TextSearch("g.description", "abc")
	b.Equals("c.federation_id", "f-1")

	assert.Equal(t,
		" WHERE g.description ILIKE '%' || $1 || '%' AND c.federation_id = $2",
		b.Clause())
	assert.Equal(t, []any{"abc", "f-1"}, b.Args())
}

func TestBuilderAllMeansNoConstraint(t *testing.T) {
	b := NewBuilder()
	b.TextSearch("g.description", "all")
	b.Equals("c.federation_id", "")
	b.Equals("g.result", "ALL")

	assert.Equal(t, "", b.Clause())
	assert.Empty(t, b.Args())
}

func TestTextSearchEscapesWildcards(t *testing.T) {
	// % and _ in the value must match literally, not as LIKE wildcards
	b := NewBuilder()
	b.TextSearch("u.nickname", "100%_pure\\x")

	assert.Equal(t, " WHERE u.nickname ILIKE '%' || $1 || '%'", b.Clause())
	assert.Equal(t, []any{`100\%\_pure\\x`}, b.Args())
}

func TestBuilderSeededArgs(t *testing.T) {
	// base query already binds $1, builder must continue from $2
	b := NewBuilder("player-id")
	b.Equals("g.result", "draw")

	assert.Equal(t, " AND g.result = $2", b.And())
	assert.Equal(t, []any{"player-id", "draw"}, b.Args())
}

func TestBuilderDateRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	b := NewBuilder()
	b.DateFrom("g.played_at", from)
	b.DateTo("g.played_at", to)

	assert.Equal(t, " WHERE g.played_at >= $1 AND g.played_at < $2", b.Clause())

	args := b.Args()
	assert.Equal(t, from, args[0])
	// end date is inclusive: bound promoted to start of the next day
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), args[1])
}

func TestSkip(t *testing.T) {
	assert.True(t, Skip(""))
	assert.True(t, Skip("all"))
	assert.True(t, Skip("All"))
	assert.False(t, Skip("allstars"))
}
