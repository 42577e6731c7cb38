// Package search builds filtered SQL queries from optional request
// parameters. Values are always bound through $n placeholders; request
// input never reaches the query text itself.
package search

import (
	"fmt"
	"strings"
	"time"
)

// NoFilter is the sentinel filter value clients send to mean "no
// constraint", equivalent to omitting the parameter.
const NoFilter = "all"

// Builder accumulates conjunctive WHERE predicates with positional
// placeholders. The zero value is ready to use; placeholder numbering
// starts at $1 unless the query already carries bound arguments, in which
// case construct with NewBuilder(startArgs...).
type Builder struct {
	conds []string
	args  []any
}

// NewBuilder seeds the builder with arguments already bound by the caller
// (e.g. a fixed player id predicate written into the base query).
func NewBuilder(startArgs ...any) *Builder {
	return &Builder{args: startArgs}
}

// Skip reports whether a filter value means "no constraint".
func Skip(value string) bool {
	return value == "" || strings.EqualFold(value, NoFilter)
}

// next returns the placeholder for the argument about to be appended.
func (b *Builder) next() string {
	return fmt.Sprintf("$%d", len(b.args)+1)
}

// Where appends a predicate whose text contains exactly one placeholder,
// written as "?", which is rewritten to the next positional marker.
func (b *Builder) Where(expr string, value any) *Builder {
	b.conds = append(b.conds, strings.Replace(expr, "?", b.next(), 1))
	b.args = append(b.args, value)
	return b
}

// likeEscaper neutralizes LIKE metacharacters so the search value always
// matches as a literal substring. Postgres uses backslash as the default
// ESCAPE character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TextSearch appends a case-insensitive substring predicate over the
// given column expression (which may be a concatenation of columns).
// LIKE wildcards in the value are escaped. Skipped entirely for empty or
// "all" values.
func (b *Builder) TextSearch(columnExpr, value string) *Builder {
	if Skip(value) {
		return b
	}
	return b.Where(columnExpr+" ILIKE '%' || ? || '%'", likeEscaper.Replace(value))
}

// Equals appends an equality predicate unless the value is empty/"all".
func (b *Builder) Equals(column, value string) *Builder {
	if Skip(value) {
		return b
	}
	return b.Where(column+" = ?", value)
}

// DateFrom constrains the column to dates on or after the given day.
func (b *Builder) DateFrom(column string, from time.Time) *Builder {
	return b.Where(column+" >= ?", from)
}

// DateTo constrains the column inclusively through the end of the given
// day: the bound is promoted to the start of the next day and compared
// exclusively.
func (b *Builder) DateTo(column string, to time.Time) *Builder {
	endOfDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	return b.Where(column+" < ?", endOfDay)
}

// Clause renders the accumulated predicates as a WHERE clause, or an
// empty string when no filter applied.
func (b *Builder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// And renders the predicates as a trailing "AND ..." fragment for queries
// whose base text already has a WHERE clause.
func (b *Builder) And() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " AND " + strings.Join(b.conds, " AND ")
}

// Args returns the bound arguments, aligned with the rendered placeholders.
func (b *Builder) Args() []any {
	return b.args
}
