// Package search composes the WHERE clause of record searches.
//
// A Builder always starts from "is_deleted = false" and ANDs one clause per
// populated filter: a case-insensitive substring match for text fields and
// an inclusive bound for each half of a range. Values travel as pgx named
// arguments; column names are supplied by the caller and never come from
// user input.
package search

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Builder accumulates search clauses. The zero value is not usable; call
// New.
type Builder struct {
	clauses          []string
	args             pgx.NamedArgs
	zeroBoundsAbsent bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithZeroBoundsAbsent makes range bounds equal to their type's zero value
// count as not provided, so a min_age of 0 adds no clause.
func WithZeroBoundsAbsent(enabled bool) Option {
	return func(b *Builder) {
		b.zeroBoundsAbsent = enabled
	}
}

// New returns a Builder that matches every non-deleted record.
func New(opts ...Option) *Builder {
	b := &Builder{
		clauses: []string{"is_deleted = false"},
		args:    pgx.NamedArgs{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) bind(value any) string {
	name := fmt.Sprintf("p%d", len(b.args)+1)
	b.args[name] = value
	return "@" + name
}

// Contains adds "column ILIKE %value%" when value is non-nil and non-empty.
// LIKE wildcards in value are matched literally.
func (b *Builder) Contains(column string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}

	placeholder := b.bind("%" + EscapeLike(*value) + "%")
	b.clauses = append(b.clauses, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, placeholder))
	return b
}

// Min adds "column >= value" when value is provided.
func Min[T comparable](b *Builder, column string, value *T) *Builder {
	return bound(b, column, ">=", value)
}

// Max adds "column <= value" when value is provided.
func Max[T comparable](b *Builder, column string, value *T) *Builder {
	return bound(b, column, "<=", value)
}

// Range adds both halves of an inclusive range; each half is independent.
func Range[T comparable](b *Builder, column string, lower, upper *T) *Builder {
	Min(b, column, lower)
	return Max(b, column, upper)
}

func bound[T comparable](b *Builder, column, op string, value *T) *Builder {
	if value == nil {
		return b
	}

	var zero T
	if b.zeroBoundsAbsent && *value == zero {
		return b
	}

	placeholder := b.bind(*value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s %s %s", column, op, placeholder))
	return b
}

// Where returns the composed condition (without the WHERE keyword) and its
// arguments.
func (b *Builder) Where() (string, pgx.NamedArgs) {
	return strings.Join(b.clauses, " AND "), b.args
}

// Len reports the number of clauses, including the not-deleted filter.
func (b *Builder) Len() int {
	return len(b.clauses)
}

// Query renders a complete SELECT over table returning columns, ordered by
// insertion and windowed by skip/limit.
func (b *Builder) Query(table, columns string, skip, limit int) (string, pgx.NamedArgs) {
	where, args := b.Where()

	args["skip"] = skip
	args["limit"] = limit

	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY id OFFSET @skip LIMIT @limit",
		columns, table, where,
	), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE metacharacters of s.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
