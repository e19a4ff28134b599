// Package query builds parameterized WHERE clauses from optional filter
// criteria. Values are always bound, never concatenated into SQL text.
package query

import (
	"fmt"
	"strings"

	"foodshare/internal/domain"
)

// Builder accumulates conditions joined with AND.
type Builder struct {
	conds []string
	args  []any
}

// And appends a raw condition with its bound arguments. The condition text
// must contain only column names and placeholders.
func (b *Builder) And(cond string, args ...any) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// Eq appends `col = ?` when value is non-empty.
func (b *Builder) Eq(col, value string) *Builder {
	if value == "" {
		return b
	}
	return b.And(col+" = ?", value)
}

// Like appends a `(colA LIKE ? OR colB LIKE ?)` group for a search term,
// binding %term% once per column. Empty terms add nothing.
func (b *Builder) Like(term string, cols ...string) *Builder {
	if term == "" || len(cols) == 0 {
		return b
	}
	pattern := "%" + term + "%"
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " LIKE ?"
		b.args = append(b.args, pattern)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// DateFrom appends `DATE(col) >= ?` when value is non-empty.
func (b *Builder) DateFrom(col, value string) *Builder {
	if value == "" {
		return b
	}
	return b.And("DATE("+col+") >= ?", value)
}

// DateTo appends `DATE(col) <= ?` when value is non-empty.
func (b *Builder) DateTo(col, value string) *Builder {
	if value == "" {
		return b
	}
	return b.And("DATE("+col+") <= ?", value)
}

// Clause renders the WHERE clause. With no conditions it returns the empty
// string, meaning "match all rows".
func (b *Builder) Clause() (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(b.conds, " AND "), b.args
}

// Enum validates an enumerated filter value before any SQL is built.
// Empty values and the "all" wildcard pass through as "no filter".
func Enum(name, value string, allowed []string) (string, error) {
	if value == "" || value == "all" {
		return "", nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", domain.ValidationError{Field: name, Msg: fmt.Sprintf("Invalid %s.", name)}
}

// EnumStrict validates an enumerated value destined for a write. There is no
// wildcard on a mutation: the value must be one of the allowed literals.
func EnumStrict(name, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return domain.ValidationError{Field: name, Msg: fmt.Sprintf("Invalid %s.", name)}
}

// FieldRank renders MySQL FIELD(col, 'a', 'b', ...) for explicit enumerated
// ordering. Values must be fixed enum literals, never user input.
func FieldRank(col string, values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "FIELD(" + col + ", " + strings.Join(quoted, ", ") + ")"
}

// Page is a pagination request.
type Page struct {
	Number int
	Size   int
}

// Clamp normalizes page numbers below 1 and non-positive sizes.
func (p Page) Clamp(defaultSize int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	return p
}

// LimitOffset returns the bound arguments for `LIMIT ? OFFSET ?`.
func (p Page) LimitOffset() (limit, offset int) {
	return p.Size, (p.Number - 1) * p.Size
}
