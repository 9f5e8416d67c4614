// Package patch builds partial UPDATE statements from sparse optional fields.
//
// Columns and arguments are appended together and placeholders come from a
// single counter, so the clause and the argument list cannot drift apart.
package patch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"marketplace-server/internal/models"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ErrInvalidIdentifier is returned for table or column names that are not plain
// lower-case SQL identifiers.
var ErrInvalidIdentifier = errors.New("patch: invalid identifier")

// ErrNoCondition guards against unconditioned updates.
var ErrNoCondition = errors.New("patch: update without WHERE condition")

type assignment struct {
	column string
	value  any
}

// Set is an ordered list of column assignments.
type Set struct {
	fields []assignment
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// String adds column when v is non-nil and non-empty.
// Text columns cannot be cleared through a patch.
func (s *Set) String(column string, v *string) *Set {
	if v != nil && *v != "" {
		s.fields = append(s.fields, assignment{column, *v})
	}
	return s
}

// Float adds column when v is non-nil. Zero is a value.
func (s *Set) Float(column string, v *float64) *Set {
	if v != nil {
		s.fields = append(s.fields, assignment{column, *v})
	}
	return s
}

// Bool adds column when v is non-nil. False is a value.
func (s *Set) Bool(column string, v *bool) *Set {
	if v != nil {
		s.fields = append(s.fields, assignment{column, *v})
	}
	return s
}

// Value adds column unconditionally.
func (s *Set) Value(column string, v any) *Set {
	s.fields = append(s.fields, assignment{column, v})
	return s
}

// Empty reports whether no field is present.
func (s *Set) Empty() bool {
	return len(s.fields) == 0
}

// Columns returns the present columns in insertion order.
func (s *Set) Columns() []string {
	cols := make([]string, len(s.fields))
	for i, f := range s.fields {
		cols[i] = f.column
	}
	return cols
}

// Cond is an equality condition of the WHERE clause.
type Cond struct {
	Column string
	Value  any
}

// Eq builds a Cond.
func Eq(column string, v any) Cond {
	return Cond{Column: column, Value: v}
}

// Build renders
//
//	UPDATE table SET c1 = $1, ..., cN = $N WHERE k1 = $N+1 AND ... [RETURNING returning]
//
// and the matching argument list. It fails with models.ErrNoFieldsProvided when
// the set is empty.
func (s *Set) Build(table, returning string, where ...Cond) (string, []any, error) {
	if s.Empty() {
		return "", nil, models.ErrNoFieldsProvided
	}
	if len(where) == 0 {
		return "", nil, ErrNoCondition
	}
	if !identifier.MatchString(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}

	args := make([]any, 0, len(s.fields)+len(where))
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, f := range s.fields {
		if !identifier.MatchString(f.column) {
			return "", nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, f.column)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.column)
		b.WriteString(" = ")
		b.WriteString(next(f.value))
	}

	b.WriteString(" WHERE ")
	for i, c := range where {
		if !identifier.MatchString(c.Column) {
			return "", nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, c.Column)
		}
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(c.Column)
		b.WriteString(" = ")
		b.WriteString(next(c.Value))
	}

	if returning != "" {
		b.WriteString(" RETURNING ")
		b.WriteString(returning)
	}
	return b.String(), args, nil
}
