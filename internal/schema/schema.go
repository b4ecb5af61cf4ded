package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnknownFieldType = errors.New("unknown_field_type")

type FieldType string

const (
	TypeInt      FieldType = "integer"
	TypeDecimal  FieldType = "decimal"
	TypeBool     FieldType = "boolean"
	TypeString   FieldType = "string"
	TypeDateTime FieldType = "datetime"
)

// Check is a named per-value constraint. Only the function matching the
// column's coerced type is consulted.
type Check struct {
	Name   string
	Number func(decimal.Decimal) bool
	String func(string) bool
	Time   func(time.Time) bool
}

type Column struct {
	Name     string
	Type     FieldType
	Nullable bool
	Checks   []Check
}

// Contract is the bit-exact column contract for one raw table. It mirrors the
// destination warehouse column definitions by name, type family and
// nullability.
type Contract struct {
	Table    string
	IDColumn string   // names offending rows in violation reports
	Unique   []string // columns that must not repeat across the batch
	Columns  []Column
}

// Violation identifies one offending cell: which row, which column, which
// declared constraint, and what was observed.
type Violation struct {
	Row        int // zero-based position in the batch
	RowID      string
	Column     string
	Constraint string
	Value      string
}

// ValidationError aggregates every violation found in a batch, not just the
// first, so the caller can decide between aborting and quarantining rows.
type ValidationError struct {
	Table      string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed for %s: %d violations", e.Table, len(e.Violations))
}

// OffendingRows returns the distinct row positions with at least one
// violation, in ascending order.
func (e *ValidationError) OffendingRows() []int {
	seen := map[int]bool{}
	var rows []int
	for _, v := range e.Violations {
		if !seen[v.Row] {
			seen[v.Row] = true
			rows = append(rows, v.Row)
		}
	}
	return rows
}

func GreaterThan(name string, bound float64) Check {
	b := decimal.NewFromFloat(bound)
	return Check{Name: name, Number: func(v decimal.Decimal) bool { return v.GreaterThan(b) }}
}

func AtLeast(name string, bound float64) Check {
	b := decimal.NewFromFloat(bound)
	return Check{Name: name, Number: func(v decimal.Decimal) bool { return v.GreaterThanOrEqual(b) }}
}

func InRange(name string, lo, hi float64) Check {
	l, h := decimal.NewFromFloat(lo), decimal.NewFromFloat(hi)
	return Check{Name: name, Number: func(v decimal.Decimal) bool {
		return v.GreaterThanOrEqual(l) && v.LessThanOrEqual(h)
	}}
}

func OneOf(name string, allowed ...string) Check {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return Check{Name: name, String: func(s string) bool { return set[s] }}
}

func Lowercase(name string) Check {
	return Check{Name: name, String: func(s string) bool { return s == strings.ToLower(s) }}
}

func Uppercase(name string) Check {
	return Check{Name: name, String: func(s string) bool { return s == strings.ToUpper(s) }}
}

func NotAfter(name string, cutoff time.Time) Check {
	return Check{Name: name, Time: func(t time.Time) bool { return !t.After(cutoff) }}
}
