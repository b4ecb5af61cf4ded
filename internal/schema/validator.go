package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailworks/retailpulse/internal/record"
)

// Layouts sales feeds have shipped with, tried in order. The two-digit-year
// form is the legacy point-of-sale export format.
var timeLayouts = []string{
	"02-01-06 15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", s)
}

// Row is one validated row with cells coerced to their declared types.
type Row map[string]any

func (r Row) Int(col string) int64 {
	v, _ := r[col].(int64)
	return v
}

func (r Row) Decimal(col string) decimal.Decimal {
	v, _ := r[col].(decimal.Decimal)
	return v
}

func (r Row) String(col string) string {
	v, _ := r[col].(string)
	return v
}

func (r Row) Bool(col string) bool {
	v, _ := r[col].(bool)
	return v
}

func (r Row) Time(col string) time.Time {
	v, _ := r[col].(time.Time)
	return v
}

// Validate checks every row of a raw batch against the contract and returns
// either coerced rows of the same cardinality or a *ValidationError listing
// every offending cell. It never repairs or drops data.
func Validate(batch record.RawBatch, c Contract) ([]Row, error) {
	rows := make([]Row, 0, len(batch.Rows))
	verr := &ValidationError{Table: c.Table}
	seen := make(map[string]map[string]int, len(c.Unique))
	for _, col := range c.Unique {
		seen[col] = make(map[string]int, len(batch.Rows))
	}

	for i, raw := range batch.Rows {
		row := make(Row, len(c.Columns))
		rowID := raw[c.IDColumn]

		for _, col := range c.Columns {
			cell := strings.TrimSpace(raw[col.Name])
			if cell == "" {
				if !col.Nullable {
					verr.Violations = append(verr.Violations, Violation{
						Row: i, RowID: rowID, Column: col.Name, Constraint: "not_null", Value: "",
					})
				}
				continue
			}

			value, ok := coerce(col.Type, cell)
			if !ok {
				verr.Violations = append(verr.Violations, Violation{
					Row: i, RowID: rowID, Column: col.Name,
					Constraint: "type:" + string(col.Type), Value: cell,
				})
				continue
			}
			row[col.Name] = value

			for _, check := range col.Checks {
				if !pass(check, value) {
					verr.Violations = append(verr.Violations, Violation{
						Row: i, RowID: rowID, Column: col.Name, Constraint: check.Name, Value: cell,
					})
				}
			}
		}

		for _, col := range c.Unique {
			cell := strings.TrimSpace(raw[col])
			if cell == "" {
				continue
			}
			if _, dup := seen[col][cell]; dup {
				verr.Violations = append(verr.Violations, Violation{
					Row: i, RowID: rowID, Column: col, Constraint: "unique", Value: cell,
				})
			} else {
				seen[col][cell] = i
			}
		}

		rows = append(rows, row)
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}
	return rows, nil
}

func coerce(t FieldType, cell string) (any, bool) {
	switch t {
	case TypeInt:
		v, err := strconv.ParseInt(cell, 10, 64)
		return v, err == nil
	case TypeDecimal:
		v, err := decimal.NewFromString(cell)
		return v, err == nil
	case TypeBool:
		v, err := strconv.ParseBool(strings.ToLower(cell))
		return v, err == nil
	case TypeDateTime:
		v, err := ParseTime(cell)
		return v, err == nil
	case TypeString:
		return cell, true
	default:
		return nil, false
	}
}

func pass(check Check, value any) bool {
	switch v := value.(type) {
	case int64:
		if check.Number != nil {
			return check.Number(decimal.NewFromInt(v))
		}
	case decimal.Decimal:
		if check.Number != nil {
			return check.Number(v)
		}
	case string:
		if check.String != nil {
			return check.String(v)
		}
	case time.Time:
		if check.Time != nil {
			return check.Time(v)
		}
	}
	return true
}
