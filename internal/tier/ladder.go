package tier

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrMismatchedLadder = errors.New("mismatched_ladder")

// Ladder assigns a categorical label by comparing a value against fixed
// ascending bounds. With bounds [100, 500] and labels [Low, Medium, High]:
// v <= 100 -> Low, v <= 500 -> Medium, otherwise High. Bounds are upper
// edges, inclusive, so assignment is monotonic in v.
type Ladder struct {
	bounds []decimal.Decimal
	labels []string
}

func NewLadder(bounds []float64, labels []string) (Ladder, error) {
	if len(labels) != len(bounds)+1 {
		return Ladder{}, fmt.Errorf("%w: %d labels for %d bounds", ErrMismatchedLadder, len(labels), len(bounds))
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return Ladder{}, fmt.Errorf("%w: bounds not strictly ascending", ErrMismatchedLadder)
		}
	}
	l := Ladder{labels: labels}
	for _, b := range bounds {
		l.bounds = append(l.bounds, decimal.NewFromFloat(b))
	}
	return l, nil
}

func (l Ladder) Label(v decimal.Decimal) string {
	for i, bound := range l.bounds {
		if v.LessThanOrEqual(bound) {
			return l.labels[i]
		}
	}
	return l.labels[len(l.labels)-1]
}
