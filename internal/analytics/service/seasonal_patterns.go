package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/record"
)

type quarterCategory struct {
	quarter  string
	category string
}

func quarterOf(row record.EnrichedRecord) string {
	ts := row.Timestamp.UTC()
	return fmt.Sprintf("%dQ%d", ts.Year(), (int(ts.Month())-1)/3+1)
}

// SeasonalPatterns sums revenue and counts orders per quarter and category.
func (s *Service) SeasonalPatterns(enriched []record.EnrichedRecord) []domain.SeasonalPattern {
	type totals struct {
		sales decimal.Decimal
		count int64
	}
	groups := map[quarterCategory]*totals{}
	for _, row := range enriched {
		key := quarterCategory{quarterOf(row), row.Category}
		t := groups[key]
		if t == nil {
			t = &totals{}
			groups[key] = t
		}
		t.sales = t.sales.Add(row.TotalSales)
		t.count++
	}

	patterns := make([]domain.SeasonalPattern, 0, len(groups))
	for key, t := range groups {
		patterns = append(patterns, domain.SeasonalPattern{
			Quarter:    key.quarter,
			Category:   key.category,
			TotalSales: t.sales,
			OrderCount: t.count,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Quarter != patterns[j].Quarter {
			return patterns[i].Quarter < patterns[j].Quarter
		}
		return patterns[i].Category < patterns[j].Category
	})
	return patterns
}
