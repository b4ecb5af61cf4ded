package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/record"
)

type productGroup struct {
	id       int64
	category string
	brand    string
}

type productTotals struct {
	revenue   decimal.Decimal
	units     int64
	ratingSum float64
	rows      int64
}

// ProductPerformance sums revenue and units per product and assigns a
// performance tier by fixed thresholds on total revenue.
func (s *Service) ProductPerformance(enriched []record.EnrichedRecord) []domain.ProductPerformance {
	totals := map[productGroup]*productTotals{}
	for _, row := range enriched {
		key := productGroup{row.ProductID, row.Category, row.Brand}
		t := totals[key]
		if t == nil {
			t = &productTotals{}
			totals[key] = t
		}
		t.revenue = t.revenue.Add(row.TotalSales)
		t.units += row.Quantity
		t.ratingSum += row.Rating
		t.rows++
	}

	perf := make([]domain.ProductPerformance, 0, len(totals))
	for key, t := range totals {
		perf = append(perf, domain.ProductPerformance{
			ProductID:       key.id,
			Category:        key.category,
			Brand:           key.brand,
			TotalRevenue:    t.revenue,
			TotalUnitsSold:  t.units,
			AverageRating:   t.ratingSum / float64(t.rows),
			PerformanceTier: s.perf.Label(t.revenue),
		})
	}

	sort.Slice(perf, func(i, j int) bool { return perf[i].ProductID < perf[j].ProductID })
	return perf
}
