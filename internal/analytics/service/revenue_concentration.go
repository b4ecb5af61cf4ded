package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/record"
)

// RevenueConcentration ranks regions by total revenue, descending, and
// attaches each region's share plus the running cumulative share in that
// order. Ties rank alphabetically so the output is deterministic. An empty
// batch yields an empty table; the grand total is never divided when zero.
func (s *Service) RevenueConcentration(enriched []record.EnrichedRecord) []domain.RevenueConcentration {
	totals := map[string]decimal.Decimal{}
	for _, row := range enriched {
		totals[row.Region] = totals[row.Region].Add(row.TotalSales)
	}
	if len(totals) == 0 {
		return nil
	}

	var grand decimal.Decimal
	regions := make([]domain.RevenueConcentration, 0, len(totals))
	for region, total := range totals {
		grand = grand.Add(total)
		regions = append(regions, domain.RevenueConcentration{Region: region, TotalSales: total})
	}

	sort.Slice(regions, func(i, j int) bool {
		cmp := regions[i].TotalSales.Cmp(regions[j].TotalSales)
		if cmp != 0 {
			return cmp > 0
		}
		return regions[i].Region < regions[j].Region
	})

	if grand.IsZero() {
		// All-zero revenue: shares are undefined, report zeros rather
		// than divide.
		return regions
	}

	grandF, _ := grand.Float64()
	cumulative := 0.0
	for i := range regions {
		totalF, _ := regions[i].TotalSales.Float64()
		regions[i].RevenueShare = totalF / grandF
		cumulative += regions[i].RevenueShare
		regions[i].CumulativeShare = cumulative
	}
	return regions
}
