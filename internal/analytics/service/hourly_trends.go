package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/record"
)

type regionCategory struct {
	region   string
	category string
}

// HourlyTrends finds, per (region, category), the hour with the highest
// summed revenue. Ties resolve to the lowest hour.
func (s *Service) HourlyTrends(enriched []record.EnrichedRecord) []domain.HourlyTrend {
	byHour := map[regionCategory]map[int]decimal.Decimal{}
	for _, row := range enriched {
		key := regionCategory{row.Region, row.Category}
		hours := byHour[key]
		if hours == nil {
			hours = map[int]decimal.Decimal{}
			byHour[key] = hours
		}
		hours[row.Hour] = hours[row.Hour].Add(row.TotalSales)
	}

	trends := make([]domain.HourlyTrend, 0, len(byHour))
	for key, hours := range byHour {
		peak := -1
		var max decimal.Decimal
		for hour := 0; hour < 24; hour++ {
			total, ok := hours[hour]
			if !ok {
				continue
			}
			if peak == -1 || total.GreaterThan(max) {
				peak = hour
				max = total
			}
		}
		trends = append(trends, domain.HourlyTrend{
			Region:   key.region,
			Category: key.category,
			PeakHour: peak,
			MaxSales: max,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Region != trends[j].Region {
			return trends[i].Region < trends[j].Region
		}
		return trends[i].Category < trends[j].Category
	})
	return trends
}
