package service

import (
	analyticsdomain "github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/record"
	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

func salesRows(in []record.SalesRecord) []warehousedomain.SalesRow {
	out := make([]warehousedomain.SalesRow, len(in))
	for i, r := range in {
		out[i] = warehousedomain.SalesRow{
			SalesID:     r.SalesID,
			ProductID:   r.ProductID,
			Region:      r.Region,
			Quantity:    r.Quantity,
			Price:       r.Price,
			Timestamp:   r.Timestamp,
			Discount:    r.Discount,
			OrderStatus: r.OrderStatus,
			TotalSales:  r.TotalSales,
		}
	}
	return out
}

func productRows(in []record.ProductRecord) []warehousedomain.ProductRow {
	out := make([]warehousedomain.ProductRow, len(in))
	for i, r := range in {
		out[i] = warehousedomain.ProductRow{
			ProductID:  r.ProductID,
			Category:   r.Category,
			Brand:      r.Brand,
			Rating:     r.Rating,
			InStock:    r.InStock,
			LaunchDate: r.LaunchDate,
		}
	}
	return out
}

func mergedRow(r record.MergedRecord) warehousedomain.MergedRow {
	return warehousedomain.MergedRow{
		SalesID:     r.SalesID,
		ProductID:   r.ProductID,
		Region:      r.Region,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Timestamp:   r.Timestamp,
		Discount:    r.Discount,
		OrderStatus: r.OrderStatus,
		TotalSales:  r.TotalSales,
		Category:    r.Category,
		Brand:       r.Brand,
		Rating:      r.Rating,
		InStock:     r.InStock,
		LaunchDate:  r.LaunchDate,
	}
}

func mergedRows(in []record.MergedRecord) []warehousedomain.MergedRow {
	out := make([]warehousedomain.MergedRow, len(in))
	for i, r := range in {
		out[i] = mergedRow(r)
	}
	return out
}

func enrichedRows(in []record.EnrichedRecord) []warehousedomain.EnrichedRow {
	out := make([]warehousedomain.EnrichedRow, len(in))
	for i, r := range in {
		out[i] = warehousedomain.EnrichedRow{
			MergedRow:   mergedRow(r.MergedRecord),
			Month:       r.Month,
			Weekday:     r.Weekday,
			Hour:        r.Hour,
			SalesBucket: r.SalesBucket,
		}
	}
	return out
}

func hourlyTrendRows(in []analyticsdomain.HourlyTrend) []warehousedomain.HourlyTrendRow {
	out := make([]warehousedomain.HourlyTrendRow, len(in))
	for i, t := range in {
		out[i] = warehousedomain.HourlyTrendRow{
			Region:   t.Region,
			Category: t.Category,
			PeakHour: t.PeakHour,
			MaxSales: t.MaxSales,
		}
	}
	return out
}

func performanceRows(in []analyticsdomain.ProductPerformance) []warehousedomain.ProductPerformanceRow {
	out := make([]warehousedomain.ProductPerformanceRow, len(in))
	for i, p := range in {
		out[i] = warehousedomain.ProductPerformanceRow{
			ProductID:       p.ProductID,
			Category:        p.Category,
			Brand:           p.Brand,
			TotalRevenue:    p.TotalRevenue,
			TotalUnitsSold:  p.TotalUnitsSold,
			AverageRating:   p.AverageRating,
			PerformanceTier: p.PerformanceTier,
		}
	}
	return out
}

func seasonalRows(in []analyticsdomain.SeasonalPattern) []warehousedomain.SeasonalPatternRow {
	out := make([]warehousedomain.SeasonalPatternRow, len(in))
	for i, p := range in {
		out[i] = warehousedomain.SeasonalPatternRow{
			Quarter:    p.Quarter,
			Category:   p.Category,
			TotalSales: p.TotalSales,
			OrderCount: p.OrderCount,
		}
	}
	return out
}

func concentrationRows(in []analyticsdomain.RevenueConcentration) []warehousedomain.RevenueConcentrationRow {
	out := make([]warehousedomain.RevenueConcentrationRow, len(in))
	for i, c := range in {
		out[i] = warehousedomain.RevenueConcentrationRow{
			Region:          c.Region,
			TotalSales:      c.TotalSales,
			RevenueShare:    c.RevenueShare,
			CumulativeShare: c.CumulativeShare,
		}
	}
	return out
}

func orderStatusRows(in []analyticsdomain.WeeklyOrderStatus) []warehousedomain.OrderStatusRow {
	out := make([]warehousedomain.OrderStatusRow, len(in))
	for i, w := range in {
		out[i] = warehousedomain.OrderStatusRow{
			Week:     w.Week,
			Pending:  w.Pending,
			Shipped:  w.Shipped,
			Returned: w.Returned,
		}
	}
	return out
}
