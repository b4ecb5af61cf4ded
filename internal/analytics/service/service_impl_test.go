package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailworks/retailpulse/internal/config"
	"github.com/retailworks/retailpulse/internal/record"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(Params{
		Cfg: &config.Config{
			PerformanceBounds: []float64{20000, 50000},
			PerformanceLabels: []string{"Low Performer", "Average", "Bestseller"},
		},
		Log: zap.NewNop(),
	})
	require.NoError(t, err)
	return svc.(*Service)
}

type rowSpec struct {
	salesID   int64
	productID int64
	region    string
	category  string
	brand     string
	quantity  int64
	rating    float64
	total     float64
	status    string
	ts        time.Time
}

func enrichedRow(spec rowSpec) record.EnrichedRecord {
	ts := spec.ts.UTC()
	return record.EnrichedRecord{
		MergedRecord: record.MergedRecord{
			SalesID:     spec.salesID,
			ProductID:   spec.productID,
			Region:      spec.region,
			Quantity:    spec.quantity,
			Timestamp:   ts,
			OrderStatus: spec.status,
			TotalSales:  decimal.NewFromFloat(spec.total),
			Category:    spec.category,
			Brand:       spec.brand,
			Rating:      spec.rating,
			InStock:     true,
		},
		Month:   ts.Format("2006-01"),
		Weekday: ts.Weekday().String(),
		Hour:    ts.Hour(),
	}
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2025, month, day, hour, 0, 0, 0, time.UTC)
}

func TestHourlyTrendsPeakHour(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{region: "west", category: "electronics", total: 300, status: record.StatusShipped, ts: at(3, 10, 14)}),
		enrichedRow(rowSpec{region: "west", category: "electronics", total: 250, status: record.StatusShipped, ts: at(3, 11, 14)}),
		enrichedRow(rowSpec{region: "west", category: "electronics", total: 100, status: record.StatusShipped, ts: at(3, 10, 9)}),
		enrichedRow(rowSpec{region: "east", category: "toys", total: 40, status: record.StatusShipped, ts: at(3, 10, 20)}),
	}

	trends := svc.HourlyTrends(rows)
	require.Len(t, trends, 2)

	// sorted by region then category
	assert.Equal(t, "east", trends[0].Region)
	assert.Equal(t, 20, trends[0].PeakHour)

	assert.Equal(t, "west", trends[1].Region)
	assert.Equal(t, 14, trends[1].PeakHour)
	assert.Equal(t, "550", trends[1].MaxSales.String())
}

func TestHourlyTrendsTieBreaksToLowestHour(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{region: "west", category: "toys", total: 100, status: record.StatusShipped, ts: at(3, 10, 18)}),
		enrichedRow(rowSpec{region: "west", category: "toys", total: 100, status: record.StatusShipped, ts: at(3, 10, 7)}),
	}

	trends := svc.HourlyTrends(rows)
	require.Len(t, trends, 1)
	assert.Equal(t, 7, trends[0].PeakHour)
}

func TestProductPerformanceTotalsAndTier(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{salesID: 1, productID: 100, category: "electronics", brand: "ACME", quantity: 2, rating: 4.5, total: 30000, status: record.StatusShipped, ts: at(1, 5, 10)}),
		enrichedRow(rowSpec{salesID: 2, productID: 100, category: "electronics", brand: "ACME", quantity: 3, rating: 4.5, total: 40000, status: record.StatusShipped, ts: at(2, 5, 10)}),
		enrichedRow(rowSpec{salesID: 3, productID: 200, category: "toys", brand: "BRIO", quantity: 1, rating: 3.0, total: 500, status: record.StatusShipped, ts: at(1, 5, 10)}),
	}

	perf := svc.ProductPerformance(rows)
	require.Len(t, perf, 2)

	assert.Equal(t, int64(100), perf[0].ProductID)
	assert.Equal(t, "70000", perf[0].TotalRevenue.String())
	assert.Equal(t, int64(5), perf[0].TotalUnitsSold)
	assert.InDelta(t, 4.5, perf[0].AverageRating, 1e-9)
	assert.Equal(t, "Bestseller", perf[0].PerformanceTier)

	assert.Equal(t, int64(200), perf[1].ProductID)
	assert.Equal(t, "Low Performer", perf[1].PerformanceTier)
}

func TestSeasonalPatternsQuarters(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{category: "toys", total: 100, status: record.StatusShipped, ts: at(2, 10, 10)}),
		enrichedRow(rowSpec{category: "toys", total: 50, status: record.StatusShipped, ts: at(3, 31, 10)}),
		enrichedRow(rowSpec{category: "toys", total: 75, status: record.StatusShipped, ts: at(4, 1, 10)}),
	}

	patterns := svc.SeasonalPatterns(rows)
	require.Len(t, patterns, 2)
	assert.Equal(t, "2025Q1", patterns[0].Quarter)
	assert.Equal(t, "150", patterns[0].TotalSales.String())
	assert.Equal(t, int64(2), patterns[0].OrderCount)
	assert.Equal(t, "2025Q2", patterns[1].Quarter)
	assert.Equal(t, int64(1), patterns[1].OrderCount)
}

func TestRevenueConcentrationSharesSumToOne(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{region: "west", total: 600, status: record.StatusShipped, ts: at(3, 10, 10)}),
		enrichedRow(rowSpec{region: "east", total: 300, status: record.StatusShipped, ts: at(3, 10, 10)}),
		enrichedRow(rowSpec{region: "south", total: 100, status: record.StatusShipped, ts: at(3, 10, 10)}),
	}

	regions := svc.RevenueConcentration(rows)
	require.Len(t, regions, 3)

	assert.Equal(t, "west", regions[0].Region)
	assert.InDelta(t, 0.6, regions[0].RevenueShare, 1e-9)
	assert.InDelta(t, 0.6, regions[0].CumulativeShare, 1e-9)
	assert.InDelta(t, 0.9, regions[1].CumulativeShare, 1e-9)
	assert.InDelta(t, 1.0, regions[2].CumulativeShare, 1e-9)
}

func TestRevenueConcentrationTieBreaksAlphabetically(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{region: "north", total: 100, status: record.StatusShipped, ts: at(3, 10, 10)}),
		enrichedRow(rowSpec{region: "east", total: 100, status: record.StatusShipped, ts: at(3, 10, 10)}),
	}

	regions := svc.RevenueConcentration(rows)
	require.Len(t, regions, 2)
	assert.Equal(t, "east", regions[0].Region)
	assert.Equal(t, "north", regions[1].Region)
}

func TestRevenueConcentrationEmptyBatch(t *testing.T) {
	svc := newService(t)
	assert.Empty(t, svc.RevenueConcentration(nil))
}

func TestWeeklyOrderStatusCountsAndExclusions(t *testing.T) {
	svc := newService(t)

	// all within the week starting Monday 2025-03-10
	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{status: record.StatusPending, ts: at(3, 10, 10)}),
		enrichedRow(rowSpec{status: record.StatusShipped, ts: at(3, 12, 10)}),
		enrichedRow(rowSpec{status: record.StatusShipped, ts: at(3, 14, 10)}),
		enrichedRow(rowSpec{status: record.StatusReturned, ts: at(3, 16, 10)}),
		enrichedRow(rowSpec{status: record.StatusCancelled, ts: at(3, 13, 10)}),
		enrichedRow(rowSpec{status: record.StatusCompleted, ts: at(3, 13, 11)}),
	}

	weeks := svc.WeeklyOrderStatus(rows)
	require.Len(t, weeks, 1)

	week := weeks[0]
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), week.Week)
	assert.Equal(t, int64(1), week.Pending)
	assert.Equal(t, int64(2), week.Shipped)
	assert.Equal(t, int64(1), week.Returned)
	// tracked counts equal total rows minus the excluded statuses
	assert.Equal(t, int64(len(rows)-2), week.Pending+week.Shipped+week.Returned)
}

func TestWeeklyOrderStatusBucketsByMonday(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{status: record.StatusPending, ts: at(3, 9, 23)}),  // Sunday -> week of Mar 3
		enrichedRow(rowSpec{status: record.StatusPending, ts: at(3, 10, 0)}), // Monday -> week of Mar 10
	}

	weeks := svc.WeeklyOrderStatus(rows)
	require.Len(t, weeks, 2)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), weeks[0].Week)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), weeks[1].Week)
}

func TestRunIsDeterministic(t *testing.T) {
	svc := newService(t)

	rows := []record.EnrichedRecord{
		enrichedRow(rowSpec{salesID: 1, productID: 100, region: "west", category: "electronics", brand: "ACME", quantity: 2, rating: 4.5, total: 300, status: record.StatusShipped, ts: at(3, 10, 14)}),
		enrichedRow(rowSpec{salesID: 2, productID: 200, region: "east", category: "toys", brand: "BRIO", quantity: 1, rating: 3.0, total: 40, status: record.StatusPending, ts: at(4, 2, 9)}),
		enrichedRow(rowSpec{salesID: 3, productID: 100, region: "west", category: "electronics", brand: "ACME", quantity: 1, rating: 4.5, total: 90, status: record.StatusReturned, ts: at(3, 11, 14)}),
	}

	first, err := svc.Run(context.Background(), rows)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunEmptyBatchProducesEmptyViews(t *testing.T) {
	svc := newService(t)

	report, err := svc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.HourlyTrends)
	assert.Empty(t, report.ProductPerformance)
	assert.Empty(t, report.SeasonalPatterns)
	assert.Empty(t, report.RevenueConcentration)
	assert.Empty(t, report.WeeklyOrderStatus)
}
