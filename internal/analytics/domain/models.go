package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailworks/retailpulse/internal/record"
)

// HourlyTrend is the peak revenue hour for one (region, category) pair.
type HourlyTrend struct {
	Region   string
	Category string
	PeakHour int
	MaxSales decimal.Decimal
}

// ProductPerformance ranks one product's revenue and volume across the run.
type ProductPerformance struct {
	ProductID       int64
	Category        string
	Brand           string
	TotalRevenue    decimal.Decimal
	TotalUnitsSold  int64
	AverageRating   float64
	PerformanceTier string
}

// SeasonalPattern is revenue and order volume per quarter and category.
type SeasonalPattern struct {
	Quarter    string // "2025Q1"
	Category   string
	TotalSales decimal.Decimal
	OrderCount int64
}

// RevenueConcentration ranks regions by revenue. CumulativeShare is the
// running sum of RevenueShare in ranked order, so the last row approaches 1.
type RevenueConcentration struct {
	Region          string
	TotalSales      decimal.Decimal
	RevenueShare    float64
	CumulativeShare float64
}

// WeeklyOrderStatus counts the three tracked statuses per calendar week.
// Rows with any other status are excluded from all three counts by design.
type WeeklyOrderStatus struct {
	Week     time.Time // Monday 00:00 UTC
	Pending  int64
	Shipped  int64
	Returned int64
}

// Report bundles the five presentation-layer views of one run.
type Report struct {
	HourlyTrends         []HourlyTrend
	ProductPerformance   []ProductPerformance
	SeasonalPatterns     []SeasonalPattern
	RevenueConcentration []RevenueConcentration
	WeeklyOrderStatus    []WeeklyOrderStatus
}

// Service computes the presentation layer. Each method is a pure function of
// the enriched batch; Run executes all five concurrently.
type Service interface {
	Run(ctx context.Context, enriched []record.EnrichedRecord) (*Report, error)

	HourlyTrends(enriched []record.EnrichedRecord) []HourlyTrend
	ProductPerformance(enriched []record.EnrichedRecord) []ProductPerformance
	SeasonalPatterns(enriched []record.EnrichedRecord) []SeasonalPattern
	RevenueConcentration(enriched []record.EnrichedRecord) []RevenueConcentration
	WeeklyOrderStatus(enriched []record.EnrichedRecord) []WeeklyOrderStatus
}
