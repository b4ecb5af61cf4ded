// Package domain contains persistence models for the layered warehouse:
// cleansed, business and presentation tables plus the run ledger.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Destination table names, one per logical pipeline output.
const (
	TableSales                = "sales"
	TableProduct              = "product"
	TableMergedSalesProducts  = "merged_sales_products"
	TableEnrichedSales        = "enriched_sales_products"
	TableHourlyTrends         = "sales_hourly_trends"
	TableProductPerformance   = "products_sales_performance"
	TableSeasonalPatterns     = "seasonal_sales_patterns"
	TableRevenueConcentration = "revenue_concentration_analysis"
	TableOrderStatusOverTime  = "order_status_over_time"
	TablePipelineRuns         = "pipeline_runs"
)

// Sink persists one batch per destination table. A persist replaces the
// table's previous contents; runs are whole-table snapshots.
type Sink interface {
	Persist(ctx context.Context, table string, rows any) error
}

// SalesRow is the cleansed sales table.
type SalesRow struct {
	SalesID     int64           `gorm:"column:sales_id;primaryKey"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	Region      string          `gorm:"column:region;type:text;not null"`
	Quantity    int64           `gorm:"column:quantity;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,4);not null"`
	Timestamp   time.Time       `gorm:"column:timestamp;not null"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(5,4);not null"`
	OrderStatus string          `gorm:"column:order_status;type:text;not null"`
	TotalSales  decimal.Decimal `gorm:"column:total_sales;type:numeric(16,4);not null"`
}

func (SalesRow) TableName() string { return TableSales }

// ProductRow is the cleansed product table.
type ProductRow struct {
	ProductID  int64     `gorm:"column:product_id;primaryKey"`
	Category   string    `gorm:"column:category;type:text;not null"`
	Brand      string    `gorm:"column:brand;type:text;not null"`
	Rating     float64   `gorm:"column:rating;not null"`
	InStock    bool      `gorm:"column:in_stock;not null"`
	LaunchDate time.Time `gorm:"column:launch_date;not null"`
}

func (ProductRow) TableName() string { return TableProduct }

// MergedRow is the business-layer join of sales onto products.
type MergedRow struct {
	SalesID     int64           `gorm:"column:sales_id;primaryKey"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	Region      string          `gorm:"column:region;type:text;not null"`
	Quantity    int64           `gorm:"column:quantity;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,4);not null"`
	Timestamp   time.Time       `gorm:"column:timestamp;not null"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(5,4);not null"`
	OrderStatus string          `gorm:"column:order_status;type:text;not null"`
	TotalSales  decimal.Decimal `gorm:"column:total_sales;type:numeric(16,4);not null"`
	Category    string          `gorm:"column:category;type:text;not null"`
	Brand       string          `gorm:"column:brand;type:text;not null"`
	Rating      float64         `gorm:"column:rating;not null"`
	InStock     bool            `gorm:"column:in_stock;not null"`
	LaunchDate  time.Time       `gorm:"column:launch_date;not null"`
}

func (MergedRow) TableName() string { return TableMergedSalesProducts }

// EnrichedRow adds the derived features to the merged row.
type EnrichedRow struct {
	MergedRow

	Month       string `gorm:"column:month;type:text;not null"`
	Weekday     string `gorm:"column:weekday;type:text;not null"`
	Hour        int    `gorm:"column:hour;not null"`
	SalesBucket string `gorm:"column:sales_bucket;type:text;not null"`
}

func (EnrichedRow) TableName() string { return TableEnrichedSales }

type HourlyTrendRow struct {
	Region   string          `gorm:"column:region;type:text;not null"`
	Category string          `gorm:"column:category;type:text;not null"`
	PeakHour int             `gorm:"column:peak_hour;not null"`
	MaxSales decimal.Decimal `gorm:"column:max_sales;type:numeric(16,4);not null"`
}

func (HourlyTrendRow) TableName() string { return TableHourlyTrends }

type ProductPerformanceRow struct {
	ProductID       int64           `gorm:"column:product_id;not null"`
	Category        string          `gorm:"column:category;type:text;not null"`
	Brand           string          `gorm:"column:brand;type:text;not null"`
	TotalRevenue    decimal.Decimal `gorm:"column:total_revenue;type:numeric(16,4);not null"`
	TotalUnitsSold  int64           `gorm:"column:total_units_sold;not null"`
	AverageRating   float64         `gorm:"column:average_rating;not null"`
	PerformanceTier string          `gorm:"column:performance_tier;type:text;not null"`
}

func (ProductPerformanceRow) TableName() string { return TableProductPerformance }

type SeasonalPatternRow struct {
	Quarter    string          `gorm:"column:quarter;type:text;not null"`
	Category   string          `gorm:"column:category;type:text;not null"`
	TotalSales decimal.Decimal `gorm:"column:total_sales;type:numeric(16,4);not null"`
	OrderCount int64           `gorm:"column:order_count;not null"`
}

func (SeasonalPatternRow) TableName() string { return TableSeasonalPatterns }

type RevenueConcentrationRow struct {
	Region          string          `gorm:"column:region;type:text;not null"`
	TotalSales      decimal.Decimal `gorm:"column:total_sales;type:numeric(16,4);not null"`
	RevenueShare    float64         `gorm:"column:revenue_share;not null"`
	CumulativeShare float64         `gorm:"column:cumulative_share;not null"`
}

func (RevenueConcentrationRow) TableName() string { return TableRevenueConcentration }

type OrderStatusRow struct {
	Week     time.Time `gorm:"column:week;not null"`
	Pending  int64     `gorm:"column:pending;not null"`
	Shipped  int64     `gorm:"column:shipped;not null"`
	Returned int64     `gorm:"column:returned;not null"`
}

func (OrderStatusRow) TableName() string { return TableOrderStatusOverTime }

// PipelineRun is one row of the run ledger.
type PipelineRun struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	Status           string       `gorm:"column:status;type:text;not null" json:"status"`
	SalesIn          int          `gorm:"column:sales_in;not null" json:"sales_in"`
	ProductsIn       int          `gorm:"column:products_in;not null" json:"products_in"`
	CleansedSales    int          `gorm:"column:cleansed_sales;not null" json:"cleansed_sales"`
	CleansedProducts int          `gorm:"column:cleansed_products;not null" json:"cleansed_products"`
	MergedRows       int          `gorm:"column:merged_rows;not null" json:"merged_rows"`
	DroppedJoins     int          `gorm:"column:dropped_joins;not null" json:"dropped_joins"`
	EnrichedRows     int          `gorm:"column:enriched_rows;not null" json:"enriched_rows"`
	Error            string       `gorm:"column:error;type:text" json:"error,omitempty"`
	StartedAt        time.Time    `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt       *time.Time   `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (PipelineRun) TableName() string { return TablePipelineRuns }

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)
