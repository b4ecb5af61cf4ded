package record

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects which raw table a batch carries.
type Kind string

const (
	KindSales   Kind = "sales"
	KindProduct Kind = "product"
)

// Order statuses accepted by the cleansed sales contract. The weekly status
// view tracks only pending/shipped/returned; the rest stay in the cleansed
// and business layers.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusPending   = "pending"
	StatusReturned  = "returned"
	StatusShipped   = "shipped"
)

func OrderStatuses() []string {
	return []string{StatusCompleted, StatusCancelled, StatusPending, StatusReturned, StatusShipped}
}

// SalesRecord is one cleansed sales row. TotalSales is quantity x price net
// of the fractional discount, fixed at cleanse time.
type SalesRecord struct {
	SalesID     int64
	ProductID   int64
	Region      string
	Quantity    int64
	Price       decimal.Decimal
	Timestamp   time.Time
	Discount    decimal.Decimal
	OrderStatus string
	TotalSales  decimal.Decimal
}

// ProductRecord is one cleansed product row.
type ProductRecord struct {
	ProductID  int64
	Category   string
	Brand      string
	Rating     float64
	InStock    bool
	LaunchDate time.Time
}

// MergedRecord is a sales row joined with its product row on product_id.
type MergedRecord struct {
	SalesID     int64
	ProductID   int64
	Region      string
	Quantity    int64
	Price       decimal.Decimal
	Timestamp   time.Time
	Discount    decimal.Decimal
	OrderStatus string
	TotalSales  decimal.Decimal
	Category    string
	Brand       string
	Rating      float64
	InStock     bool
	LaunchDate  time.Time
}

// EnrichedRecord adds the derived features. Every derived field is a pure
// function of the row's own timestamp and revenue.
type EnrichedRecord struct {
	MergedRecord

	Month       string // calendar period, "2025-01"
	Weekday     string // English day name
	Hour        int    // 0-23
	SalesBucket string
}

func Merge(s SalesRecord, p ProductRecord) MergedRecord {
	return MergedRecord{
		SalesID:     s.SalesID,
		ProductID:   s.ProductID,
		Region:      s.Region,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Timestamp:   s.Timestamp,
		Discount:    s.Discount,
		OrderStatus: s.OrderStatus,
		TotalSales:  s.TotalSales,
		Category:    p.Category,
		Brand:       p.Brand,
		Rating:      p.Rating,
		InStock:     p.InStock,
		LaunchDate:  p.LaunchDate,
	}
}
