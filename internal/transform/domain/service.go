package domain

import (
	"context"
	"errors"

	"github.com/retailworks/retailpulse/internal/record"
)

var (
	ErrEmptySalesBatch   = errors.New("empty_sales_batch")
	ErrEmptyProductBatch = errors.New("empty_product_batch")
	ErrDuplicateProduct  = errors.New("duplicate_product_id")
	ErrInvalidTimestamp  = errors.New("invalid_timestamp")
)

// Service builds the business layer: an m:1 inner join of sales onto
// products, then per-row derived features. Inputs are treated as immutable
// snapshots; output order follows sales input order.
type Service interface {
	Merge(ctx context.Context, sales []record.SalesRecord, products []record.ProductRecord) ([]record.MergedRecord, MergeReport, error)
	Enrich(ctx context.Context, merged []record.MergedRecord) ([]record.EnrichedRecord, EnrichReport, error)
}

// MergeReport exposes the join integrity outcome. DroppedUnmatched is the
// documented count of sales rows with no matching product.
type MergeReport struct {
	SalesIn          int
	ProductsIn       int
	Matched          int
	DroppedUnmatched int
}

type EnrichReport struct {
	Input   int
	Dropped int
	Output  int
}
