package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/retailworks/retailpulse/internal/config"
	"github.com/retailworks/retailpulse/internal/observability"
	"github.com/retailworks/retailpulse/internal/record"
	"github.com/retailworks/retailpulse/internal/tier"
	"github.com/retailworks/retailpulse/internal/transform/domain"
)

type Params struct {
	fx.In

	Cfg     *config.Config
	Log     *zap.Logger
	Metrics *observability.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	metrics *observability.Metrics
	policy  string
	buckets tier.Ladder
}

func New(p Params) (domain.Service, error) {
	buckets, err := tier.NewLadder(p.Cfg.SalesBucketBounds, p.Cfg.SalesBucketLabels)
	if err != nil {
		return nil, fmt.Errorf("sales bucket ladder: %w", err)
	}
	return &Service{
		log:     p.Log.Named("transform.service"),
		metrics: p.Metrics,
		policy:  p.Cfg.ParsePolicy,
		buckets: buckets,
	}, nil
}

// Merge inner-joins sales onto products by product_id. The product side must
// be unique per id (m:1); sales rows without a product are dropped and
// counted, never silently lost.
func (s *Service) Merge(ctx context.Context, sales []record.SalesRecord, products []record.ProductRecord) ([]record.MergedRecord, domain.MergeReport, error) {
	report := domain.MergeReport{SalesIn: len(sales), ProductsIn: len(products)}
	if len(sales) == 0 {
		return nil, report, domain.ErrEmptySalesBatch
	}
	if len(products) == 0 {
		return nil, report, domain.ErrEmptyProductBatch
	}

	index := make(map[int64]record.ProductRecord, len(products))
	for _, p := range products {
		if _, dup := index[p.ProductID]; dup {
			return nil, report, fmt.Errorf("%w: %d", domain.ErrDuplicateProduct, p.ProductID)
		}
		index[p.ProductID] = p
	}

	merged := make([]record.MergedRecord, 0, len(sales))
	for _, sale := range sales {
		product, ok := index[sale.ProductID]
		if !ok {
			report.DroppedUnmatched++
			continue
		}
		merged = append(merged, record.Merge(sale, product))
	}
	report.Matched = len(merged)

	if report.DroppedUnmatched > 0 {
		// Join integrity warning: non-fatal, observable.
		s.log.Warn("sales rows without matching product dropped",
			zap.Int("dropped", report.DroppedUnmatched),
			zap.Int("sales_in", report.SalesIn),
		)
	}
	if s.metrics != nil {
		s.metrics.RowsProcessed.WithLabelValues("merge").Add(float64(report.Matched))
		s.metrics.RowsDropped.WithLabelValues("merge", "unmatched_product").Add(float64(report.DroppedUnmatched))
	}
	s.log.Info("merge completed",
		zap.Int("sales_in", report.SalesIn),
		zap.Int("products_in", report.ProductsIn),
		zap.Int("matched", report.Matched),
	)
	return merged, report, nil
}

// Enrich derives month, weekday, hour and the revenue bucket for each row.
// Every feature is a pure function of the row itself.
func (s *Service) Enrich(ctx context.Context, merged []record.MergedRecord) ([]record.EnrichedRecord, domain.EnrichReport, error) {
	report := domain.EnrichReport{Input: len(merged)}

	enriched := make([]record.EnrichedRecord, 0, len(merged))
	for _, row := range merged {
		// A zero timestamp cannot produce derived features; the parse
		// policy decides whether that drops the row or the batch.
		if row.Timestamp.IsZero() {
			if s.policy == config.ParsePolicyQuarantine {
				report.Dropped++
				continue
			}
			return nil, report, fmt.Errorf("%w: sales_id %d", domain.ErrInvalidTimestamp, row.SalesID)
		}
		ts := row.Timestamp.UTC()
		enriched = append(enriched, record.EnrichedRecord{
			MergedRecord: row,
			Month:        ts.Format("2006-01"),
			Weekday:      ts.Weekday().String(),
			Hour:         ts.Hour(),
			SalesBucket:  s.buckets.Label(row.TotalSales),
		})
	}
	report.Output = len(enriched)

	if s.metrics != nil {
		s.metrics.RowsProcessed.WithLabelValues("enrich").Add(float64(report.Output))
		s.metrics.RowsDropped.WithLabelValues("enrich", "invalid_timestamp").Add(float64(report.Dropped))
	}
	s.log.Info("enrichment completed", zap.Int("rows", report.Output))
	return enriched, report, nil
}
