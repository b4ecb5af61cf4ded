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
	"github.com/retailworks/retailpulse/internal/transform/domain"
)

func newService(t *testing.T, policy string) domain.Service {
	t.Helper()
	svc, err := New(Params{
		Cfg: &config.Config{
			ParsePolicy:       policy,
			SalesBucketBounds: []float64{100, 500},
			SalesBucketLabels: []string{"Low", "Medium", "High"},
		},
		Log: zap.NewNop(),
	})
	require.NoError(t, err)
	return svc
}

func sale(id, productID int64, total float64, ts time.Time) record.SalesRecord {
	return record.SalesRecord{
		SalesID:     id,
		ProductID:   productID,
		Region:      "west",
		Quantity:    1,
		Price:       decimal.NewFromFloat(total),
		Timestamp:   ts,
		OrderStatus: record.StatusShipped,
		TotalSales:  decimal.NewFromFloat(total),
	}
}

func product(id int64) record.ProductRecord {
	return record.ProductRecord{
		ProductID:  id,
		Category:   "electronics",
		Brand:      "ACME",
		Rating:     4.5,
		InStock:    true,
		LaunchDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestMergeRowCountMatchesResolvableSales(t *testing.T) {
	svc := newService(t, config.ParsePolicyReject)
	ts := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	sales := []record.SalesRecord{
		sale(1, 100, 50, ts),
		sale(2, 100, 75, ts),
		sale(3, 999, 10, ts), // no such product
	}
	merged, report, err := svc.Merge(context.Background(), sales, []record.ProductRecord{product(100)})
	require.NoError(t, err)

	assert.Len(t, merged, 2)
	assert.Equal(t, 1, report.DroppedUnmatched)
	assert.Equal(t, 2, report.Matched)
	// sales order preserved, product attributes inherited
	assert.Equal(t, int64(1), merged[0].SalesID)
	assert.Equal(t, int64(2), merged[1].SalesID)
	assert.InDelta(t, 4.5, merged[0].Rating, 1e-9)
	assert.Equal(t, "ACME", merged[1].Brand)
}

func TestMergeRejectsDuplicateProducts(t *testing.T) {
	svc := newService(t, config.ParsePolicyReject)
	ts := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	_, _, err := svc.Merge(context.Background(),
		[]record.SalesRecord{sale(1, 100, 50, ts)},
		[]record.ProductRecord{product(100), product(100)},
	)
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
}

func TestMergeRejectsEmptyBatches(t *testing.T) {
	svc := newService(t, config.ParsePolicyReject)
	ts := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	_, _, err := svc.Merge(context.Background(), nil, []record.ProductRecord{product(100)})
	assert.ErrorIs(t, err, domain.ErrEmptySalesBatch)

	_, _, err = svc.Merge(context.Background(), []record.SalesRecord{sale(1, 100, 50, ts)}, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyProductBatch)
}

func TestEnrichDerivedFeatures(t *testing.T) {
	svc := newService(t, config.ParsePolicyReject)
	ts := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC) // a Saturday

	merged, _, err := svc.Merge(context.Background(),
		[]record.SalesRecord{sale(1, 100, 50, ts), sale(2, 100, 200, ts), sale(3, 100, 5000, ts)},
		[]record.ProductRecord{product(100)},
	)
	require.NoError(t, err)

	enriched, report, err := svc.Enrich(context.Background(), merged)
	require.NoError(t, err)
	require.Len(t, enriched, 3)
	assert.Equal(t, 3, report.Output)

	assert.Equal(t, "2025-03", enriched[0].Month)
	assert.Equal(t, "Saturday", enriched[0].Weekday)
	assert.Equal(t, 14, enriched[0].Hour)
	assert.Equal(t, "Low", enriched[0].SalesBucket)
	assert.Equal(t, "Medium", enriched[1].SalesBucket)
	assert.Equal(t, "High", enriched[2].SalesBucket)
}

func TestEnrichBucketBoundaryInclusive(t *testing.T) {
	svc := newService(t, config.ParsePolicyReject)
	ts := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	merged, _, err := svc.Merge(context.Background(),
		[]record.SalesRecord{sale(1, 100, 100, ts), sale(2, 100, 500, ts)},
		[]record.ProductRecord{product(100)},
	)
	require.NoError(t, err)

	enriched, _, err := svc.Enrich(context.Background(), merged)
	require.NoError(t, err)
	assert.Equal(t, "Low", enriched[0].SalesBucket)
	assert.Equal(t, "Medium", enriched[1].SalesBucket)
}

func TestEnrichZeroTimestampPolicy(t *testing.T) {
	ts := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	rejecting := newService(t, config.ParsePolicyReject)
	merged := []record.MergedRecord{
		record.Merge(sale(1, 100, 50, ts), product(100)),
		record.Merge(sale(2, 100, 50, time.Time{}), product(100)),
	}

	_, _, err := rejecting.Enrich(context.Background(), merged)
	assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)

	quarantining := newService(t, config.ParsePolicyQuarantine)
	enriched, report, err := quarantining.Enrich(context.Background(), merged)
	require.NoError(t, err)
	assert.Len(t, enriched, 1)
	assert.Equal(t, 1, report.Dropped)
}

func TestEnrichDeterministic(t *testing.T) {
	svc := newService(t, config.ParsePolicyReject)
	ts := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	merged, _, err := svc.Merge(context.Background(),
		[]record.SalesRecord{sale(1, 100, 50, ts), sale(2, 100, 700, ts)},
		[]record.ProductRecord{product(100)},
	)
	require.NoError(t, err)

	first, _, err := svc.Enrich(context.Background(), merged)
	require.NoError(t, err)
	second, _, err := svc.Enrich(context.Background(), merged)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
