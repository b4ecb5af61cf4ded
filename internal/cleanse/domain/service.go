package domain

import (
	"context"

	"github.com/retailworks/retailpulse/internal/record"
)

// Service turns raw extracted batches into validated cleansed-layer records.
// It normalizes, enforces the schema contract, and applies the configured
// quarantine policy; it never silently repairs a cell.
type Service interface {
	Sales(ctx context.Context, batch record.RawBatch) ([]record.SalesRecord, Report, error)
	Products(ctx context.Context, batch record.RawBatch) ([]record.ProductRecord, Report, error)
}

// Report is the observable outcome of cleansing one batch. Every drop is
// counted by cause; nothing disappears silently.
type Report struct {
	Input              int
	Quarantined        int
	DroppedNonPositive int
	Output             int
}
