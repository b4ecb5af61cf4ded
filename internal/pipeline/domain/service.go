package domain

import (
	"context"

	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

// Service executes one end-to-end warehouse load: extract both feeds,
// cleanse, merge, enrich, aggregate, persist. Every run is recorded in the
// run ledger whether it succeeds or fails.
type Service interface {
	Execute(ctx context.Context) (*warehousedomain.PipelineRun, error)
	Runs(ctx context.Context, limit int) ([]warehousedomain.PipelineRun, error)
}
