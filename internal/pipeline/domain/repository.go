package domain

import (
	"context"

	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

// Ledger records pipeline runs. Begin inserts a running row before any work
// starts so an aborted process still leaves evidence behind.
type Ledger interface {
	Begin(ctx context.Context, run *warehousedomain.PipelineRun) error
	Finish(ctx context.Context, run *warehousedomain.PipelineRun) error
	Recent(ctx context.Context, limit int) ([]warehousedomain.PipelineRun, error)
}
