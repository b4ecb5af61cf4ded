package scheduler

import (
	"context"

	"go.uber.org/zap"

	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

// PruneRunLedgerJob deletes pipeline_runs rows older than the configured
// retention window. The ledger is an audit trail, not an archive.
func (s *Scheduler) PruneRunLedgerJob(ctx context.Context) error {
	if s.retentionDays <= 0 {
		s.log.Info("run ledger retention disabled", zap.Int("days", s.retentionDays))
		return nil
	}

	cutoff := s.clock.Now().AddDate(0, 0, -s.retentionDays)

	result := s.db.WithContext(ctx).
		Delete(&warehousedomain.PipelineRun{}, "started_at < ?", cutoff)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		s.log.Info("pruned run ledger",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", result.RowsAffected))
	}
	return nil
}
