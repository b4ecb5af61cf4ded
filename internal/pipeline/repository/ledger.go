package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailworks/retailpulse/internal/pipeline/domain"
	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

type ledger struct {
	db  *gorm.DB
	log *zap.Logger
}

func ProvideLedger(db *gorm.DB, log *zap.Logger) domain.Ledger {
	return &ledger{db: db, log: log.Named("pipeline.ledger")}
}

func (l *ledger) Begin(ctx context.Context, run *warehousedomain.PipelineRun) error {
	return l.db.WithContext(ctx).Create(run).Error
}

func (l *ledger) Finish(ctx context.Context, run *warehousedomain.PipelineRun) error {
	return l.db.WithContext(ctx).
		Model(&warehousedomain.PipelineRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]any{
			"status":            run.Status,
			"sales_in":          run.SalesIn,
			"products_in":       run.ProductsIn,
			"cleansed_sales":    run.CleansedSales,
			"cleansed_products": run.CleansedProducts,
			"merged_rows":       run.MergedRows,
			"dropped_joins":     run.DroppedJoins,
			"enriched_rows":     run.EnrichedRows,
			"error":             run.Error,
			"finished_at":       run.FinishedAt,
		}).Error
}

func (l *ledger) Recent(ctx context.Context, limit int) ([]warehousedomain.PipelineRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []warehousedomain.PipelineRun
	err := l.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
