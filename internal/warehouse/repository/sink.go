package repository

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailworks/retailpulse/internal/warehouse/domain"
)

const insertBatchSize = 500

type sink struct {
	db  *gorm.DB
	log *zap.Logger
}

func ProvideSink(db *gorm.DB, log *zap.Logger) domain.Sink {
	return &sink{db: db, log: log.Named("warehouse.sink")}
}

// Persist replaces the destination table's contents with the given rows in
/// one transaction. An empty batch still truncates: the table must reflect
// this run, not the last one.
func (s *sink) Persist(ctx context.Context, table string, rows any) error {
	value := reflect.ValueOf(rows)
	if value.Kind() != reflect.Slice {
		return fmt.Errorf("persist %s: rows must be a slice, got %T", table, rows)
	}
	count := value.Len()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
		if count == 0 {
			return nil
		}
		if err := tx.Table(table).CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("persisted batch", zap.String("table", table), zap.Int("rows", count))
	return nil
}
