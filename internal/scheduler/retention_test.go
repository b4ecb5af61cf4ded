package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailworks/retailpulse/internal/clock"
	"github.com/retailworks/retailpulse/internal/config"
	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

func newRetentionScheduler(t *testing.T, days int) (*Scheduler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&warehousedomain.PipelineRun{}))

	s := New(Params{
		Cfg:   &config.Config{ScheduleInterval: time.Hour, RunRetentionDays: days},
		Log:   zap.NewNop(),
		Clock: clock.Fixed{At: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		DB:    db,
	})
	return s, db
}

func seedRuns(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&warehousedomain.PipelineRun{
		ID: 1, Status: warehousedomain.RunStatusSucceeded,
		StartedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Create(&warehousedomain.PipelineRun{
		ID: 2, Status: warehousedomain.RunStatusSucceeded,
		StartedAt: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
	}).Error)
}

func TestPruneRunLedgerJob(t *testing.T) {
	s, db := newRetentionScheduler(t, 90)
	seedRuns(t, db)

	require.NoError(t, s.PruneRunLedgerJob(context.Background()))

	var runs []warehousedomain.PipelineRun
	require.NoError(t, db.Find(&runs).Error)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(2), int64(runs[0].ID))
}

func TestPruneRunLedgerJobDisabled(t *testing.T) {
	s, db := newRetentionScheduler(t, 0)
	seedRuns(t, db)

	require.NoError(t, s.PruneRunLedgerJob(context.Background()))

	var count int64
	require.NoError(t, db.Model(&warehousedomain.PipelineRun{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
