// Package scheduler drives recurring warehouse loads. One process owns the
// loop; the ledger's advisory view of each run comes from the pipeline, not
// from here.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailworks/retailpulse/internal/clock"
	"github.com/retailworks/retailpulse/internal/config"
	pipelinedomain "github.com/retailworks/retailpulse/internal/pipeline/domain"
)

type Params struct {
	fx.In

	Cfg      *config.Config
	Log      *zap.Logger
	Clock    clock.Clock
	DB       *gorm.DB
	Pipeline pipelinedomain.Service
}

type Scheduler struct {
	log           *zap.Logger
	clock         clock.Clock
	db            *gorm.DB
	pipeline      pipelinedomain.Service
	interval      time.Duration
	retentionDays int
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:           p.Log.Named("scheduler"),
		clock:         p.Clock,
		db:            p.DB,
		pipeline:      p.Pipeline,
		interval:      p.Cfg.ScheduleInterval,
		retentionDays: p.Cfg.RunRetentionDays,
	}
}

// RunForever executes a load immediately, then on every interval tick until
// the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	s.log.Info("scheduler started", zap.Duration("interval", s.interval))

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.pipeline.Execute(ctx); err != nil {
		s.log.Error("scheduled run failed", zap.Error(err))
	}
	if err := s.PruneRunLedgerJob(ctx); err != nil {
		s.log.Error("ledger retention failed", zap.Error(err))
	}
}
