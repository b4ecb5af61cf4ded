package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/config"
	"github.com/retailworks/retailpulse/internal/observability"
	"github.com/retailworks/retailpulse/internal/record"
	"github.com/retailworks/retailpulse/internal/tier"
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
	perf    tier.Ladder
}

func New(p Params) (domain.Service, error) {
	perf, err := tier.NewLadder(p.Cfg.PerformanceBounds, p.Cfg.PerformanceLabels)
	if err != nil {
		return nil, fmt.Errorf("performance tier ladder: %w", err)
	}
	return &Service{
		log:     p.Log.Named("analytics.service"),
		metrics: p.Metrics,
		perf:    perf,
	}, nil
}

// Run computes the five views concurrently over the same immutable batch.
// They share no state, so order between them does not matter.
func (s *Service) Run(ctx context.Context, enriched []record.EnrichedRecord) (*domain.Report, error) {
	report := &domain.Report{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.HourlyTrends = s.HourlyTrends(enriched)
		return nil
	})
	g.Go(func() error {
		report.ProductPerformance = s.ProductPerformance(enriched)
		return nil
	})
	g.Go(func() error {
		report.SeasonalPatterns = s.SeasonalPatterns(enriched)
		return nil
	})
	g.Go(func() error {
		report.RevenueConcentration = s.RevenueConcentration(enriched)
		return nil
	})
	g.Go(func() error {
		report.WeeklyOrderStatus = s.WeeklyOrderStatus(enriched)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RowsProcessed.WithLabelValues("analytics").Add(float64(len(enriched)))
	}
	s.log.Info("aggregates computed",
		zap.Int("enriched_rows", len(enriched)),
		zap.Int("hourly_trends", len(report.HourlyTrends)),
		zap.Int("product_performance", len(report.ProductPerformance)),
		zap.Int("seasonal_patterns", len(report.SeasonalPatterns)),
		zap.Int("revenue_concentration", len(report.RevenueConcentration)),
		zap.Int("weekly_order_status", len(report.WeeklyOrderStatus)),
	)
	return report, nil
}
