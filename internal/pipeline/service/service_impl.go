package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	analyticsdomain "github.com/retailworks/retailpulse/internal/analytics/domain"
	cleansedomain "github.com/retailworks/retailpulse/internal/cleanse/domain"
	"github.com/retailworks/retailpulse/internal/clock"
	"github.com/retailworks/retailpulse/internal/extract"
	"github.com/retailworks/retailpulse/internal/observability"
	"github.com/retailworks/retailpulse/internal/pipeline/domain"
	"github.com/retailworks/retailpulse/internal/record"
	transformdomain "github.com/retailworks/retailpulse/internal/transform/domain"
	warehousedomain "github.com/retailworks/retailpulse/internal/warehouse/domain"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Node      *snowflake.Node
	Source    extract.Source
	Cleanse   cleansedomain.Service
	Transform transformdomain.Service
	Analytics analyticsdomain.Service
	Sink      warehousedomain.Sink
	Ledger    domain.Ledger
	Metrics   *observability.Metrics `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	node      *snowflake.Node
	source    extract.Source
	cleanse   cleansedomain.Service
	transform transformdomain.Service
	analytics analyticsdomain.Service
	sink      warehousedomain.Sink
	ledger    domain.Ledger
	metrics   *observability.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("pipeline.service"),
		clock:     p.Clock,
		node:      p.Node,
		source:    p.Source,
		cleanse:   p.Cleanse,
		transform: p.Transform,
		analytics: p.Analytics,
		sink:      p.Sink,
		ledger:    p.Ledger,
		metrics:   p.Metrics,
	}
}

// Execute runs one full load. The ledger row is written before any stage and
// finalized whether the run succeeds or fails.
func (s *Service) Execute(ctx context.Context) (*warehousedomain.PipelineRun, error) {
	run := &warehousedomain.PipelineRun{
		ID:        s.node.Generate(),
		Status:    warehousedomain.RunStatusRunning,
		StartedAt: s.clock.Now().UTC(),
	}
	if err := s.ledger.Begin(ctx, run); err != nil {
		return nil, err
	}
	s.log.Info("pipeline run started", zap.Int64("run_id", int64(run.ID)))

	runErr := s.execute(ctx, run)

	finished := s.clock.Now().UTC()
	run.FinishedAt = &finished
	if runErr != nil {
		run.Status = warehousedomain.RunStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = warehousedomain.RunStatusSucceeded
	}
	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues(run.Status).Inc()
	}
	if err := s.ledger.Finish(ctx, run); err != nil {
		s.log.Error("finalize run ledger", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}

	if runErr != nil {
		s.log.Error("pipeline run failed",
			zap.Int64("run_id", int64(run.ID)),
			zap.Error(runErr))
		return run, runErr
	}
	s.log.Info("pipeline run succeeded",
		zap.Int64("run_id", int64(run.ID)),
		zap.Int("enriched_rows", run.EnrichedRows),
		zap.Duration("took", finished.Sub(run.StartedAt)))
	return run, nil
}

func (s *Service) Runs(ctx context.Context, limit int) ([]warehousedomain.PipelineRun, error) {
	return s.ledger.Recent(ctx, limit)
}

func (s *Service) execute(ctx context.Context, run *warehousedomain.PipelineRun) error {
	var salesBatch, productBatch record.RawBatch
	err := s.stage("extract", func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			batch, err := s.source.Fetch(gctx, record.KindSales)
			salesBatch = batch
			return err
		})
		g.Go(func() error {
			batch, err := s.source.Fetch(gctx, record.KindProduct)
			productBatch = batch
			return err
		})
		return g.Wait()
	})
	if err != nil {
		return err
	}
	run.SalesIn = len(salesBatch.Rows)
	run.ProductsIn = len(productBatch.Rows)

	var (
		sales    []record.SalesRecord
		products []record.ProductRecord
	)
	err = s.stage("cleanse", func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			out, _, err := s.cleanse.Sales(gctx, salesBatch)
			sales = out
			return err
		})
		g.Go(func() error {
			out, _, err := s.cleanse.Products(gctx, productBatch)
			products = out
			return err
		})
		return g.Wait()
	})
	if err != nil {
		return err
	}
	run.CleansedSales = len(sales)
	run.CleansedProducts = len(products)

	var merged []record.MergedRecord
	err = s.stage("merge", func() error {
		out, report, err := s.transform.Merge(ctx, sales, products)
		merged = out
		run.MergedRows = report.Matched
		run.DroppedJoins = report.DroppedUnmatched
		return err
	})
	if err != nil {
		return err
	}

	var enriched []record.EnrichedRecord
	err = s.stage("enrich", func() error {
		out, report, err := s.transform.Enrich(ctx, merged)
		enriched = out
		run.EnrichedRows = report.Output
		return err
	})
	if err != nil {
		return err
	}

	var report *analyticsdomain.Report
	err = s.stage("aggregate", func() error {
		out, err := s.analytics.Run(ctx, enriched)
		report = out
		return err
	})
	if err != nil {
		return err
	}

	return s.stage("load", func() error {
		return s.load(ctx, sales, products, merged, enriched, report)
	})
}

// load persists the three layers in order so a failure never leaves a
// presentation table newer than its business-layer inputs.
func (s *Service) load(
	ctx context.Context,
	sales []record.SalesRecord,
	products []record.ProductRecord,
	merged []record.MergedRecord,
	enriched []record.EnrichedRecord,
	report *analyticsdomain.Report,
) error {
	steps := []struct {
		table string
		rows  any
	}{
		{warehousedomain.TableSales, salesRows(sales)},
		{warehousedomain.TableProduct, productRows(products)},
		{warehousedomain.TableMergedSalesProducts, mergedRows(merged)},
		{warehousedomain.TableEnrichedSales, enrichedRows(enriched)},
		{warehousedomain.TableHourlyTrends, hourlyTrendRows(report.HourlyTrends)},
		{warehousedomain.TableProductPerformance, performanceRows(report.ProductPerformance)},
		{warehousedomain.TableSeasonalPatterns, seasonalRows(report.SeasonalPatterns)},
		{warehousedomain.TableRevenueConcentration, concentrationRows(report.RevenueConcentration)},
		{warehousedomain.TableOrderStatusOverTime, orderStatusRows(report.WeeklyOrderStatus)},
	}
	for _, step := range steps {
		if err := s.sink.Persist(ctx, step.table, step.rows); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if s.metrics != nil {
		s.metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.log.Error("stage failed", zap.String("stage", name), zap.Error(err))
	}
	return err
}
