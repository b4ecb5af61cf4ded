package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/retailworks/retailpulse/internal/clock"
	"github.com/retailworks/retailpulse/internal/config"
	"github.com/retailworks/retailpulse/internal/cleanse/domain"
	"github.com/retailworks/retailpulse/internal/observability"
	"github.com/retailworks/retailpulse/internal/record"
	"github.com/retailworks/retailpulse/internal/schema"
)

// Column renames applied before validation. Legacy feeds still ship "qty"
// and "time stamp" headers.
var headerRenames = map[string]string{
	"qty":        "quantity",
	"time_stamp": "timestamp",
}

type Params struct {
	fx.In

	Cfg     *config.Config
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *observability.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	policy  string
	metrics *observability.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("cleanse.service"),
		clock:   p.Clock,
		policy:  p.Cfg.ParsePolicy,
		metrics: p.Metrics,
	}
}

func (s *Service) Sales(ctx context.Context, batch record.RawBatch) ([]record.SalesRecord, domain.Report, error) {
	report := domain.Report{Input: len(batch.Rows)}

	rows := normalizeRows(batch.Rows, func(row record.RawRow) {
		lowerIn(row, "region", "order_status")
		if row["discount"] == "" {
			row["discount"] = "0"
		}
	})

	validated, quarantined, err := s.validate(record.RawBatch{Kind: batch.Kind, Rows: rows}, schema.SalesContract(s.clock.Now()))
	if err != nil {
		return nil, report, err
	}
	report.Quarantined = quarantined

	records := make([]record.SalesRecord, 0, len(validated))
	one := decimal.NewFromInt(1)
	for _, row := range validated {
		rec := record.SalesRecord{
			SalesID:     row.Int("sales_id"),
			ProductID:   row.Int("product_id"),
			Region:      row.String("region"),
			Quantity:    row.Int("quantity"),
			Price:       row.Decimal("price"),
			Timestamp:   row.Time("timestamp"),
			Discount:    row.Decimal("discount"),
			OrderStatus: row.String("order_status"),
		}
		// Zero quantity or price carries no revenue; dropped like the
		// upstream feed's cancelled-before-capture rows.
		if rec.Quantity == 0 || rec.Price.IsZero() {
			report.DroppedNonPositive++
			continue
		}
		qty := decimal.NewFromInt(rec.Quantity)
		rec.TotalSales = rec.Price.Mul(qty).Mul(one.Sub(rec.Discount))
		records = append(records, rec)
	}
	report.Output = len(records)

	s.observe("cleanse_sales", report)
	s.log.Info("sales batch cleansed",
		zap.Int("input", report.Input),
		zap.Int("quarantined", report.Quarantined),
		zap.Int("dropped_non_positive", report.DroppedNonPositive),
		zap.Int("output", report.Output),
	)
	return records, report, nil
}

func (s *Service) Products(ctx context.Context, batch record.RawBatch) ([]record.ProductRecord, domain.Report, error) {
	report := domain.Report{Input: len(batch.Rows)}

	rows := normalizeRows(batch.Rows, func(row record.RawRow) {
		lowerIn(row, "category")
		row["brand"] = strings.ToUpper(row["brand"])
	})

	validated, quarantined, err := s.validate(record.RawBatch{Kind: batch.Kind, Rows: rows}, schema.ProductContract(s.clock.Now()))
	if err != nil {
		return nil, report, err
	}
	report.Quarantined = quarantined

	records := make([]record.ProductRecord, 0, len(validated))
	for _, row := range validated {
		rating, _ := row.Decimal("rating").Float64()
		records = append(records, record.ProductRecord{
			ProductID:  row.Int("product_id"),
			Category:   row.String("category"),
			Brand:      row.String("brand"),
			Rating:     rating,
			InStock:    row.Bool("in_stock"),
			LaunchDate: row.Time("launch_date"),
		})
	}
	report.Output = len(records)

	s.observe("cleanse_products", report)
	s.log.Info("product batch cleansed",
		zap.Int("input", report.Input),
		zap.Int("quarantined", report.Quarantined),
		zap.Int("output", report.Output),
	)
	return records, report, nil
}

// validate applies the contract and the configured policy: reject surfaces
// the full ValidationError, quarantine removes only the offending rows and
// validates the remainder.
func (s *Service) validate(batch record.RawBatch, contract schema.Contract) ([]schema.Row, int, error) {
	rows, err := schema.Validate(batch, contract)
	if err == nil {
		return rows, 0, nil
	}

	var verr *schema.ValidationError
	if !errors.As(err, &verr) || s.policy != config.ParsePolicyQuarantine {
		return nil, 0, err
	}

	offending := map[int]bool{}
	for _, idx := range verr.OffendingRows() {
		offending[idx] = true
	}
	kept := make([]record.RawRow, 0, len(batch.Rows)-len(offending))
	for i, row := range batch.Rows {
		if !offending[i] {
			kept = append(kept, row)
		}
	}
	s.log.Warn("quarantined invalid rows",
		zap.String("table", contract.Table),
		zap.Int("rows", len(offending)),
		zap.Int("violations", len(verr.Violations)),
	)

	rows, err = schema.Validate(record.RawBatch{Kind: batch.Kind, Rows: kept}, contract)
	if err != nil {
		return nil, 0, err
	}
	return rows, len(offending), nil
}

func (s *Service) observe(stage string, report domain.Report) {
	if s.metrics == nil {
		return
	}
	s.metrics.RowsProcessed.WithLabelValues(stage).Add(float64(report.Output))
	s.metrics.RowsDropped.WithLabelValues(stage, "quarantined").Add(float64(report.Quarantined))
	s.metrics.RowsDropped.WithLabelValues(stage, "non_positive").Add(float64(report.DroppedNonPositive))
}

// normalizeRows lowercases and underscores header names, applies the legacy
// renames, trims every cell, then lets the caller finish per-table cleanup.
func normalizeRows(rows []record.RawRow, finish func(record.RawRow)) []record.RawRow {
	out := make([]record.RawRow, 0, len(rows))
	for _, raw := range rows {
		row := make(record.RawRow, len(raw))
		for key, value := range raw {
			name := strings.ToLower(strings.TrimSpace(key))
			name = strings.Join(strings.Fields(name), "_")
			if renamed, ok := headerRenames[name]; ok {
				name = renamed
			}
			row[name] = strings.TrimSpace(value)
		}
		if finish != nil {
			finish(row)
		}
		out = append(out, row)
	}
	return out
}

func lowerIn(row record.RawRow, cols ...string) {
	for _, col := range cols {
		row[col] = strings.ToLower(row[col])
	}
}
