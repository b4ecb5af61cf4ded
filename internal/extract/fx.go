package extract

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/retailworks/retailpulse/internal/config"
)

var Module = fx.Module("extract",
	fx.Provide(NewSource),
)

// NewSource wires the provider selected by configuration. Source selection
// has no effect on transformation logic downstream.
func NewSource(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (Source, error) {
	switch cfg.Source {
	case config.SourceLocal:
		return NewLocalSource(cfg.LocalFolder, log), nil
	case config.SourceGCS:
		src, err := NewBucketSource(context.Background(), cfg.GCSBucket, cfg.GCSPrefix, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return src.Close() },
		})
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Source)
	}
}
