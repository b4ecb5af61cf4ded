package analytics

import (
	"go.uber.org/fx"

	"github.com/retailworks/retailpulse/internal/analytics/service"
)

var Module = fx.Module("analytics.service",
	fx.Provide(service.New),
)
