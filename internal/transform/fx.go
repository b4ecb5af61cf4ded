package transform

import (
	"go.uber.org/fx"

	"github.com/retailworks/retailpulse/internal/transform/service"
)

var Module = fx.Module("transform.service",
	fx.Provide(service.New),
)
