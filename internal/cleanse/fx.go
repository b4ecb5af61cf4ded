package cleanse

import (
	"go.uber.org/fx"

	"github.com/retailworks/retailpulse/internal/cleanse/service"
)

var Module = fx.Module("cleanse.service",
	fx.Provide(service.New),
)
