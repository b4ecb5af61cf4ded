package warehouse

import (
	"go.uber.org/fx"

	"github.com/retailworks/retailpulse/internal/warehouse/repository"
)

var Module = fx.Module("warehouse",
	fx.Provide(repository.ProvideSink),
)
