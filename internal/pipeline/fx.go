package pipeline

import (
	"go.uber.org/fx"

	"github.com/retailworks/retailpulse/internal/pipeline/repository"
	"github.com/retailworks/retailpulse/internal/pipeline/service"
)

var Module = fx.Module("pipeline.service",
	fx.Provide(
		repository.ProvideLedger,
		service.New,
	),
)
