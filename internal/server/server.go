// Package server exposes the operational HTTP surface: health, Prometheus
// metrics, the run ledger, and a manual run trigger.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/retailworks/retailpulse/internal/config"
	pipelinedomain "github.com/retailworks/retailpulse/internal/pipeline/domain"
)

type Params struct {
	fx.In

	Cfg      *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Pipeline pipelinedomain.Service
}

type Server struct {
	log      *zap.Logger
	registry *prometheus.Registry
	pipeline pipelinedomain.Service
}

func New(p Params) *Server {
	return &Server{
		log:      p.Log.Named("server"),
		registry: p.Registry,
		pipeline: p.Pipeline,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.Healthz)

	// The gorm plugin registers its collectors with the default registry,
	// so expose both gatherers on one endpoint.
	gatherers := prometheus.Gatherers{s.registry, prometheus.DefaultGatherer}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.GET("/runs", s.ListRuns)
		v1.POST("/runs", s.TriggerRun)
	}
	return router
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
