package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) ListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	runs, err := s.pipeline.Runs(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	respondData(c, runs)
}

// TriggerRun executes a full load synchronously. The run is recorded in the
// ledger either way, so a failed trigger still returns the run row.
func (s *Server) TriggerRun(c *gin.Context) {
	run, err := s.pipeline.Execute(c.Request.Context())
	if err != nil {
		s.log.Error("triggered run failed", zap.Error(err))
		if run == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "data": run})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": run})
}
