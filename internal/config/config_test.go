package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceLocal, cfg.Source)
	assert.Equal(t, "data", cfg.LocalFolder)
	assert.Equal(t, ParsePolicyReject, cfg.ParsePolicy)
	assert.Equal(t, 24*time.Hour, cfg.ScheduleInterval)
	assert.Equal(t, 90, cfg.RunRetentionDays)
	assert.Equal(t, []float64{100, 500}, cfg.SalesBucketBounds)
	assert.Equal(t, []string{"Low", "Medium", "High"}, cfg.SalesBucketLabels)
	assert.Len(t, cfg.PerformanceLabels, len(cfg.PerformanceBounds)+1)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RETAILPULSE_SOURCE", "GCS")
	t.Setenv("RETAILPULSE_GCS_BUCKET", "feeds")
	t.Setenv("RETAILPULSE_PARSE_POLICY", "quarantine")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceGCS, cfg.Source)
	assert.Equal(t, "feeds", cfg.GCSBucket)
	assert.Equal(t, ParsePolicyQuarantine, cfg.ParsePolicy)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("RETAILPULSE_SOURCE", "ftp")

	_, err := Load()
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestLoadRejectsUnknownParsePolicy(t *testing.T) {
	t.Setenv("RETAILPULSE_PARSE_POLICY", "ignore")

	_, err := Load()
	assert.ErrorIs(t, err, ErrUnknownParsePolicy)
}
