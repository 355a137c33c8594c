package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load yields the documented defaults when no
// environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.Broker.Addr)
	assert.Equal(t, 3, cfg.Broker.ProbeTimeoutSec)

	assert.Equal(t, "*/30 * * * *", cfg.Scheduler.StatsCron)
	assert.Equal(t, "0 4 * * *", cfg.Scheduler.HousekeepingCron)
	assert.Equal(t, "*/5 * * * *", cfg.Scheduler.HealthCheckCron)
	assert.Equal(t, 10, cfg.Scheduler.FailedThreshold)
	assert.Equal(t, 100, cfg.Scheduler.WaitingThreshold)

	assert.Equal(t, 5, cfg.Worker.RecomputeStats.Concurrency)
	assert.Equal(t, 10, cfg.Worker.SendNotification.Concurrency)
	assert.Equal(t, 2, cfg.Worker.Housekeeping.Concurrency)
	assert.Equal(t, 50, cfg.Worker.ProcessUpload.RateLimit)
	assert.Equal(t, 60, cfg.Worker.ProcessUpload.RateWindowSec)
	assert.Equal(t, 300, cfg.Worker.ProcessUpload.JobTimeoutSec)

	assert.Equal(t, "data/assets", cfg.Uploads.Dir)
	assert.Equal(t, "/assets", cfg.Uploads.BaseURL)
}

// TestLoadEnvironmentOverrides verifies that CASEFLOW_-prefixed environment
// variables take precedence over defaults.
func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CASEFLOW_SERVER_PORT", "9090")
	t.Setenv("CASEFLOW_SERVER_LOG_LEVEL", "debug")
	t.Setenv("CASEFLOW_BROKER_ADDR", "redis.internal:6380")
	t.Setenv("CASEFLOW_SCHEDULER_FAILED_THRESHOLD", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "redis.internal:6380", cfg.Broker.Addr)
	assert.Equal(t, 25, cfg.Scheduler.FailedThreshold)
}

// TestLoadValidation verifies that invalid values are rejected rather than
// silently accepted.
func TestLoadValidation(t *testing.T) {
	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("CASEFLOW_SERVER_LOG_LEVEL", "loud")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("CASEFLOW_SERVER_PORT", "70000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("zero concurrency", func(t *testing.T) {
		t.Setenv("CASEFLOW_WORKER_HOUSEKEEPING_CONCURRENCY", "0")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})
}
