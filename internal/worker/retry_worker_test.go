package worker

import (
	"testing"
	"time"

	"github.com/dustin/marketplace-backend/config"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryWorker(t *testing.T) {
	mockFunc := func() error { return nil }
	logCfg := &config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-worker",
	}
	log, err := logger.NewLogger(logCfg)
	require.NoError(t, err)

	workerCfg := config.WorkerConfig{
		RetryInterval: "5m",
	}

	worker, err := NewRetryWorker(&workerCfg, "enrichment-retry", mockFunc, log)

	assert.NoError(t, err)
	assert.NotNil(t, worker)
	assert.Equal(t, "enrichment-retry", worker.name)
	assert.NotNil(t, worker.cron)
	assert.NotNil(t, worker.retryFunc)
	assert.Equal(t, 5*time.Minute, worker.retryInterval)
	assert.NotNil(t, worker.logger)
}

func TestRetryWorker_Start_Stop(t *testing.T) {
	mockFunc := func() error { return nil }
	logCfg := &config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-worker",
	}
	log, err := logger.NewLogger(logCfg)
	require.NoError(t, err)

	workerCfg := config.WorkerConfig{RetryInterval: "5m"}
	worker, err := NewRetryWorker(&workerCfg, "enrichment-retry", mockFunc, log)
	require.NoError(t, err)

	// Start the worker
	err = worker.Start()
	assert.NoError(t, err)

	// Verify it's running
	assert.True(t, worker.IsRunning())

	// Stop the worker
	err = worker.Stop()
	assert.NoError(t, err)

	// Verify it's stopped
	assert.False(t, worker.IsRunning())
}

func TestRetryWorker_InvalidConfig(t *testing.T) {
	mockFunc := func() error { return nil }
	logCfg := &config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-worker",
	}
	log, err := logger.NewLogger(logCfg)
	require.NoError(t, err)

	// Test invalid retry interval
	workerCfg := config.WorkerConfig{
		RetryInterval: "invalid-duration",
	}

	_, err = NewRetryWorker(&workerCfg, "enrichment-retry", mockFunc, log)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid retry interval")
}

func TestRetryWorker_EmptyConfig(t *testing.T) {
	mockFunc := func() error { return nil }
	logCfg := &config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-worker",
	}
	log, err := logger.NewLogger(logCfg)
	require.NoError(t, err)

	// Test empty config uses defaults
	workerCfg := config.WorkerConfig{
		RetryInterval: "",
	}

	worker, err := NewRetryWorker(&workerCfg, "enrichment-retry", mockFunc, log)

	assert.NoError(t, err)
	assert.NotNil(t, worker)
	assert.Equal(t, 5*time.Minute, worker.retryInterval)
}

func TestDurationToCronExpression(t *testing.T) {
	logCfg := &config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-worker",
	}
	log, err := logger.NewLogger(logCfg)
	require.NoError(t, err)

	worker, err := NewRetryWorker(nil, "enrichment-retry", func() error { return nil }, log)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"Minutes under an hour", 10 * time.Minute, "*/10 * * * *"},
		{"Whole hours", 2 * time.Hour, "0 */2 * * *"},
		{"Unsupported falls back", 30 * time.Second, "*/5 * * * *"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, worker.durationToCronExpression(tc.duration))
		})
	}
}
