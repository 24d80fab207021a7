package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/core/application/processor"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := cmd.ParseConfig(env(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerPoolSize)
	assert.Equal(t, processor.DefaultPollPeriod, cfg.PollPeriod)
	assert.Equal(t, processor.DefaultIdleMaxTokens, cfg.IdleMaxTokens)
	assert.Equal(t, services.StrategyFIFO, cfg.MatchStrategy)
	assert.False(t, cfg.DB.Enabled())
}

func TestParseConfig_Values(t *testing.T) {
	cfg, err := cmd.ParseConfig(env(map[string]string{
		"HTTP_PORT":          "9090",
		"LOG_LEVEL":          "debug",
		"WORKER_POOL_SIZE":   "8",
		"POLL_PERIOD_MS":     "20",
		"IDLE_PERIOD_MS":     "100",
		"IDLE_MAX_TOKENS":    "5",
		"IDLE_WARMUP_MS":     "0",
		"COURIER_ETA_MIN_MS": "1000",
		"COURIER_ETA_MAX_MS": "1000",
		"MATCH_STRATEGY":     "MATCHED",
		"ORDERS_PER_SECOND":  "0.5",
		"DB_HOST":            "db",
		"DB_NAME":            "fulfillment",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 8, cfg.WorkerPoolSize)
	assert.Equal(t, 20*time.Millisecond, cfg.PollPeriod)
	assert.Equal(t, 100*time.Millisecond, cfg.IdlePeriod)
	assert.Equal(t, 5, cfg.IdleMaxTokens)
	assert.Zero(t, cfg.IdleWarmUp)
	assert.Equal(t, time.Second, cfg.CourierETAMin)
	assert.Equal(t, time.Second, cfg.CourierETAMax)
	assert.Equal(t, services.StrategyMatched, cfg.MatchStrategy)
	assert.InDelta(t, 0.5, cfg.OrdersPerSecond, 1e-9)
	assert.True(t, cfg.DB.Enabled())
}

func TestParseConfig_ReportsEveryMalformedValue(t *testing.T) {
	_, err := cmd.ParseConfig(env(map[string]string{
		"WORKER_POOL_SIZE":   "many",
		"POLL_PERIOD_MS":     "fast",
		"MATCH_STRATEGY":     "random",
		"COURIER_ETA_MIN_MS": "5000",
		"COURIER_ETA_MAX_MS": "1000",
		"IDLE_MAX_TOKENS":    "0",
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	for _, key := range []string{"WORKER_POOL_SIZE", "POLL_PERIOD_MS", "strategy", "COURIER_ETA_MAX_MS", "IDLE_MAX_TOKENS"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("IDLE_MAX_TOKENS=7\n"), 0o600))
	t.Setenv("IDLE_MAX_TOKENS", "")
	require.NoError(t, os.Unsetenv("IDLE_MAX_TOKENS"))

	cfg, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.IdleMaxTokens)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
}
