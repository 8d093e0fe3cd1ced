package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, 5*time.Minute, cfg.BalanceCacheTTL)
	assert.Equal(t, 0.10, cfg.Insights.TrendMargin)
	assert.Equal(t, 90, cfg.Insights.WindowDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("TREND_MARGIN", "0.25")
	t.Setenv("BALANCE_WINDOW_DAYS", "30")
	t.Setenv("OUTBOX_BATCH_SIZE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 0.25, cfg.Insights.TrendMargin)
	assert.Equal(t, 30, cfg.Insights.WindowDays)
	assert.Equal(t, 10, cfg.OutboxBatchSize)
}

func TestLoadInsightThresholds_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	content := []byte("trend_margin: 0.2\neasy_completion_rate: 75\nhard_completion_rate: 25\nwindow_days: 60\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	thresholds, err := LoadInsightThresholds(path)
	require.NoError(t, err)

	assert.Equal(t, 0.2, thresholds.TrendMargin)
	assert.Equal(t, 75.0, thresholds.EasyCompletionRate)
	assert.Equal(t, 25.0, thresholds.HardCompletionRate)
	assert.Equal(t, 60, thresholds.WindowDays)
}

func TestLoadInsightThresholds_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trend_margin: 0.5\n"), 0o600))

	thresholds, err := LoadInsightThresholds(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, thresholds.TrendMargin)
	assert.Equal(t, 80.0, thresholds.EasyCompletionRate)
	assert.Equal(t, 90, thresholds.WindowDays)
}

func TestLoadInsightThresholds_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("easy_completion_rate: 20\nhard_completion_rate: 40\n"), 0o600))

	_, err := LoadInsightThresholds(path)
	assert.Error(t, err)
}

func TestLoadInsightThresholds_MissingFile(t *testing.T) {
	_, err := LoadInsightThresholds(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
