// Package config loads Pokrok configuration from the environment and an
// optional thresholds file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database
	DatabaseURL string

	// Redis (balance read-model cache; empty disables caching)
	RedisURL      string
	BalanceCacheTTL time.Duration

	// RabbitMQ (outbox publishing; empty falls back to the in-process bus)
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxProcessorEnabled bool

	// Worker
	AccrualSweepInterval time.Duration

	// Insights thresholds; overridable by the thresholds file.
	Insights InsightThresholds

	// ThresholdsFile is an optional YAML file with insight thresholds.
	ThresholdsFile string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("POKROK_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:        getEnv("REDIS_URL", ""),
		BalanceCacheTTL: getDurationEnv("BALANCE_CACHE_TTL", 5*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:     getDurationEnv("OUTBOX_POLL_INTERVAL", 100*time.Millisecond),
		OutboxBatchSize:        getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxProcessorEnabled: getBoolEnv("OUTBOX_PROCESSOR_ENABLED", true),

		AccrualSweepInterval: getDurationEnv("ACCRUAL_SWEEP_INTERVAL", time.Hour),

		Insights: DefaultInsightThresholds(),

		ThresholdsFile: getEnv("POKROK_THRESHOLDS_FILE", ""),
	}

	cfg.Insights.TrendMargin = getFloatEnv("TREND_MARGIN", cfg.Insights.TrendMargin)
	cfg.Insights.EasyCompletionRate = getFloatEnv("EASY_COMPLETION_RATE", cfg.Insights.EasyCompletionRate)
	cfg.Insights.HardCompletionRate = getFloatEnv("HARD_COMPLETION_RATE", cfg.Insights.HardCompletionRate)
	cfg.Insights.WindowDays = getIntEnv("BALANCE_WINDOW_DAYS", cfg.Insights.WindowDays)

	if cfg.ThresholdsFile != "" {
		overrides, err := LoadInsightThresholds(cfg.ThresholdsFile)
		if err != nil {
			return nil, err
		}
		cfg.Insights = overrides
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
