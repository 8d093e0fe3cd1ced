package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InsightThresholds are the tunable cutoffs for trend and grouping
// classification. They are deliberately configuration, not constants.
type InsightThresholds struct {
	// TrendMargin is the relative margin by which the recent XP rate must
	// exceed (or trail) the lifetime rate to classify as positive (negative).
	TrendMargin float64 `yaml:"trend_margin"`
	// EasyCompletionRate is the recent completion-rate percentage at or
	// above which an aspiration is grouped as "easy".
	EasyCompletionRate float64 `yaml:"easy_completion_rate"`
	// HardCompletionRate is the recent completion-rate percentage below
	// which an aspiration is grouped as "hard".
	HardCompletionRate float64 `yaml:"hard_completion_rate"`
	// WindowDays is the size of the recent-activity window.
	WindowDays int `yaml:"window_days"`
}

// DefaultInsightThresholds returns the shipped defaults.
func DefaultInsightThresholds() InsightThresholds {
	return InsightThresholds{
		TrendMargin:        0.10,
		EasyCompletionRate: 80,
		HardCompletionRate: 30,
		WindowDays:         90,
	}
}

// LoadInsightThresholds reads thresholds from a YAML file. Fields omitted
// from the file keep their defaults.
func LoadInsightThresholds(path string) (InsightThresholds, error) {
	thresholds := DefaultInsightThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		return thresholds, fmt.Errorf("read thresholds file: %w", err)
	}

	if err := yaml.Unmarshal(data, &thresholds); err != nil {
		return thresholds, fmt.Errorf("parse thresholds file: %w", err)
	}

	if err := thresholds.Validate(); err != nil {
		return thresholds, err
	}

	return thresholds, nil
}

// Validate checks threshold sanity.
func (t InsightThresholds) Validate() error {
	if t.TrendMargin < 0 {
		return fmt.Errorf("trend_margin must be >= 0, got %v", t.TrendMargin)
	}
	if t.EasyCompletionRate < 0 || t.EasyCompletionRate > 100 {
		return fmt.Errorf("easy_completion_rate must be within 0..100, got %v", t.EasyCompletionRate)
	}
	if t.HardCompletionRate < 0 || t.HardCompletionRate > 100 {
		return fmt.Errorf("hard_completion_rate must be within 0..100, got %v", t.HardCompletionRate)
	}
	if t.HardCompletionRate > t.EasyCompletionRate {
		return fmt.Errorf("hard_completion_rate (%v) must not exceed easy_completion_rate (%v)",
			t.HardCompletionRate, t.EasyCompletionRate)
	}
	if t.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %d", t.WindowDays)
	}
	return nil
}
