package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMetricEmptyName = errors.New("metric name cannot be empty")
)

// Metric is a numeric tracker attached to a goal, e.g. "pages read" with a
// target of 300. Ratios are always clamped; a non-positive target counts as
// zero progress rather than a division fault.
type Metric struct {
	id      uuid.UUID
	name    string
	current float64
	target  float64
	unit    string
}

// NewMetric creates a metric. A non-positive target is accepted (it simply
// contributes zero progress until corrected).
func NewMetric(name string, target float64, unit string) (*Metric, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMetricEmptyName
	}
	return &Metric{
		id:     uuid.New(),
		name:   name,
		target: target,
		unit:   unit,
	}, nil
}

func (m *Metric) ID() uuid.UUID    { return m.id }
func (m *Metric) Name() string     { return m.name }
func (m *Metric) Current() float64 { return m.current }
func (m *Metric) Target() float64  { return m.target }
func (m *Metric) Unit() string     { return m.unit }

// Ratio returns current/target clamped to [0,1]. A target of zero or less
// yields 0.
func (m *Metric) Ratio() float64 {
	if m.target <= 0 {
		return 0
	}
	r := m.current / m.target
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// SetCurrent records a new reading.
func (m *Metric) SetCurrent(value float64) { m.current = value }

// Add applies a signed delta to the current reading.
func (m *Metric) Add(delta float64) { m.current += delta }

// SetTarget replaces the target value.
func (m *Metric) SetTarget(value float64) { m.target = value }

// RehydrateMetric recreates a metric from persisted state.
func RehydrateMetric(id uuid.UUID, name string, current, target float64, unit string) *Metric {
	return &Metric{
		id:      id,
		name:    name,
		current: current,
		target:  target,
		unit:    unit,
	}
}
