package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
)

var (
	ErrGoalEmptyName       = errors.New("goal name cannot be empty")
	ErrGoalNotActive       = errors.New("goal is not active")
	ErrGoalInvalidProgress = errors.New("manual progress must be between 0 and 100")
	ErrGoalInvalidMode     = errors.New("unknown progress mode")
	ErrGoalUnknownMetric   = errors.New("metric does not belong to this goal")
)

// ProgressMode selects how a goal's progress percentage is derived.
type ProgressMode string

const (
	// ModeManual uses a user-entered percentage directly.
	ModeManual ProgressMode = "manual"
	// ModeSteps derives progress from completed vs total linked steps.
	ModeSteps ProgressMode = "steps"
	// ModeAmount derives progress from the goal's metric ratios.
	ModeAmount ProgressMode = "amount"
	// ModeCombined averages the step ratio and the metric ratios equally.
	ModeCombined ProgressMode = "combined"
)

// Valid reports whether the mode is one of the known modes.
func (m ProgressMode) Valid() bool {
	switch m {
	case ModeManual, ModeSteps, ModeAmount, ModeCombined:
		return true
	}
	return false
}

// GoalStatus is the goal's lifecycle state.
type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
	StatusAbandoned GoalStatus = "abandoned"
)

// StepCounts is the snapshot of linked-step totals the progress computation
// needs. The planning context owns steps; callers pass the counts in.
type StepCounts struct {
	Completed int
	Total     int
}

// Ratio is completed/total, or 0 when no steps are linked.
func (c StepCounts) Ratio() float64 {
	if c.Total <= 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

// Goal is an outcome the user works toward. Progress is derived per the
// configured mode; completing a goal freezes the percentage at that moment.
type Goal struct {
	sharedDomain.BaseAggregateRoot
	userID            uuid.UUID
	aspirationID      uuid.UUID // uuid.Nil when the goal stands alone
	name              string
	mode              ProgressMode
	manualProgress    int
	status            GoalStatus
	completedProgress *int
	metrics           []*Metric
}

// NewGoal creates an active goal with the given progress mode.
func NewGoal(userID uuid.UUID, name string, mode ProgressMode) (*Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGoalEmptyName
	}
	if !mode.Valid() {
		return nil, ErrGoalInvalidMode
	}

	goal := &Goal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		mode:              mode,
		status:            StatusActive,
	}

	goal.AddDomainEvent(NewGoalCreated(goal))

	return goal, nil
}

// Getters
func (g *Goal) UserID() uuid.UUID       { return g.userID }
func (g *Goal) AspirationID() uuid.UUID { return g.aspirationID }
func (g *Goal) Name() string            { return g.name }
func (g *Goal) Mode() ProgressMode      { return g.mode }
func (g *Goal) ManualProgress() int     { return g.manualProgress }
func (g *Goal) Status() GoalStatus      { return g.status }
func (g *Goal) IsActive() bool          { return g.status == StatusActive }

// CompletedProgress returns the percentage frozen at completion, if any.
func (g *Goal) CompletedProgress() (int, bool) {
	if g.completedProgress == nil {
		return 0, false
	}
	return *g.completedProgress, true
}

// Metrics returns the goal's metrics in attachment order.
func (g *Goal) Metrics() []*Metric {
	out := make([]*Metric, len(g.metrics))
	copy(out, g.metrics)
	return out
}

// Metric finds an attached metric by id.
func (g *Goal) Metric(id uuid.UUID) (*Metric, error) {
	for _, m := range g.metrics {
		if m.ID() == id {
			return m, nil
		}
	}
	return nil, ErrGoalUnknownMetric
}

// SetName updates the goal name.
func (g *Goal) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrGoalEmptyName
	}
	g.name = name
	g.Touch()
	return nil
}

// SetMode switches the progress mode.
func (g *Goal) SetMode(mode ProgressMode) error {
	if !mode.Valid() {
		return ErrGoalInvalidMode
	}
	g.mode = mode
	g.Touch()
	return nil
}

// AttachAspiration links the goal to an aspiration.
func (g *Goal) AttachAspiration(aspirationID uuid.UUID) {
	g.aspirationID = aspirationID
	g.Touch()
}

// SetManualProgress records a user-entered percentage.
func (g *Goal) SetManualProgress(pct int) error {
	if g.status != StatusActive {
		return ErrGoalNotActive
	}
	if pct < 0 || pct > 100 {
		return ErrGoalInvalidProgress
	}
	g.manualProgress = pct
	g.Touch()
	return nil
}

// AddMetric attaches a metric to the goal.
func (g *Goal) AddMetric(metric *Metric) error {
	if g.status != StatusActive {
		return ErrGoalNotActive
	}
	g.metrics = append(g.metrics, metric)
	g.Touch()
	return nil
}

// RecordMetric sets a metric's current value and emits a progress event.
func (g *Goal) RecordMetric(metricID uuid.UUID, value float64, steps StepCounts) error {
	if g.status != StatusActive {
		return ErrGoalNotActive
	}
	metric, err := g.Metric(metricID)
	if err != nil {
		return err
	}
	metric.SetCurrent(value)
	g.Touch()
	g.AddDomainEvent(NewGoalProgressRecorded(g, g.Progress(steps)))
	return nil
}

// RemoveMetric detaches a metric. Removing an unknown id is an error.
func (g *Goal) RemoveMetric(metricID uuid.UUID) error {
	for i, m := range g.metrics {
		if m.ID() == metricID {
			g.metrics = append(g.metrics[:i], g.metrics[i+1:]...)
			g.Touch()
			return nil
		}
	}
	return ErrGoalUnknownMetric
}

// Progress derives the 0-100 percentage for the configured mode. A completed
// goal reports its frozen snapshot regardless of current inputs.
func (g *Goal) Progress(steps StepCounts) int {
	if g.completedProgress != nil {
		return *g.completedProgress
	}

	switch g.mode {
	case ModeManual:
		return clampPct(g.manualProgress)
	case ModeSteps:
		return int(math.Round(steps.Ratio() * 100))
	case ModeAmount:
		return int(math.Round(g.avgMetricRatio() * 100))
	case ModeCombined:
		if len(g.metrics) == 0 {
			return int(math.Round(steps.Ratio() * 100))
		}
		return int(math.Round(0.5*steps.Ratio()*100 + 0.5*g.avgMetricRatio()*100))
	}
	return 0
}

// Complete marks the goal completed, freezing the current progress.
func (g *Goal) Complete(steps StepCounts) error {
	if g.status != StatusActive {
		return ErrGoalNotActive
	}
	pct := g.Progress(steps)
	g.status = StatusCompleted
	g.completedProgress = &pct
	g.Touch()
	g.AddDomainEvent(NewGoalCompleted(g, pct))
	return nil
}

// Abandon marks the goal abandoned. No progress snapshot is taken.
func (g *Goal) Abandon() error {
	if g.status != StatusActive {
		return ErrGoalNotActive
	}
	g.status = StatusAbandoned
	g.Touch()
	g.AddDomainEvent(NewGoalAbandoned(g))
	return nil
}

// Reopen returns a completed or abandoned goal to the active state and
// discards the completion snapshot.
func (g *Goal) Reopen() {
	if g.status != StatusActive {
		g.status = StatusActive
		g.completedProgress = nil
		g.Touch()
	}
}

// avgMetricRatio is the arithmetic mean of the clamped metric ratios.
func (g *Goal) avgMetricRatio() float64 {
	if len(g.metrics) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range g.metrics {
		sum += m.Ratio()
	}
	return sum / float64(len(g.metrics))
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// RehydrateGoal recreates a goal from persisted state without generating events.
func RehydrateGoal(
	id uuid.UUID,
	userID uuid.UUID,
	aspirationID uuid.UUID,
	name string,
	mode ProgressMode,
	manualProgress int,
	status GoalStatus,
	completedProgress *int,
	createdAt time.Time,
	updatedAt time.Time,
	metrics []*Metric,
) *Goal {
	return &Goal{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		aspirationID:      aspirationID,
		name:              name,
		mode:              mode,
		manualProgress:    manualProgress,
		status:            status,
		completedProgress: completedProgress,
		metrics:           metrics,
	}
}
