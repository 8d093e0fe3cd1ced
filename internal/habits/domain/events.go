package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

const aggregateType = "Habit"

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID  uuid.UUID `json:"habit_id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	RuleKind string    `json:"rule_kind"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h *Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.created"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
		Name:      h.Name(),
		RuleKind:  string(h.Rule().Kind()),
	}
}

// HabitCompleted is emitted when a completion is recorded for a day.
type HabitCompleted struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	UserID    uuid.UUID `json:"user_id"`
	Day       string    `json:"day"`
	Streak    int       `json:"streak"`
	TotalDone int       `json:"total_done"`
	XPAwarded int       `json:"xp_awarded"`
}

// NewHabitCompleted creates a HabitCompleted event.
func NewHabitCompleted(h *Habit, day dates.Day) *HabitCompleted {
	return &HabitCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.completed"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
		Day:       day.String(),
		Streak:    h.Streak(),
		TotalDone: h.TotalDone(),
		XPAwarded: h.XPPerCompletion(),
	}
}

// HabitCompletionRevoked is emitted when a completion is removed again.
type HabitCompletionRevoked struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	UserID    uuid.UUID `json:"user_id"`
	Day       string    `json:"day"`
	XPRevoked int       `json:"xp_revoked"`
}

// NewHabitCompletionRevoked creates a HabitCompletionRevoked event.
func NewHabitCompletionRevoked(h *Habit, day dates.Day) *HabitCompletionRevoked {
	return &HabitCompletionRevoked{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.completion_revoked"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
		Day:       day.String(),
		XPRevoked: h.XPPerCompletion(),
	}
}

// HabitRuleChanged is emitted when the recurrence rule is adjusted.
type HabitRuleChanged struct {
	sharedDomain.BaseEvent
	HabitID    uuid.UUID `json:"habit_id"`
	UserID     uuid.UUID `json:"user_id"`
	RuleKind   string    `json:"rule_kind"`
	Weekdays   string    `json:"weekdays"`
	DayOfMonth int       `json:"day_of_month"`
}

// NewHabitRuleChanged creates a HabitRuleChanged event.
func NewHabitRuleChanged(h *Habit) *HabitRuleChanged {
	return &HabitRuleChanged{
		BaseEvent:  sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.rule_changed"),
		HabitID:    h.ID(),
		UserID:     h.UserID(),
		RuleKind:   string(h.Rule().Kind()),
		Weekdays:   h.Rule().Weekdays().String(),
		DayOfMonth: h.Rule().DayOfMonth(),
	}
}

// HabitArchived is emitted when a habit is archived.
type HabitArchived struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewHabitArchived creates a HabitArchived event.
func NewHabitArchived(h *Habit) *HabitArchived {
	return &HabitArchived{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.archived"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
	}
}
