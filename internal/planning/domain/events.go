package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

const (
	planAggregateType = "DailyPlan"
	stepAggregateType = "DailyStep"
)

// PlanCreated is emitted when a plan is first created for a day.
type PlanCreated struct {
	sharedDomain.BaseEvent
	PlanID uuid.UUID `json:"plan_id"`
	UserID uuid.UUID `json:"user_id"`
	Day    string    `json:"day"`
}

// NewPlanCreated creates a PlanCreated event.
func NewPlanCreated(p *DailyPlan) *PlanCreated {
	return &PlanCreated{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), planAggregateType, "planning.plan.created"),
		PlanID:    p.ID(),
		UserID:    p.UserID(),
		Day:       p.Day().String(),
	}
}

// PlanItemAdded is emitted when an item joins the plan.
type PlanItemAdded struct {
	sharedDomain.BaseEvent
	PlanID uuid.UUID `json:"plan_id"`
	UserID uuid.UUID `json:"user_id"`
	ItemID uuid.UUID `json:"item_id"`
	Day    string    `json:"day"`
}

// NewPlanItemAdded creates a PlanItemAdded event.
func NewPlanItemAdded(p *DailyPlan, itemID uuid.UUID) *PlanItemAdded {
	return &PlanItemAdded{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), planAggregateType, "planning.plan.item_added"),
		PlanID:    p.ID(),
		UserID:    p.UserID(),
		ItemID:    itemID,
		Day:       p.Day().String(),
	}
}

// PlanItemRemoved is emitted when an item leaves the plan.
type PlanItemRemoved struct {
	sharedDomain.BaseEvent
	PlanID uuid.UUID `json:"plan_id"`
	UserID uuid.UUID `json:"user_id"`
	ItemID uuid.UUID `json:"item_id"`
	Day    string    `json:"day"`
}

// NewPlanItemRemoved creates a PlanItemRemoved event.
func NewPlanItemRemoved(p *DailyPlan, itemID uuid.UUID) *PlanItemRemoved {
	return &PlanItemRemoved{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), planAggregateType, "planning.plan.item_removed"),
		PlanID:    p.ID(),
		UserID:    p.UserID(),
		ItemID:    itemID,
		Day:       p.Day().String(),
	}
}

// PlanReordered is emitted when the item order changes.
type PlanReordered struct {
	sharedDomain.BaseEvent
	PlanID uuid.UUID   `json:"plan_id"`
	UserID uuid.UUID   `json:"user_id"`
	Items  []uuid.UUID `json:"items"`
}

// NewPlanReordered creates a PlanReordered event.
func NewPlanReordered(p *DailyPlan) *PlanReordered {
	return &PlanReordered{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), planAggregateType, "planning.plan.reordered"),
		PlanID:    p.ID(),
		UserID:    p.UserID(),
		Items:     p.Items(),
	}
}

// StepCreated is emitted when a step is created.
type StepCreated struct {
	sharedDomain.BaseEvent
	StepID uuid.UUID `json:"step_id"`
	UserID uuid.UUID `json:"user_id"`
	GoalID uuid.UUID `json:"goal_id,omitempty"`
	Title  string    `json:"title"`
	Day    string    `json:"day"`
}

// NewStepCreated creates a StepCreated event.
func NewStepCreated(s *DailyStep) *StepCreated {
	return &StepCreated{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), stepAggregateType, "planning.step.created"),
		StepID:    s.ID(),
		UserID:    s.UserID(),
		GoalID:    s.GoalID(),
		Title:     s.Title(),
		Day:       s.Day().String(),
	}
}

// StepCompleted is emitted when a step is marked done.
type StepCompleted struct {
	sharedDomain.BaseEvent
	StepID    uuid.UUID `json:"step_id"`
	UserID    uuid.UUID `json:"user_id"`
	GoalID    uuid.UUID `json:"goal_id,omitempty"`
	Day       string    `json:"day"`
	XPAwarded int       `json:"xp_awarded"`
}

// NewStepCompleted creates a StepCompleted event.
func NewStepCompleted(s *DailyStep) *StepCompleted {
	return &StepCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), stepAggregateType, "planning.step.completed"),
		StepID:    s.ID(),
		UserID:    s.UserID(),
		GoalID:    s.GoalID(),
		Day:       s.Day().String(),
		XPAwarded: s.XP(),
	}
}

// StepCompletionRevoked is emitted when a completion is reverted.
type StepCompletionRevoked struct {
	sharedDomain.BaseEvent
	StepID uuid.UUID `json:"step_id"`
	UserID uuid.UUID `json:"user_id"`
	GoalID uuid.UUID `json:"goal_id,omitempty"`
}

// NewStepCompletionRevoked creates a StepCompletionRevoked event.
func NewStepCompletionRevoked(s *DailyStep) *StepCompletionRevoked {
	return &StepCompletionRevoked{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), stepAggregateType, "planning.step.completion_revoked"),
		StepID:    s.ID(),
		UserID:    s.UserID(),
		GoalID:    s.GoalID(),
	}
}

// StepRescheduled is emitted when a step moves to another day.
type StepRescheduled struct {
	sharedDomain.BaseEvent
	StepID  uuid.UUID `json:"step_id"`
	UserID  uuid.UUID `json:"user_id"`
	FromDay string    `json:"from_day"`
	ToDay   string    `json:"to_day"`
}

// NewStepRescheduled creates a StepRescheduled event.
func NewStepRescheduled(s *DailyStep, from dates.Day) *StepRescheduled {
	return &StepRescheduled{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), stepAggregateType, "planning.step.rescheduled"),
		StepID:    s.ID(),
		UserID:    s.UserID(),
		FromDay:   from.String(),
		ToDay:     s.Day().String(),
	}
}
