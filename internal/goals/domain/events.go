package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
)

const aggregateType = "Goal"

// GoalCreated is emitted when a goal is created.
type GoalCreated struct {
	sharedDomain.BaseEvent
	GoalID uuid.UUID `json:"goal_id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Mode   string    `json:"mode"`
}

// NewGoalCreated creates a GoalCreated event.
func NewGoalCreated(g *Goal) *GoalCreated {
	return &GoalCreated{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), aggregateType, "goals.goal.created"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Name:      g.Name(),
		Mode:      string(g.Mode()),
	}
}

// GoalProgressRecorded is emitted when a metric reading moves the goal's
// derived progress.
type GoalProgressRecorded struct {
	sharedDomain.BaseEvent
	GoalID   uuid.UUID `json:"goal_id"`
	UserID   uuid.UUID `json:"user_id"`
	Progress int       `json:"progress"`
}

// NewGoalProgressRecorded creates a GoalProgressRecorded event.
func NewGoalProgressRecorded(g *Goal, progress int) *GoalProgressRecorded {
	return &GoalProgressRecorded{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), aggregateType, "goals.goal.progress_recorded"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Progress:  progress,
	}
}

// GoalCompleted is emitted when a goal is completed.
type GoalCompleted struct {
	sharedDomain.BaseEvent
	GoalID   uuid.UUID `json:"goal_id"`
	UserID   uuid.UUID `json:"user_id"`
	Progress int       `json:"progress"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(g *Goal, progress int) *GoalCompleted {
	return &GoalCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), aggregateType, "goals.goal.completed"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Progress:  progress,
	}
}

// GoalAbandoned is emitted when a goal is abandoned.
type GoalAbandoned struct {
	sharedDomain.BaseEvent
	GoalID uuid.UUID `json:"goal_id"`
	UserID uuid.UUID `json:"user_id"`
}

// NewGoalAbandoned creates a GoalAbandoned event.
func NewGoalAbandoned(g *Goal) *GoalAbandoned {
	return &GoalAbandoned{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), aggregateType, "goals.goal.abandoned"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
	}
}
