package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	// ErrPlanNotFound is returned when no plan exists for a user and day.
	ErrPlanNotFound = errors.New("daily plan not found")

	// ErrStepNotFound is returned when a step does not exist.
	ErrStepNotFound = errors.New("daily step not found")
)

// PlanRepository defines the interface for daily plan persistence.
type PlanRepository interface {
	// Save persists a plan (create or update).
	Save(ctx context.Context, plan *DailyPlan) error

	// FindByID finds a plan by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*DailyPlan, error)

	// FindByUserAndDay finds the plan for a user and day.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) (*DailyPlan, error)

	// FindByUserBetween finds plans inside a day range, both ends inclusive.
	FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]*DailyPlan, error)
}

// StepRepository defines the interface for daily step persistence.
type StepRepository interface {
	// Save persists a step (create or update).
	Save(ctx context.Context, step *DailyStep) error

	// FindByID finds a step by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*DailyStep, error)

	// FindByIDs finds steps by id, skipping ids that do not exist.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*DailyStep, error)

	// FindByUserAndDay finds all steps scheduled for a user and day.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*DailyStep, error)

	// FindOverdue finds unfinished steps scheduled before the given day.
	FindOverdue(ctx context.Context, userID uuid.UUID, before dates.Day) ([]*DailyStep, error)

	// FindByGoal finds all steps contributing to a goal.
	FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*DailyStep, error)

	// Delete removes a step.
	Delete(ctx context.Context, id uuid.UUID) error
}
