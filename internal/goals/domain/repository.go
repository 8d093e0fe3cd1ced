package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrGoalNotFound = errors.New("goal not found")

// Repository persists goals together with their metrics.
type Repository interface {
	Save(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	FindByAspiration(ctx context.Context, aspirationID uuid.UUID) ([]*Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StepCounter supplies linked-step totals from whoever owns steps.
type StepCounter interface {
	CountForGoal(ctx context.Context, goalID uuid.UUID) (StepCounts, error)
}
