package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// ErrHabitNotFound is returned when a habit does not exist.
var ErrHabitNotFound = errors.New("habit not found")

// Repository defines the interface for habit persistence.
type Repository interface {
	// Save persists a habit (create or update).
	Save(ctx context.Context, habit *Habit) error

	// FindByID finds a habit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)

	// FindByUserID finds all habits for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Habit, error)

	// FindActiveByUserID finds all non-archived habits for a user.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*Habit, error)

	// FindDueOn finds non-archived habits due on the given day for a user.
	FindDueOn(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*Habit, error)

	// Delete removes a habit and its completions.
	Delete(ctx context.Context, id uuid.UUID) error
}
