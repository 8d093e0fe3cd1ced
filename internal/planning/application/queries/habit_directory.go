package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// HabitDirectory provides the habit lookups the planning queries need.
// The habits context supplies an adapter so planning does not depend on
// its aggregates.
type HabitDirectory interface {
	// DueHabits lists habits due for a user on a day, with their
	// completion state for that day.
	DueHabits(ctx context.Context, userID uuid.UUID, day dates.Day) ([]domain.HabitCandidate, error)

	// HabitsByID resolves habit ids to candidates for a day. Unknown ids
	// are absent from the result.
	HabitsByID(ctx context.Context, ids []uuid.UUID, day dates.Day) (map[uuid.UUID]domain.HabitCandidate, error)
}
