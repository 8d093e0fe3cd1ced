package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// GetHabitQuery fetches a single habit by ID.
type GetHabitQuery struct {
	HabitID uuid.UUID
	Day     dates.Day
}

// GetHabitHandler handles the GetHabitQuery.
type GetHabitHandler struct {
	habitRepo domain.Repository
}

// NewGetHabitHandler creates a new GetHabitHandler.
func NewGetHabitHandler(habitRepo domain.Repository) *GetHabitHandler {
	return &GetHabitHandler{habitRepo: habitRepo}
}

// Handle executes the GetHabitQuery.
func (h *GetHabitHandler) Handle(ctx context.Context, query GetHabitQuery) (*HabitDTO, error) {
	habit, err := h.habitRepo.FindByID(ctx, query.HabitID)
	if err != nil {
		return nil, err
	}

	day := query.Day
	if day.IsZero() {
		day = dates.Today()
	}

	dtos := toHabitDTOs([]*domain.Habit{habit}, day)
	return &dtos[0], nil
}
