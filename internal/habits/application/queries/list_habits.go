package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// HabitDTO is a data transfer object for habits.
type HabitDTO struct {
	ID           uuid.UUID
	Name         string
	Description  string
	RuleKind     string
	Weekdays     string
	DayOfMonth   int
	AlwaysShow   bool
	XP           int
	Streak       int
	BestStreak   int
	TotalDone    int
	IsArchived   bool
	IsDue        bool
	IsCompleted  bool
	AspirationID uuid.UUID
	CreatedAt    time.Time
}

// ListHabitsQuery contains the parameters for listing habits.
type ListHabitsQuery struct {
	UserID          uuid.UUID
	Day             dates.Day // due/completed flags are computed for this day
	IncludeArchived bool
	OnlyDue         bool
	SortBy          string // "streak", "name", "created_at"
}

// ListHabitsHandler handles the ListHabitsQuery.
type ListHabitsHandler struct {
	habitRepo domain.Repository
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(habitRepo domain.Repository) *ListHabitsHandler {
	return &ListHabitsHandler{habitRepo: habitRepo}
}

// Handle executes the ListHabitsQuery.
func (h *ListHabitsHandler) Handle(ctx context.Context, query ListHabitsQuery) ([]HabitDTO, error) {
	day := query.Day
	if day.IsZero() {
		day = dates.Today()
	}

	var habits []*domain.Habit
	var err error

	switch {
	case query.OnlyDue:
		habits, err = h.habitRepo.FindDueOn(ctx, query.UserID, day)
	case query.IncludeArchived:
		habits, err = h.habitRepo.FindByUserID(ctx, query.UserID)
	default:
		habits, err = h.habitRepo.FindActiveByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	sortHabits(habits, query.SortBy)

	return toHabitDTOs(habits, day), nil
}

func sortHabits(habits []*domain.Habit, sortBy string) {
	switch sortBy {
	case "streak":
		sort.SliceStable(habits, func(i, j int) bool {
			return habits[i].Streak() > habits[j].Streak()
		})
	case "name":
		sort.SliceStable(habits, func(i, j int) bool {
			return habits[i].Name() < habits[j].Name()
		})
	case "created_at":
		sort.SliceStable(habits, func(i, j int) bool {
			return habits[i].CreatedAt().Before(habits[j].CreatedAt())
		})
	}
}

func toHabitDTOs(habits []*domain.Habit, day dates.Day) []HabitDTO {
	dtos := make([]HabitDTO, len(habits))
	for i, h := range habits {
		dtos[i] = HabitDTO{
			ID:           h.ID(),
			Name:         h.Name(),
			Description:  h.Description(),
			RuleKind:     string(h.Rule().Kind()),
			Weekdays:     h.Rule().Weekdays().String(),
			DayOfMonth:   h.Rule().DayOfMonth(),
			AlwaysShow:   h.AlwaysShow(),
			XP:           h.XPPerCompletion(),
			Streak:       h.Streak(),
			BestStreak:   h.BestStreak(),
			TotalDone:    h.TotalDone(),
			IsArchived:   h.IsArchived(),
			IsDue:        h.IsDueOn(day),
			IsCompleted:  h.IsCompletedOn(day),
			AspirationID: h.AspirationID(),
			CreatedAt:    h.CreatedAt(),
		}
	}
	return dtos
}
