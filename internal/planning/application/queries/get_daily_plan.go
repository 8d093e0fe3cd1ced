package queries

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// PlanItemDTO is one resolved entry of a daily plan.
type PlanItemDTO struct {
	ID        uuid.UUID
	Kind      domain.CandidateKind
	Title     string
	Position  int
	Completed bool
	Important bool
	Urgent    bool
}

// DailyPlanDTO is the resolved plan for a user and day.
type DailyPlanDTO struct {
	PlanID   uuid.UUID
	Day      dates.Day
	ReadOnly bool
	Items    []PlanItemDTO
}

// GetDailyPlanQuery fetches the plan for a user and day. Today is the
// reference day for the read-only flag; zero means the wall clock.
type GetDailyPlanQuery struct {
	UserID uuid.UUID
	Day    dates.Day
	Today  dates.Day
}

// GetDailyPlanHandler handles the GetDailyPlanQuery.
type GetDailyPlanHandler struct {
	planRepo domain.PlanRepository
	stepRepo domain.StepRepository
	habits   HabitDirectory
}

// NewGetDailyPlanHandler creates a new GetDailyPlanHandler.
func NewGetDailyPlanHandler(planRepo domain.PlanRepository, stepRepo domain.StepRepository, habits HabitDirectory) *GetDailyPlanHandler {
	return &GetDailyPlanHandler{
		planRepo: planRepo,
		stepRepo: stepRepo,
		habits:   habits,
	}
}

// Handle executes the GetDailyPlanQuery. A day without a stored plan
// yields an empty plan DTO rather than an error.
func (h *GetDailyPlanHandler) Handle(ctx context.Context, query GetDailyPlanQuery) (*DailyPlanDTO, error) {
	day := query.Day
	if day.IsZero() {
		day = dates.Today()
	}
	today := query.Today
	if today.IsZero() {
		today = dates.Today()
	}

	plan, err := h.planRepo.FindByUserAndDay(ctx, query.UserID, day)
	if errors.Is(err, domain.ErrPlanNotFound) {
		return &DailyPlanDTO{Day: day, ReadOnly: day.Before(today)}, nil
	}
	if err != nil {
		return nil, err
	}

	itemIDs := plan.Items()

	steps, err := h.stepRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	stepsByID := make(map[uuid.UUID]*domain.DailyStep, len(steps))
	for _, s := range steps {
		stepsByID[s.ID()] = s
	}

	var habitIDs []uuid.UUID
	for _, id := range itemIDs {
		if _, ok := stepsByID[id]; !ok {
			habitIDs = append(habitIDs, id)
		}
	}
	habitsByID := map[uuid.UUID]domain.HabitCandidate{}
	if len(habitIDs) > 0 {
		habitsByID, err = h.habits.HabitsByID(ctx, habitIDs, day)
		if err != nil {
			return nil, err
		}
	}

	dto := &DailyPlanDTO{
		PlanID:   plan.ID(),
		Day:      day,
		ReadOnly: plan.IsReadOnlyOn(today),
	}
	for pos, id := range itemIDs {
		if s, ok := stepsByID[id]; ok {
			dto.Items = append(dto.Items, PlanItemDTO{
				ID:        id,
				Kind:      domain.CandidateStep,
				Title:     s.Title(),
				Position:  pos,
				Completed: s.IsCompleted(),
				Important: s.IsImportant(),
				Urgent:    s.IsUrgent(),
			})
			continue
		}
		if hc, ok := habitsByID[id]; ok {
			dto.Items = append(dto.Items, PlanItemDTO{
				ID:        id,
				Kind:      domain.CandidateHabit,
				Title:     hc.Title,
				Position:  pos,
				Completed: hc.Completed,
			})
		}
		// Ids that resolve to nothing (deleted habit or step) are dropped.
	}

	return dto, nil
}
