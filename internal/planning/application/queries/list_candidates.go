package queries

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// ListCandidatesQuery assembles the ranked suggestion list for a day.
type ListCandidatesQuery struct {
	UserID        uuid.UUID
	Day           dates.Day
	HideCompleted bool
	HidePlanned   bool
}

// ListCandidatesHandler handles the ListCandidatesQuery.
type ListCandidatesHandler struct {
	planRepo domain.PlanRepository
	stepRepo domain.StepRepository
	habits   HabitDirectory
}

// NewListCandidatesHandler creates a new ListCandidatesHandler.
func NewListCandidatesHandler(planRepo domain.PlanRepository, stepRepo domain.StepRepository, habits HabitDirectory) *ListCandidatesHandler {
	return &ListCandidatesHandler{
		planRepo: planRepo,
		stepRepo: stepRepo,
		habits:   habits,
	}
}

// Handle executes the ListCandidatesQuery. Candidates are due habits,
// overdue steps and the day's steps; they are suggestions only and are
// never added to the plan by this query.
func (h *ListCandidatesHandler) Handle(ctx context.Context, query ListCandidatesQuery) ([]domain.Candidate, error) {
	day := query.Day
	if day.IsZero() {
		day = dates.Today()
	}

	dueHabits, err := h.habits.DueHabits(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}

	todaySteps, err := h.stepRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}
	overdueSteps, err := h.stepRepo.FindOverdue(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}
	steps := append(overdueSteps, todaySteps...)

	plan, err := h.planRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil && !errors.Is(err, domain.ErrPlanNotFound) {
		return nil, err
	}

	candidates := domain.BuildCandidates(day, dueHabits, steps, plan)

	if !query.HideCompleted && !query.HidePlanned {
		return candidates, nil
	}

	filtered := candidates[:0]
	for _, c := range candidates {
		if query.HideCompleted && c.Completed {
			continue
		}
		if query.HidePlanned && c.Planned {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}
