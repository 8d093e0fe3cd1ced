package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	goalsDomain "github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	habitsDomain "github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	insightsQueries "github.com/reluam/pokrok.app-sub004/internal/insights/application/queries"
	insightsDomain "github.com/reluam/pokrok.app-sub004/internal/insights/domain"
	planningDomain "github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// habitDirectory adapts the habits repository to the lookup interface the
// planning queries consume. Planning never sees the habit aggregate.
type habitDirectory struct {
	habitRepo habitsDomain.Repository
}

func newHabitDirectory(habitRepo habitsDomain.Repository) *habitDirectory {
	return &habitDirectory{habitRepo: habitRepo}
}

func (d *habitDirectory) DueHabits(ctx context.Context, userID uuid.UUID, day dates.Day) ([]planningDomain.HabitCandidate, error) {
	habits, err := d.habitRepo.FindDueOn(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	candidates := make([]planningDomain.HabitCandidate, 0, len(habits))
	for _, h := range habits {
		candidates = append(candidates, planningDomain.HabitCandidate{
			ID:        h.ID(),
			Title:     h.Name(),
			Completed: h.IsCompletedOn(day),
		})
	}
	return candidates, nil
}

func (d *habitDirectory) HabitsByID(ctx context.Context, ids []uuid.UUID, day dates.Day) (map[uuid.UUID]planningDomain.HabitCandidate, error) {
	result := make(map[uuid.UUID]planningDomain.HabitCandidate, len(ids))
	for _, id := range ids {
		habit, err := d.habitRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, habitsDomain.ErrHabitNotFound) {
				continue
			}
			return nil, err
		}
		result[id] = planningDomain.HabitCandidate{
			ID:        habit.ID(),
			Title:     habit.Name(),
			Completed: habit.IsCompletedOn(day),
		}
	}
	return result, nil
}

// stepCounter adapts the planning step repository to the counter the goals
// context uses for step-based progress.
type stepCounter struct {
	stepRepo planningDomain.StepRepository
}

func newStepCounter(stepRepo planningDomain.StepRepository) *stepCounter {
	return &stepCounter{stepRepo: stepRepo}
}

func (c *stepCounter) CountForGoal(ctx context.Context, goalID uuid.UUID) (goalsDomain.StepCounts, error) {
	steps, err := c.stepRepo.FindByGoal(ctx, goalID)
	if err != nil {
		return goalsDomain.StepCounts{}, err
	}

	counts := goalsDomain.StepCounts{Total: len(steps)}
	for _, s := range steps {
		if s.IsCompleted() {
			counts.Completed++
		}
	}
	return counts, nil
}

// activitySource gathers per-aspiration habit and step activity for the
// balance query. Steps reach an aspiration through their goal.
type activitySource struct {
	habitRepo habitsDomain.Repository
	goalRepo  goalsDomain.Repository
	stepRepo  planningDomain.StepRepository
}

func newActivitySource(habitRepo habitsDomain.Repository, goalRepo goalsDomain.Repository, stepRepo planningDomain.StepRepository) *activitySource {
	return &activitySource{habitRepo: habitRepo, goalRepo: goalRepo, stepRepo: stepRepo}
}

func (s *activitySource) ActivityByAspiration(ctx context.Context, userID uuid.UUID, day dates.Day, windowDays int) (map[uuid.UUID]insightsQueries.Activity, error) {
	result := make(map[uuid.UUID]insightsQueries.Activity)

	habits, err := s.habitRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		if h.AspirationID() == uuid.Nil {
			continue
		}
		activity := result[h.AspirationID()]
		activity.Habits = append(activity.Habits, insightsDomain.HabitActivity{
			HabitID:         h.ID(),
			XPPerCompletion: h.XPPerCompletion(),
			TotalDone:       h.TotalDone(),
			Completions:     h.CompletedDays(),
			RecentDue:       countDueDays(h, day, windowDays),
		})
		result[h.AspirationID()] = activity
	}

	goals, err := s.goalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.AspirationID() == uuid.Nil {
			continue
		}
		// Register the aspiration even when its goals have no steps, so
		// the balance reports it as empty rather than missing.
		activity := result[g.AspirationID()]

		steps, err := s.stepRepo.FindByGoal(ctx, g.ID())
		if err != nil {
			return nil, err
		}
		for _, st := range steps {
			activity.Steps = append(activity.Steps, insightsDomain.StepActivity{
				StepID:    st.ID(),
				Day:       st.Day(),
				Completed: st.IsCompleted(),
				XP:        st.XP(),
			})
		}
		result[g.AspirationID()] = activity
	}

	return result, nil
}

// countDueDays walks the recent window and counts the days the habit's rule
// made it due. Window sizes stay double digit, so the walk is cheap.
func countDueDays(h *habitsDomain.Habit, day dates.Day, windowDays int) int {
	if h.IsArchived() {
		return 0
	}
	due := 0
	for d := day.AddDays(-windowDays); !d.After(day); d = d.AddDays(1) {
		if h.IsDueOn(d) {
			due++
		}
	}
	return due
}
