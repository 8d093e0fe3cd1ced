package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
)

// MetricDTO is the read model for a goal metric.
type MetricDTO struct {
	ID      uuid.UUID
	Name    string
	Current float64
	Target  float64
	Unit    string
}

// GoalProgressDTO is the read model for a goal with its derived progress.
type GoalProgressDTO struct {
	ID             uuid.UUID
	Name           string
	Mode           domain.ProgressMode
	Status         domain.GoalStatus
	Progress       int
	StepsCompleted int
	StepsTotal     int
	Metrics        []MetricDTO
	AspirationID   uuid.UUID
}

// GoalProgressQuery fetches one goal's progress, or every goal of a user
// when GoalID is nil.
type GoalProgressQuery struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// GoalProgressHandler handles the GoalProgressQuery.
type GoalProgressHandler struct {
	goalRepo domain.Repository
	steps    domain.StepCounter
}

// NewGoalProgressHandler creates a new GoalProgressHandler.
func NewGoalProgressHandler(goalRepo domain.Repository, steps domain.StepCounter) *GoalProgressHandler {
	return &GoalProgressHandler{goalRepo: goalRepo, steps: steps}
}

// Handle executes the GoalProgressQuery.
func (h *GoalProgressHandler) Handle(ctx context.Context, query GoalProgressQuery) ([]GoalProgressDTO, error) {
	var goals []*domain.Goal
	if query.GoalID != uuid.Nil {
		goal, err := h.goalRepo.FindByID(ctx, query.GoalID)
		if err != nil {
			return nil, err
		}
		goals = []*domain.Goal{goal}
	} else {
		var err error
		goals, err = h.goalRepo.FindByUserID(ctx, query.UserID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]GoalProgressDTO, 0, len(goals))
	for _, g := range goals {
		counts, err := h.steps.CountForGoal(ctx, g.ID())
		if err != nil {
			return nil, err
		}

		dto := GoalProgressDTO{
			ID:             g.ID(),
			Name:           g.Name(),
			Mode:           g.Mode(),
			Status:         g.Status(),
			Progress:       g.Progress(counts),
			StepsCompleted: counts.Completed,
			StepsTotal:     counts.Total,
			AspirationID:   g.AspirationID(),
		}
		for _, m := range g.Metrics() {
			dto.Metrics = append(dto.Metrics, MetricDTO{
				ID:      m.ID(),
				Name:    m.Name(),
				Current: m.Current(),
				Target:  m.Target(),
				Unit:    m.Unit(),
			})
		}
		out = append(out, dto)
	}
	return out, nil
}
