package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// UpdateProgressCommand records progress against a goal. Exactly one of
// ManualProgress or MetricID should be set, matching the goal's mode.
type UpdateProgressCommand struct {
	UserID         uuid.UUID
	GoalID         uuid.UUID
	ManualProgress *int
	MetricID       uuid.UUID
	MetricValue    float64
}

// UpdateProgressResult reports the derived percentage after the update.
type UpdateProgressResult struct {
	Progress int
}

// UpdateProgressHandler handles the UpdateProgressCommand.
type UpdateProgressHandler struct {
	goalRepo   domain.Repository
	steps      domain.StepCounter
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateProgressHandler creates a new UpdateProgressHandler.
func NewUpdateProgressHandler(goalRepo domain.Repository, steps domain.StepCounter, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateProgressHandler {
	return &UpdateProgressHandler{
		goalRepo:   goalRepo,
		steps:      steps,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateProgressCommand.
func (h *UpdateProgressHandler) Handle(ctx context.Context, cmd UpdateProgressCommand) (*UpdateProgressResult, error) {
	var result *UpdateProgressResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.goalRepo.FindByID(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}

		counts, err := h.steps.CountForGoal(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}

		switch {
		case cmd.ManualProgress != nil:
			if err := goal.SetManualProgress(*cmd.ManualProgress); err != nil {
				return err
			}
		case cmd.MetricID != uuid.Nil:
			if err := goal.RecordMetric(cmd.MetricID, cmd.MetricValue, counts); err != nil {
				return err
			}
		}

		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}
		if err := outbox.StageEvents(txCtx, h.outboxRepo, goal,
			sharedApplication.NewEventMetadata(cmd.UserID)); err != nil {
			return err
		}

		result = &UpdateProgressResult{Progress: goal.Progress(counts)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
