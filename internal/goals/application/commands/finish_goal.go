package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// FinishGoalCommand completes, abandons, or reopens a goal.
type FinishGoalCommand struct {
	UserID  uuid.UUID
	GoalID  uuid.UUID
	Abandon bool
	Reopen  bool
}

// FinishGoalHandler handles the FinishGoalCommand.
type FinishGoalHandler struct {
	goalRepo   domain.Repository
	steps      domain.StepCounter
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewFinishGoalHandler creates a new FinishGoalHandler.
func NewFinishGoalHandler(goalRepo domain.Repository, steps domain.StepCounter, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *FinishGoalHandler {
	return &FinishGoalHandler{
		goalRepo:   goalRepo,
		steps:      steps,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the FinishGoalCommand.
func (h *FinishGoalHandler) Handle(ctx context.Context, cmd FinishGoalCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.goalRepo.FindByID(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}

		switch {
		case cmd.Reopen:
			goal.Reopen()
		case cmd.Abandon:
			if err := goal.Abandon(); err != nil {
				return err
			}
		default:
			counts, err := h.steps.CountForGoal(txCtx, cmd.GoalID)
			if err != nil {
				return err
			}
			if err := goal.Complete(counts); err != nil {
				return err
			}
		}

		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}
		return outbox.StageEvents(txCtx, h.outboxRepo, goal,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
}
