package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// CompleteStepCommand marks a step done (or reverts it). A completed step
// keeps its place in the day's plan so finished work stays visible.
type CompleteStepCommand struct {
	UserID uuid.UUID
	StepID uuid.UUID
	Revoke bool
}

// CompleteStepResult reports the completion outcome.
type CompleteStepResult struct {
	XPAwarded int
	GoalID    uuid.UUID
}

// CompleteStepHandler handles the CompleteStepCommand.
type CompleteStepHandler struct {
	stepRepo   domain.StepRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCompleteStepHandler creates a new CompleteStepHandler.
func NewCompleteStepHandler(stepRepo domain.StepRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CompleteStepHandler {
	return &CompleteStepHandler{
		stepRepo:   stepRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CompleteStepCommand.
func (h *CompleteStepHandler) Handle(ctx context.Context, cmd CompleteStepCommand) (*CompleteStepResult, error) {
	var result *CompleteStepResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		step, err := h.stepRepo.FindByID(txCtx, cmd.StepID)
		if err != nil {
			return err
		}

		if cmd.Revoke {
			err = step.Uncomplete()
		} else {
			err = step.Complete(time.Now())
		}
		if err != nil {
			return err
		}

		if err := h.stepRepo.Save(txCtx, step); err != nil {
			return err
		}

		if err := outbox.StageEvents(txCtx, h.outboxRepo, step,
			sharedApplication.NewEventMetadata(cmd.UserID)); err != nil {
			return err
		}

		xp := step.XP()
		if cmd.Revoke {
			xp = 0
		}
		result = &CompleteStepResult{XPAwarded: xp, GoalID: step.GoalID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
