package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// RescheduleStepCommand moves an unfinished step to another day.
type RescheduleStepCommand struct {
	UserID uuid.UUID
	StepID uuid.UUID
	ToDay  dates.Day
}

// RescheduleStepHandler handles the RescheduleStepCommand.
type RescheduleStepHandler struct {
	stepRepo   domain.StepRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewRescheduleStepHandler creates a new RescheduleStepHandler.
func NewRescheduleStepHandler(stepRepo domain.StepRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RescheduleStepHandler {
	return &RescheduleStepHandler{
		stepRepo:   stepRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the RescheduleStepCommand.
func (h *RescheduleStepHandler) Handle(ctx context.Context, cmd RescheduleStepCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		step, err := h.stepRepo.FindByID(txCtx, cmd.StepID)
		if err != nil {
			return err
		}

		if err := step.Reschedule(cmd.ToDay); err != nil {
			return err
		}

		if err := h.stepRepo.Save(txCtx, step); err != nil {
			return err
		}

		return outbox.StageEvents(txCtx, h.outboxRepo, step,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
}
