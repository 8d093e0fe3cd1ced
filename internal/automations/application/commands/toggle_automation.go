package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// ToggleAutomationCommand pauses or resumes an automation.
type ToggleAutomationCommand struct {
	UserID       uuid.UUID
	AutomationID uuid.UUID
	Pause        bool
}

// ToggleAutomationHandler handles the ToggleAutomationCommand.
type ToggleAutomationHandler struct {
	automationRepo domain.Repository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
}

// NewToggleAutomationHandler creates a new ToggleAutomationHandler.
func NewToggleAutomationHandler(automationRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ToggleAutomationHandler {
	return &ToggleAutomationHandler{
		automationRepo: automationRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
	}
}

// Handle executes the ToggleAutomationCommand.
func (h *ToggleAutomationHandler) Handle(ctx context.Context, cmd ToggleAutomationCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		automation, err := h.automationRepo.FindByID(txCtx, cmd.AutomationID)
		if err != nil {
			return err
		}

		if cmd.Pause {
			automation.Deactivate()
		} else {
			automation.Activate()
		}

		if err := h.automationRepo.Save(txCtx, automation); err != nil {
			return err
		}
		return outbox.StageEvents(txCtx, h.outboxRepo, automation,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
}
