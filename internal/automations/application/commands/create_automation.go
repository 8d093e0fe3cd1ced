package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// CreateAutomationCommand creates a periodic accrual tracker.
type CreateAutomationCommand struct {
	UserID       uuid.UUID
	Name         string
	TargetValue  float64
	UpdateValue  float64
	RuleKind     recurrence.Kind
	Weekdays     string
	DayOfMonth   int
	AnchorDay    dates.Day
	InitialValue float64
}

// CreateAutomationHandler handles the CreateAutomationCommand.
type CreateAutomationHandler struct {
	automationRepo domain.Repository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
}

// NewCreateAutomationHandler creates a new CreateAutomationHandler.
func NewCreateAutomationHandler(automationRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateAutomationHandler {
	return &CreateAutomationHandler{
		automationRepo: automationRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
	}
}

// Handle executes the CreateAutomationCommand. The rule is validated
// strictly before anything is written.
func (h *CreateAutomationHandler) Handle(ctx context.Context, cmd CreateAutomationCommand) (*domain.Automation, error) {
	weekdays, err := recurrence.ParseWeekdays(cmd.Weekdays)
	if err != nil {
		return nil, err
	}
	anchor := cmd.AnchorDay
	if anchor.IsZero() {
		anchor = dates.Today()
	}
	rule, err := recurrence.NewRule(cmd.RuleKind, weekdays, cmd.DayOfMonth, anchor)
	if err != nil {
		return nil, err
	}

	automation, err := domain.NewAutomation(cmd.UserID, cmd.Name, cmd.TargetValue, cmd.UpdateValue, rule)
	if err != nil {
		return nil, err
	}
	if cmd.InitialValue != 0 {
		automation.SetCurrentValue(cmd.InitialValue)
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.automationRepo.Save(txCtx, automation); err != nil {
			return err
		}
		return outbox.StageEvents(txCtx, h.outboxRepo, automation,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
	if err != nil {
		return nil, err
	}

	return automation, nil
}
