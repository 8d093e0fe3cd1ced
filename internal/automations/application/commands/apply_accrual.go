package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// ApplyAccrualCommand applies one accrual to an automation. With Force unset
// the accrual only runs when the rule makes it due on the given day.
type ApplyAccrualCommand struct {
	UserID       uuid.UUID
	AutomationID uuid.UUID
	Day          dates.Day
	Force        bool
}

// ApplyAccrualResult reports the automation state after the accrual.
type ApplyAccrualResult struct {
	Applied      bool
	CurrentValue float64
	Overshoot    float64
}

// ApplyAccrualHandler handles the ApplyAccrualCommand.
type ApplyAccrualHandler struct {
	automationRepo domain.Repository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
}

// NewApplyAccrualHandler creates a new ApplyAccrualHandler.
func NewApplyAccrualHandler(automationRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ApplyAccrualHandler {
	return &ApplyAccrualHandler{
		automationRepo: automationRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
	}
}

// Handle executes the ApplyAccrualCommand.
func (h *ApplyAccrualHandler) Handle(ctx context.Context, cmd ApplyAccrualCommand) (*ApplyAccrualResult, error) {
	var result *ApplyAccrualResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		automation, err := h.automationRepo.FindByID(txCtx, cmd.AutomationID)
		if err != nil {
			return err
		}

		day := cmd.Day
		if day.IsZero() {
			day = dates.Today()
		}

		if !cmd.Force && !automation.IsAccrualDue(day) {
			result = &ApplyAccrualResult{CurrentValue: automation.CurrentValue()}
			return nil
		}

		overshoot, err := automation.ApplyAccrual(day)
		if err != nil {
			return err
		}

		if err := h.automationRepo.Save(txCtx, automation); err != nil {
			return err
		}
		if err := outbox.StageEvents(txCtx, h.outboxRepo, automation,
			sharedApplication.NewEventMetadata(cmd.UserID)); err != nil {
			return err
		}

		result = &ApplyAccrualResult{
			Applied:      true,
			CurrentValue: automation.CurrentValue(),
			Overshoot:    overshoot,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
