package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// AdjustRuleCommand replaces the recurrence rule of a habit.
type AdjustRuleCommand struct {
	UserID     uuid.UUID
	HabitID    uuid.UUID
	RuleKind   string
	Weekdays   string
	DayOfMonth int
	AnchorDay  dates.Day
	AlwaysShow *bool // nil leaves the flag untouched
}

// AdjustRuleHandler handles the AdjustRuleCommand.
type AdjustRuleHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewAdjustRuleHandler creates a new AdjustRuleHandler.
func NewAdjustRuleHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *AdjustRuleHandler {
	return &AdjustRuleHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the AdjustRuleCommand.
func (h *AdjustRuleHandler) Handle(ctx context.Context, cmd AdjustRuleCommand) error {
	weekdays, err := recurrence.ParseWeekdays(cmd.Weekdays)
	if err != nil {
		return err
	}

	anchor := cmd.AnchorDay
	if anchor.IsZero() {
		anchor = dates.Today()
	}

	rule, err := recurrence.NewRule(recurrence.Kind(cmd.RuleKind), weekdays, cmd.DayOfMonth, anchor)
	if err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}

		if err := habit.SetRule(rule); err != nil {
			return err
		}
		if cmd.AlwaysShow != nil {
			habit.SetAlwaysShow(*cmd.AlwaysShow)
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		return outbox.StageEvents(txCtx, h.outboxRepo, habit,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
}
