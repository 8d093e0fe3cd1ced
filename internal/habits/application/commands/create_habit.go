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

// CreateHabitCommand contains the data needed to create a habit.
type CreateHabitCommand struct {
	UserID          uuid.UUID
	Name            string
	Description     string
	RuleKind        string
	Weekdays        string // comma-separated, e.g. "mon,wed,fri"
	DayOfMonth      int
	AnchorDay       dates.Day
	AlwaysShow      bool
	XPPerCompletion int
	AspirationID    uuid.UUID
}

// CreateHabitResult contains the result of creating a habit.
type CreateHabitResult struct {
	HabitID uuid.UUID
}

// CreateHabitHandler handles the CreateHabitCommand.
type CreateHabitHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateHabitHandler creates a new CreateHabitHandler.
func NewCreateHabitHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateHabitHandler {
	return &CreateHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateHabitCommand.
func (h *CreateHabitHandler) Handle(ctx context.Context, cmd CreateHabitCommand) (*CreateHabitResult, error) {
	weekdays, err := recurrence.ParseWeekdays(cmd.Weekdays)
	if err != nil {
		return nil, err
	}

	anchor := cmd.AnchorDay
	if anchor.IsZero() {
		anchor = dates.Today()
	}

	rule, err := recurrence.NewRule(recurrence.Kind(cmd.RuleKind), weekdays, cmd.DayOfMonth, anchor)
	if err != nil {
		return nil, err
	}

	var result *CreateHabitResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := domain.NewHabit(cmd.UserID, cmd.Name, rule, cmd.XPPerCompletion)
		if err != nil {
			return err
		}

		if cmd.Description != "" {
			if err := habit.SetDescription(cmd.Description); err != nil {
				return err
			}
		}
		if cmd.AlwaysShow {
			habit.SetAlwaysShow(true)
		}
		if cmd.AspirationID != uuid.Nil {
			habit.AttachAspiration(cmd.AspirationID)
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		if err := outbox.StageEvents(txCtx, h.outboxRepo, habit,
			sharedApplication.NewEventMetadata(cmd.UserID)); err != nil {
			return err
		}

		result = &CreateHabitResult{HabitID: habit.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
