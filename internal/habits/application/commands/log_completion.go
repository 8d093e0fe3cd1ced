package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// LogCompletionCommand records or revokes a habit completion for a day.
type LogCompletionCommand struct {
	UserID  uuid.UUID
	HabitID uuid.UUID
	Day     dates.Day
	Revoke  bool
}

// LogCompletionResult reports the habit state after logging.
type LogCompletionResult struct {
	Streak     int
	BestStreak int
	TotalDone  int
	XPAwarded  int
}

// LogCompletionHandler handles the LogCompletionCommand.
type LogCompletionHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewLogCompletionHandler creates a new LogCompletionHandler.
func NewLogCompletionHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *LogCompletionHandler {
	return &LogCompletionHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the LogCompletionCommand.
func (h *LogCompletionHandler) Handle(ctx context.Context, cmd LogCompletionCommand) (*LogCompletionResult, error) {
	var result *LogCompletionResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}

		day := cmd.Day
		if day.IsZero() {
			day = dates.Today()
		}

		if cmd.Revoke {
			err = habit.UncompleteOn(day)
		} else {
			err = habit.CompleteOn(day)
		}
		if err != nil {
			return err
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		if err := outbox.StageEvents(txCtx, h.outboxRepo, habit,
			sharedApplication.NewEventMetadata(cmd.UserID)); err != nil {
			return err
		}

		xp := habit.XPPerCompletion()
		if cmd.Revoke {
			xp = 0
		}
		result = &LogCompletionResult{
			Streak:     habit.Streak(),
			BestStreak: habit.BestStreak(),
			TotalDone:  habit.TotalDone(),
			XPAwarded:  xp,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
