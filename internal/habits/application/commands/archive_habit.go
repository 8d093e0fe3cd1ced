package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// ArchiveHabitCommand archives or restores a habit.
type ArchiveHabitCommand struct {
	UserID  uuid.UUID
	HabitID uuid.UUID
	Restore bool
}

// ArchiveHabitHandler handles the ArchiveHabitCommand.
type ArchiveHabitHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewArchiveHabitHandler creates a new ArchiveHabitHandler.
func NewArchiveHabitHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ArchiveHabitHandler {
	return &ArchiveHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the ArchiveHabitCommand.
func (h *ArchiveHabitHandler) Handle(ctx context.Context, cmd ArchiveHabitCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}

		if cmd.Restore {
			habit.Unarchive()
		} else {
			habit.Archive()
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		return outbox.StageEvents(txCtx, h.outboxRepo, habit,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
}
