package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// AddPlanItemCommand adds an item (habit or step id) to a day's plan.
// Today is the reference day for the read-only check; zero means the
// wall clock.
type AddPlanItemCommand struct {
	UserID uuid.UUID
	Day    dates.Day
	ItemID uuid.UUID
	Today  dates.Day
}

// RemovePlanItemCommand removes an item from a day's plan.
type RemovePlanItemCommand struct {
	UserID uuid.UUID
	Day    dates.Day
	ItemID uuid.UUID
	Today  dates.Day
}

// ReorderPlanCommand replaces the full item order of a day's plan.
type ReorderPlanCommand struct {
	UserID uuid.UUID
	Day    dates.Day
	Order  []uuid.UUID
	Today  dates.Day
}

// MovePlanItemCommand moves one item to a zero-based position.
type MovePlanItemCommand struct {
	UserID   uuid.UUID
	Day      dates.Day
	ItemID   uuid.UUID
	Position int
	Today    dates.Day
}

// PlanItemsHandler handles plan membership and ordering commands.
type PlanItemsHandler struct {
	planRepo   domain.PlanRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewPlanItemsHandler creates a new PlanItemsHandler.
func NewPlanItemsHandler(planRepo domain.PlanRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *PlanItemsHandler {
	return &PlanItemsHandler{
		planRepo:   planRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// HandleAdd executes the AddPlanItemCommand. The plan is created on first
// use; past days are rejected.
func (h *PlanItemsHandler) HandleAdd(ctx context.Context, cmd AddPlanItemCommand) error {
	day := planDay(cmd.Day)
	today := planDay(cmd.Today)
	if day.Before(today) {
		return domain.ErrPlanReadOnly
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		plan, err := getOrCreatePlan(txCtx, h.planRepo, cmd.UserID, day)
		if err != nil {
			return err
		}
		if err := plan.Add(cmd.ItemID, today); err != nil {
			return err
		}
		return h.savePlan(txCtx, plan, cmd.UserID)
	})
}

// HandleRemove executes the RemovePlanItemCommand.
func (h *PlanItemsHandler) HandleRemove(ctx context.Context, cmd RemovePlanItemCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		plan, err := h.planRepo.FindByUserAndDay(txCtx, cmd.UserID, planDay(cmd.Day))
		if err != nil {
			return err
		}
		if err := plan.Remove(cmd.ItemID, planDay(cmd.Today)); err != nil {
			return err
		}
		return h.savePlan(txCtx, plan, cmd.UserID)
	})
}

// HandleReorder executes the ReorderPlanCommand.
func (h *PlanItemsHandler) HandleReorder(ctx context.Context, cmd ReorderPlanCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		plan, err := h.planRepo.FindByUserAndDay(txCtx, cmd.UserID, planDay(cmd.Day))
		if err != nil {
			return err
		}
		if err := plan.Reorder(cmd.Order, planDay(cmd.Today)); err != nil {
			return err
		}
		return h.savePlan(txCtx, plan, cmd.UserID)
	})
}

// HandleMove executes the MovePlanItemCommand.
func (h *PlanItemsHandler) HandleMove(ctx context.Context, cmd MovePlanItemCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		plan, err := h.planRepo.FindByUserAndDay(txCtx, cmd.UserID, planDay(cmd.Day))
		if err != nil {
			return err
		}
		if err := plan.MoveToPosition(cmd.ItemID, cmd.Position, planDay(cmd.Today)); err != nil {
			return err
		}
		return h.savePlan(txCtx, plan, cmd.UserID)
	})
}

func (h *PlanItemsHandler) savePlan(ctx context.Context, plan *domain.DailyPlan, userID uuid.UUID) error {
	if err := h.planRepo.Save(ctx, plan); err != nil {
		return err
	}
	return outbox.StageEvents(ctx, h.outboxRepo, plan,
		sharedApplication.NewEventMetadata(userID))
}

func planDay(day dates.Day) dates.Day {
	if day.IsZero() {
		return dates.Today()
	}
	return day
}
