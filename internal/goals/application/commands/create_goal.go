package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// MetricInput describes a metric to attach at creation time.
type MetricInput struct {
	Name   string
	Target float64
	Unit   string
}

// CreateGoalCommand creates a goal, optionally with initial metrics.
type CreateGoalCommand struct {
	UserID       uuid.UUID
	Name         string
	Mode         domain.ProgressMode
	AspirationID uuid.UUID
	Metrics      []MetricInput
}

// CreateGoalHandler handles the CreateGoalCommand.
type CreateGoalHandler struct {
	goalRepo   domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(goalRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateGoalHandler {
	return &CreateGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateGoalCommand.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*domain.Goal, error) {
	goal, err := domain.NewGoal(cmd.UserID, cmd.Name, cmd.Mode)
	if err != nil {
		return nil, err
	}
	if cmd.AspirationID != uuid.Nil {
		goal.AttachAspiration(cmd.AspirationID)
	}
	for _, in := range cmd.Metrics {
		metric, err := domain.NewMetric(in.Name, in.Target, in.Unit)
		if err != nil {
			return nil, err
		}
		if err := goal.AddMetric(metric); err != nil {
			return nil, err
		}
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}
		return outbox.StageEvents(txCtx, h.outboxRepo, goal,
			sharedApplication.NewEventMetadata(cmd.UserID))
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}
