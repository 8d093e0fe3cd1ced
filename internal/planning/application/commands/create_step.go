package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// CreateStepCommand contains the data needed to create a daily step.
type CreateStepCommand struct {
	UserID    uuid.UUID
	Title     string
	Day       dates.Day
	GoalID    uuid.UUID
	Important bool
	Urgent    bool
	XP        int
	Plan      bool // also add the step to the day's plan
}

// CreateStepResult contains the result of creating a step.
type CreateStepResult struct {
	StepID uuid.UUID
}

// CreateStepHandler handles the CreateStepCommand.
type CreateStepHandler struct {
	stepRepo   domain.StepRepository
	planRepo   domain.PlanRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateStepHandler creates a new CreateStepHandler.
func NewCreateStepHandler(stepRepo domain.StepRepository, planRepo domain.PlanRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateStepHandler {
	return &CreateStepHandler{
		stepRepo:   stepRepo,
		planRepo:   planRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateStepCommand.
func (h *CreateStepHandler) Handle(ctx context.Context, cmd CreateStepCommand) (*CreateStepResult, error) {
	day := cmd.Day
	if day.IsZero() {
		day = dates.Today()
	}

	var result *CreateStepResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		step, err := domain.NewDailyStep(cmd.UserID, cmd.Title, day, cmd.GoalID)
		if err != nil {
			return err
		}

		if cmd.Important || cmd.Urgent {
			step.SetFlags(cmd.Important, cmd.Urgent)
		}
		if cmd.XP > 0 {
			step.SetXP(cmd.XP)
		}

		if err := h.stepRepo.Save(txCtx, step); err != nil {
			return err
		}

		metadata := sharedApplication.NewEventMetadata(cmd.UserID)
		if err := outbox.StageEvents(txCtx, h.outboxRepo, step, metadata); err != nil {
			return err
		}

		if cmd.Plan {
			plan, err := getOrCreatePlan(txCtx, h.planRepo, cmd.UserID, day)
			if err != nil {
				return err
			}
			if err := plan.Add(step.ID(), dates.Today()); err != nil {
				return err
			}
			if err := h.planRepo.Save(txCtx, plan); err != nil {
				return err
			}
			if err := outbox.StageEvents(txCtx, h.outboxRepo, plan, metadata); err != nil {
				return err
			}
		}

		result = &CreateStepResult{StepID: step.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// getOrCreatePlan loads the plan for a user and day, creating it on first use.
func getOrCreatePlan(ctx context.Context, repo domain.PlanRepository, userID uuid.UUID, day dates.Day) (*domain.DailyPlan, error) {
	plan, err := repo.FindByUserAndDay(ctx, userID, day)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, domain.ErrPlanNotFound) {
		return nil, err
	}
	return domain.NewDailyPlan(userID, day)
}
