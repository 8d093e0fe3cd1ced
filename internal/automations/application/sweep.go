package application

import (
	"context"
	"log/slog"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// SweepResult summarizes one accrual sweep.
type SweepResult struct {
	Scanned int
	Applied int
	Failed  int
}

// AccrualSweep walks every active automation once and applies the accruals
// due on the given day. The engine itself carries no timer; the worker (or
// the CLI) invokes a sweep, typically once per day.
type AccrualSweep struct {
	automationRepo domain.Repository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	logger         *slog.Logger
}

// NewAccrualSweep creates a new AccrualSweep.
func NewAccrualSweep(automationRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, logger *slog.Logger) *AccrualSweep {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccrualSweep{
		automationRepo: automationRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		logger:         logger,
	}
}

// Run applies all due accruals for the day. Each automation commits in its
// own transaction so one failure never blocks the rest of the sweep.
func (s *AccrualSweep) Run(ctx context.Context, day dates.Day) (SweepResult, error) {
	if day.IsZero() {
		day = dates.Today()
	}

	automations, err := s.automationRepo.FindActive(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Scanned: len(automations)}
	for _, automation := range automations {
		if !automation.IsAccrualDue(day) {
			continue
		}

		if err := s.applyOne(ctx, automation, day); err != nil {
			result.Failed++
			s.logger.Error("accrual failed",
				slog.String("automation_id", automation.ID().String()),
				slog.String("day", day.String()),
				slog.String("error", err.Error()))
			continue
		}
		result.Applied++
	}

	s.logger.Info("accrual sweep done",
		slog.String("day", day.String()),
		slog.Int("scanned", result.Scanned),
		slog.Int("applied", result.Applied),
		slog.Int("failed", result.Failed))

	return result, nil
}

func (s *AccrualSweep) applyOne(ctx context.Context, automation *domain.Automation, day dates.Day) error {
	return sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		overshoot, err := automation.ApplyAccrual(day)
		if err != nil {
			return err
		}
		if overshoot > 0 {
			s.logger.Info("accrual overshot target",
				slog.String("automation_id", automation.ID().String()),
				slog.Float64("overshoot", overshoot))
		}

		if err := s.automationRepo.Save(txCtx, automation); err != nil {
			return err
		}
		return outbox.StageEvents(txCtx, s.outboxRepo, automation,
			sharedApplication.NewEventMetadata(automation.UserID()))
	})
}
