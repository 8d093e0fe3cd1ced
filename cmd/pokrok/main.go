package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/adapter/cli/automation"
	"github.com/reluam/pokrok.app-sub004/adapter/cli/goal"
	"github.com/reluam/pokrok.app-sub004/adapter/cli/habit"
	"github.com/reluam/pokrok.app-sub004/adapter/cli/insights"
	"github.com/reluam/pokrok.app-sub004/adapter/cli/plan"
	"github.com/reluam/pokrok.app-sub004/adapter/cli/step"
	"github.com/reluam/pokrok.app-sub004/internal/app"
	"github.com/reluam/pokrok.app-sub004/pkg/config"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without database
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Start outbox processor in background (optional in CLI)
		if cfg.OutboxProcessorEnabled {
			container.OutboxProcessor.Start(ctx)
			defer container.OutboxProcessor.Stop()
		} else {
			logger.Info("outbox processor disabled in CLI")
		}

		// Create CLI app with handlers
		cliApp = cli.NewApp(
			container.CreateHabitHandler,
			container.LogCompletionHandler,
			container.AdjustRuleHandler,
			container.ArchiveHabitHandler,
			container.ListHabitsHandler,
			container.GetHabitHandler,
			container.CreateStepHandler,
			container.CompleteStepHandler,
			container.RescheduleStepHandler,
			container.PlanItemsHandler,
			container.GetDailyPlanHandler,
			container.ListCandidatesHandler,
			container.CreateGoalHandler,
			container.UpdateProgressHandler,
			container.FinishGoalHandler,
			container.GoalProgressHandler,
			container.CreateAutomationHandler,
			container.ApplyAccrualHandler,
			container.ToggleAutomationHandler,
			container.ListAutomationsHandler,
			container.AccrualSweep,
			container.AspirationBalanceHandler,
		)

		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid POKROK_USER_ID", "error", err)
			os.Exit(1)
		}
		cliApp.SetCurrentUserID(userID)
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(habit.Cmd)
	cli.AddCommand(step.Cmd)
	cli.AddCommand(plan.Cmd)
	cli.AddCommand(goal.Cmd)
	cli.AddCommand(automation.Cmd)
	cli.AddCommand(insights.Cmd)

	// Execute CLI
	cli.Execute()
}
