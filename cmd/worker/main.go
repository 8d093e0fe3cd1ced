package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reluam/pokrok.app-sub004/internal/app"
	"github.com/reluam/pokrok.app-sub004/pkg/config"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting pokrok worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	// Wire dependencies
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Start outbox processing
	logger.Info("starting outbox processor",
		"poll_interval", cfg.OutboxPollInterval,
		"batch_size", cfg.OutboxBatchSize,
		"max_retries", cfg.OutboxMaxRetries,
	)
	container.OutboxProcessor.Start(ctx)

	// Sweep due accruals periodically. The sweep is idempotent per day, so
	// overlapping runs after a restart apply nothing twice.
	sweepTicker := time.NewTicker(cfg.AccrualSweepInterval)
	defer sweepTicker.Stop()
	go func() {
		runSweep := func() {
			result, err := container.AccrualSweep.Run(ctx, dates.Today())
			if err != nil {
				logger.Error("accrual sweep failed", "error", err)
				return
			}
			if result.Applied > 0 || result.Failed > 0 {
				logger.Info("accrual sweep completed",
					"scanned", result.Scanned,
					"applied", result.Applied,
					"failed", result.Failed,
				)
			}
		}

		runSweep()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sweepTicker.C:
				runSweep()
			}
		}
	}()

	// Wait for shutdown
	<-ctx.Done()
	logger.Info("shutting down worker")

	container.OutboxProcessor.Stop()
	logger.Info("worker stopped")
}
