package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	automationApp "github.com/reluam/pokrok.app-sub004/internal/automations/application"
	automationCommands "github.com/reluam/pokrok.app-sub004/internal/automations/application/commands"
	automationQueries "github.com/reluam/pokrok.app-sub004/internal/automations/application/queries"
	automationsDomain "github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	goalCommands "github.com/reluam/pokrok.app-sub004/internal/goals/application/commands"
	goalQueries "github.com/reluam/pokrok.app-sub004/internal/goals/application/queries"
	goalsDomain "github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	habitCommands "github.com/reluam/pokrok.app-sub004/internal/habits/application/commands"
	habitQueries "github.com/reluam/pokrok.app-sub004/internal/habits/application/queries"
	habitsDomain "github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	insightsQueries "github.com/reluam/pokrok.app-sub004/internal/insights/application/queries"
	insightsCache "github.com/reluam/pokrok.app-sub004/internal/insights/infrastructure/cache"
	planCommands "github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
	planQueries "github.com/reluam/pokrok.app-sub004/internal/planning/application/queries"
	planningDomain "github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	sharedApplication "github.com/reluam/pokrok.app-sub004/internal/shared/application"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/eventbus"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	Driver   database.Driver
	SQLiteDB *sql.DB
	PgxPool  *pgxpool.Pool

	// Redis
	RedisClient *redis.Client

	// Repositories
	HabitRepo      habitsDomain.Repository
	PlanRepo       planningDomain.PlanRepository
	StepRepo       planningDomain.StepRepository
	GoalRepo       goalsDomain.Repository
	AutomationRepo automationsDomain.Repository
	OutboxRepo     outbox.Repository

	// Publishers
	EventPublisher eventbus.Publisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Habit Command Handlers
	CreateHabitHandler   *habitCommands.CreateHabitHandler
	LogCompletionHandler *habitCommands.LogCompletionHandler
	AdjustRuleHandler    *habitCommands.AdjustRuleHandler
	ArchiveHabitHandler  *habitCommands.ArchiveHabitHandler

	// Habit Query Handlers
	ListHabitsHandler *habitQueries.ListHabitsHandler
	GetHabitHandler   *habitQueries.GetHabitHandler

	// Planning Command Handlers
	CreateStepHandler     *planCommands.CreateStepHandler
	CompleteStepHandler   *planCommands.CompleteStepHandler
	RescheduleStepHandler *planCommands.RescheduleStepHandler
	PlanItemsHandler      *planCommands.PlanItemsHandler

	// Planning Query Handlers
	GetDailyPlanHandler   *planQueries.GetDailyPlanHandler
	ListCandidatesHandler *planQueries.ListCandidatesHandler

	// Goal Command Handlers
	CreateGoalHandler     *goalCommands.CreateGoalHandler
	UpdateProgressHandler *goalCommands.UpdateProgressHandler
	FinishGoalHandler     *goalCommands.FinishGoalHandler

	// Goal Query Handlers
	GoalProgressHandler *goalQueries.GoalProgressHandler

	// Automation Command Handlers
	CreateAutomationHandler *automationCommands.CreateAutomationHandler
	ApplyAccrualHandler     *automationCommands.ApplyAccrualHandler
	ToggleAutomationHandler *automationCommands.ToggleAutomationHandler

	// Automation Query Handlers
	ListAutomationsHandler *automationQueries.ListAutomationsHandler

	// Accrual Sweep
	AccrualSweep *automationApp.AccrualSweep

	// Insights Query Handlers
	AspirationBalanceHandler *insightsQueries.AspirationBalanceHandler

	// Outbox Processor
	OutboxProcessor *outbox.Processor
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Driver: database.DetectDriver(cfg.DatabaseURL),
	}

	if err := c.connectDatabase(ctx); err != nil {
		return nil, err
	}
	c.buildRepositories()

	// Connect to Redis (optional; balances compute directly without it)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid Redis URL, balance cache disabled", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis not available, balance cache disabled", "error", err)
				_ = client.Close()
			} else {
				c.RedisClient = client
				logger.Info("connected to Redis")
			}
		}
	}

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if cfg.IsProduction() {
			c.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		logger.Warn("RabbitMQ not available, using noop publisher")
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
	} else {
		c.EventPublisher = publisher
	}

	// Create habit command handlers
	c.CreateHabitHandler = habitCommands.NewCreateHabitHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.LogCompletionHandler = habitCommands.NewLogCompletionHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.AdjustRuleHandler = habitCommands.NewAdjustRuleHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.ArchiveHabitHandler = habitCommands.NewArchiveHabitHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)

	// Create habit query handlers
	c.ListHabitsHandler = habitQueries.NewListHabitsHandler(c.HabitRepo)
	c.GetHabitHandler = habitQueries.NewGetHabitHandler(c.HabitRepo)

	// Create planning command handlers
	c.CreateStepHandler = planCommands.NewCreateStepHandler(c.StepRepo, c.PlanRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteStepHandler = planCommands.NewCompleteStepHandler(c.StepRepo, c.OutboxRepo, c.UnitOfWork)
	c.RescheduleStepHandler = planCommands.NewRescheduleStepHandler(c.StepRepo, c.OutboxRepo, c.UnitOfWork)
	c.PlanItemsHandler = planCommands.NewPlanItemsHandler(c.PlanRepo, c.OutboxRepo, c.UnitOfWork)

	// Create planning query handlers
	habitDir := newHabitDirectory(c.HabitRepo)
	c.GetDailyPlanHandler = planQueries.NewGetDailyPlanHandler(c.PlanRepo, c.StepRepo, habitDir)
	c.ListCandidatesHandler = planQueries.NewListCandidatesHandler(c.PlanRepo, c.StepRepo, habitDir)

	// Create goal handlers
	steps := newStepCounter(c.StepRepo)
	c.CreateGoalHandler = goalCommands.NewCreateGoalHandler(c.GoalRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateProgressHandler = goalCommands.NewUpdateProgressHandler(c.GoalRepo, steps, c.OutboxRepo, c.UnitOfWork)
	c.FinishGoalHandler = goalCommands.NewFinishGoalHandler(c.GoalRepo, steps, c.OutboxRepo, c.UnitOfWork)
	c.GoalProgressHandler = goalQueries.NewGoalProgressHandler(c.GoalRepo, steps)

	// Create automation handlers
	c.CreateAutomationHandler = automationCommands.NewCreateAutomationHandler(c.AutomationRepo, c.OutboxRepo, c.UnitOfWork)
	c.ApplyAccrualHandler = automationCommands.NewApplyAccrualHandler(c.AutomationRepo, c.OutboxRepo, c.UnitOfWork)
	c.ToggleAutomationHandler = automationCommands.NewToggleAutomationHandler(c.AutomationRepo, c.OutboxRepo, c.UnitOfWork)
	c.ListAutomationsHandler = automationQueries.NewListAutomationsHandler(c.AutomationRepo)
	c.AccrualSweep = automationApp.NewAccrualSweep(c.AutomationRepo, c.OutboxRepo, c.UnitOfWork, logger)

	// Create insights query handler
	var cache insightsQueries.BalanceCache
	if c.RedisClient != nil {
		cache = insightsCache.NewRedisBalanceCache(c.RedisClient, cfg.BalanceCacheTTL, logger)
	}
	source := newActivitySource(c.HabitRepo, c.GoalRepo, c.StepRepo)
	c.AspirationBalanceHandler = insightsQueries.NewAspirationBalanceHandler(source, cache, cfg.Insights)

	// Create outbox processor
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}, logger)

	return c, nil
}

// connectDatabase opens the backend named by the connection string and
// applies the schema.
func (c *Container) connectDatabase(ctx context.Context) error {
	switch c.Driver {
	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return err
		}
		c.PgxPool = pool
		c.Logger.Info("connected to database", "driver", c.Driver)
		return nil

	default:
		db, err := database.OpenSQLite(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := database.MigrateSQLite(ctx, db); err != nil {
			_ = db.Close()
			return err
		}
		c.SQLiteDB = db
		c.Logger.Info("connected to database", "driver", c.Driver)
		return nil
	}
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		_ = c.EventPublisher.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.PgxPool != nil {
		c.PgxPool.Close()
	}
	if c.SQLiteDB != nil {
		_ = c.SQLiteDB.Close()
	}
}
