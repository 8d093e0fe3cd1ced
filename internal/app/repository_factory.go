package app

import (
	automationPersistence "github.com/reluam/pokrok.app-sub004/internal/automations/infrastructure/persistence"
	goalPersistence "github.com/reluam/pokrok.app-sub004/internal/goals/infrastructure/persistence"
	habitPersistence "github.com/reluam/pokrok.app-sub004/internal/habits/infrastructure/persistence"
	planningPersistence "github.com/reluam/pokrok.app-sub004/internal/planning/infrastructure/persistence"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
)

// buildRepositories wires the repository set and unit of work for the
// connected backend.
func (c *Container) buildRepositories() {
	if c.Driver == database.DriverPostgres {
		c.HabitRepo = habitPersistence.NewPostgresHabitRepository(c.PgxPool)
		c.PlanRepo = planningPersistence.NewPostgresPlanRepository(c.PgxPool)
		c.StepRepo = planningPersistence.NewPostgresStepRepository(c.PgxPool)
		c.GoalRepo = goalPersistence.NewPostgresGoalRepository(c.PgxPool)
		c.AutomationRepo = automationPersistence.NewPostgresAutomationRepository(c.PgxPool)
		c.OutboxRepo = outbox.NewPostgresRepository(c.PgxPool)
		c.UnitOfWork = database.NewPgxUnitOfWork(c.PgxPool)
		return
	}

	c.HabitRepo = habitPersistence.NewSQLiteHabitRepository(c.SQLiteDB)
	c.PlanRepo = planningPersistence.NewSQLitePlanRepository(c.SQLiteDB)
	c.StepRepo = planningPersistence.NewSQLiteStepRepository(c.SQLiteDB)
	c.GoalRepo = goalPersistence.NewSQLiteGoalRepository(c.SQLiteDB)
	c.AutomationRepo = automationPersistence.NewSQLiteAutomationRepository(c.SQLiteDB)
	c.OutboxRepo = outbox.NewSQLiteRepository(c.SQLiteDB)
	c.UnitOfWork = database.NewSQLiteUnitOfWork(c.SQLiteDB)
}
