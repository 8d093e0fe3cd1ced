package cli

import (
	"github.com/google/uuid"

	automationApp "github.com/reluam/pokrok.app-sub004/internal/automations/application"
	automationCommands "github.com/reluam/pokrok.app-sub004/internal/automations/application/commands"
	automationQueries "github.com/reluam/pokrok.app-sub004/internal/automations/application/queries"
	goalCommands "github.com/reluam/pokrok.app-sub004/internal/goals/application/commands"
	goalQueries "github.com/reluam/pokrok.app-sub004/internal/goals/application/queries"
	habitCommands "github.com/reluam/pokrok.app-sub004/internal/habits/application/commands"
	habitQueries "github.com/reluam/pokrok.app-sub004/internal/habits/application/queries"
	insightsQueries "github.com/reluam/pokrok.app-sub004/internal/insights/application/queries"
	planCommands "github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
	planQueries "github.com/reluam/pokrok.app-sub004/internal/planning/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
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

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a new CLI application with the given handlers.
func NewApp(
	createHabit *habitCommands.CreateHabitHandler,
	logCompletion *habitCommands.LogCompletionHandler,
	adjustRule *habitCommands.AdjustRuleHandler,
	archiveHabit *habitCommands.ArchiveHabitHandler,
	listHabits *habitQueries.ListHabitsHandler,
	getHabit *habitQueries.GetHabitHandler,
	createStep *planCommands.CreateStepHandler,
	completeStep *planCommands.CompleteStepHandler,
	rescheduleStep *planCommands.RescheduleStepHandler,
	planItems *planCommands.PlanItemsHandler,
	getDailyPlan *planQueries.GetDailyPlanHandler,
	listCandidates *planQueries.ListCandidatesHandler,
	createGoal *goalCommands.CreateGoalHandler,
	updateProgress *goalCommands.UpdateProgressHandler,
	finishGoal *goalCommands.FinishGoalHandler,
	goalProgress *goalQueries.GoalProgressHandler,
	createAutomation *automationCommands.CreateAutomationHandler,
	applyAccrual *automationCommands.ApplyAccrualHandler,
	toggleAutomation *automationCommands.ToggleAutomationHandler,
	listAutomations *automationQueries.ListAutomationsHandler,
	accrualSweep *automationApp.AccrualSweep,
	aspirationBalance *insightsQueries.AspirationBalanceHandler,
) *App {
	return &App{
		CreateHabitHandler:       createHabit,
		LogCompletionHandler:     logCompletion,
		AdjustRuleHandler:        adjustRule,
		ArchiveHabitHandler:      archiveHabit,
		ListHabitsHandler:        listHabits,
		GetHabitHandler:          getHabit,
		CreateStepHandler:        createStep,
		CompleteStepHandler:      completeStep,
		RescheduleStepHandler:    rescheduleStep,
		PlanItemsHandler:         planItems,
		GetDailyPlanHandler:      getDailyPlan,
		ListCandidatesHandler:    listCandidates,
		CreateGoalHandler:        createGoal,
		UpdateProgressHandler:    updateProgress,
		FinishGoalHandler:        finishGoal,
		GoalProgressHandler:      goalProgress,
		CreateAutomationHandler:  createAutomation,
		ApplyAccrualHandler:      applyAccrual,
		ToggleAutomationHandler:  toggleAutomation,
		ListAutomationsHandler:   listAutomations,
		AccrualSweep:             accrualSweep,
		AspirationBalanceHandler: aspirationBalance,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
