package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/habits/application/queries"
)

var showDate string

var showCmd = &cobra.Command{
	Use:     "show <habit-id>",
	Short:   "Show a habit's details",
	Aliases: []string{"get"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetHabitHandler == nil {
			fmt.Println("Habit lookup requires a database connection.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		day, err := cli.DayFlag(showDate)
		if err != nil {
			return err
		}

		habit, err := app.GetHabitHandler.Handle(cmd.Context(), queries.GetHabitQuery{
			HabitID: habitID,
			Day:     day,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch habit: %w", err)
		}

		fmt.Printf("%s\n", habit.Name)
		if habit.Description != "" {
			fmt.Printf("%s\n", habit.Description)
		}
		fmt.Printf("ID:       %s\n", habit.ID)
		rule := habit.RuleKind
		if habit.Weekdays != "" {
			rule += " (" + habit.Weekdays + ")"
		}
		if habit.DayOfMonth > 0 {
			rule += fmt.Sprintf(" (day %d)", habit.DayOfMonth)
		}
		fmt.Printf("Rule:     %s\n", rule)
		fmt.Printf("XP:       %d per completion\n", habit.XP)
		fmt.Printf("Streak:   %d (best %d)\n", habit.Streak, habit.BestStreak)
		fmt.Printf("Done:     %d times\n", habit.TotalDone)
		if habit.IsArchived {
			fmt.Println("Archived: yes")
		}
		if habit.AspirationID != uuid.Nil {
			fmt.Printf("Aspiration: %s\n", habit.AspirationID)
		}
		fmt.Printf("Due on %s: %v", day, habit.IsDue)
		if habit.IsCompleted {
			fmt.Print(" (completed)")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "day to evaluate dueness against (YYYY-MM-DD, default today)")
}
