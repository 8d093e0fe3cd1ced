package habit

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/habits/application/queries"
)

var (
	showArchived bool
	showDue      bool
	listDate     string
	habitSortBy  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long: `List habits with their streaks and due state for a day.

Examples:
  pokrok habit list                  # All active habits, flags for today
  pokrok habit list --due            # Only habits due today
  pokrok habit list --date 2026-09-01
  pokrok habit list --sort streak`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListHabitsHandler == nil {
			fmt.Println("Habit listing requires a database connection.")
			return nil
		}

		day, err := cli.DayFlag(listDate)
		if err != nil {
			return err
		}

		query := queries.ListHabitsQuery{
			UserID:          app.CurrentUserID,
			Day:             day,
			IncludeArchived: showArchived,
			OnlyDue:         showDue,
			SortBy:          habitSortBy,
		}

		habits, err := app.ListHabitsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		if len(habits) == 0 {
			if showDue {
				fmt.Printf("No habits due on %s.\n", day)
			} else {
				fmt.Println("No habits found. Create one with: pokrok habit create \"Habit name\"")
			}
			return nil
		}

		fmt.Printf("Habits (%d):\n", len(habits))
		fmt.Println(strings.Repeat("-", 70))

		for _, h := range habits {
			status := " "
			switch {
			case h.IsCompleted:
				status = "x"
			case h.IsDue:
				status = "!"
			}
			archived := ""
			if h.IsArchived {
				archived = " [archived]"
			}
			fmt.Printf("[%s] %s%s\n", status, h.Name, archived)
			fmt.Printf("    ID: %s  Rule: %s  Streak: %d (best %d)  Done: %d\n",
				h.ID, h.RuleKind, h.Streak, h.BestStreak, h.TotalDone)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&showArchived, "archived", false, "include archived habits")
	listCmd.Flags().BoolVar(&showDue, "due", false, "show only habits due on the day")
	listCmd.Flags().StringVar(&listDate, "date", "", "day to compute due/completed flags for (YYYY-MM-DD, default today)")
	listCmd.Flags().StringVar(&habitSortBy, "sort", "", "sort by field (streak, name, created_at)")
}
