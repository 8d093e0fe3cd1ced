package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/habits/application/commands"
)

var (
	logDate string
	revoke  bool
)

var logCmd = &cobra.Command{
	Use:   "log [habit-id]",
	Short: "Log a habit completion",
	Long: `Log that you completed a habit, today or on an earlier day.
Logging the same day twice is a no-op; --revoke takes a completion back.

Examples:
  pokrok habit log 4f1c...             # completed today
  pokrok habit log 4f1c... --date 2026-08-28
  pokrok habit log 4f1c... --revoke`,
	Aliases: []string{"done", "complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogCompletionHandler == nil {
			fmt.Println("Habit logging requires a database connection.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}
		day, err := cli.DayFlag(logDate)
		if err != nil {
			return err
		}

		result, err := app.LogCompletionHandler.Handle(cmd.Context(), commands.LogCompletionCommand{
			UserID:  app.CurrentUserID,
			HabitID: habitID,
			Day:     day,
			Revoke:  revoke,
		})
		if err != nil {
			return fmt.Errorf("failed to log completion: %w", err)
		}

		if revoke {
			fmt.Printf("Revoked completion for %s.\n", day)
		} else {
			fmt.Printf("Logged completion for %s!\n", day)
			fmt.Printf("  XP awarded: %d\n", result.XPAwarded)
		}
		fmt.Printf("  Streak: %d (best %d)\n", result.Streak, result.BestStreak)
		fmt.Printf("  Total completions: %d\n", result.TotalDone)

		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day to log (YYYY-MM-DD, default today)")
	logCmd.Flags().BoolVar(&revoke, "revoke", false, "take back a logged completion")
}
