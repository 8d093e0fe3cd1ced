package plan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/queries"
)

var (
	candidatesDate string
	hideCompleted  bool
	hidePlanned    bool
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List plan candidates for a day",
	Long: `List everything suggested for a day: habits due that day, overdue
steps from earlier days, and steps scheduled for the day. The list is
ranked most-overdue first, then by priority.

Examples:
  pokrok plan candidates
  pokrok plan candidates --date 2026-09-01 --hide-completed`,
	Aliases: []string{"due"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListCandidatesHandler == nil {
			fmt.Println("Candidates require a database connection.")
			return nil
		}

		day, err := cli.DayFlag(candidatesDate)
		if err != nil {
			return err
		}

		candidates, err := app.ListCandidatesHandler.Handle(cmd.Context(), queries.ListCandidatesQuery{
			UserID:        app.CurrentUserID,
			Day:           day,
			HideCompleted: hideCompleted,
			HidePlanned:   hidePlanned,
		})
		if err != nil {
			return fmt.Errorf("failed to list candidates: %w", err)
		}

		if len(candidates) == 0 {
			fmt.Printf("Nothing suggested for %s.\n", day)
			return nil
		}

		fmt.Printf("Candidates for %s (%d):\n", day, len(candidates))
		fmt.Println(strings.Repeat("-", 70))

		for _, c := range candidates {
			status := " "
			if c.Completed {
				status = "x"
			}
			note := ""
			if c.OverdueDays > 0 {
				note = fmt.Sprintf(" (overdue %dd)", c.OverdueDays)
			}
			if c.Planned {
				note += " [planned]"
			}
			fmt.Printf("[%s] %-6s %s%s\n", status, c.Kind, c.Title, note)
			fmt.Printf("    ID: %s\n", c.ID)
		}

		return nil
	},
}

func init() {
	candidatesCmd.Flags().StringVar(&candidatesDate, "date", "", "day to suggest for (YYYY-MM-DD, default today)")
	candidatesCmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "hide already completed candidates")
	candidatesCmd.Flags().BoolVar(&hidePlanned, "hide-planned", false, "hide candidates already in the plan")
}
