package plan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/queries"
)

var showDate string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the plan for a day",
	Long: `Show the committed plan for a day in its stored order.

Examples:
  pokrok plan show
  pokrok plan show --date 2026-08-29`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetDailyPlanHandler == nil {
			fmt.Println("Plans require a database connection.")
			return nil
		}

		day, err := cli.DayFlag(showDate)
		if err != nil {
			return err
		}

		plan, err := app.GetDailyPlanHandler.Handle(cmd.Context(), queries.GetDailyPlanQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		if len(plan.Items) == 0 {
			fmt.Printf("No plan for %s. See suggestions with: pokrok plan candidates\n", day)
			return nil
		}

		header := fmt.Sprintf("Plan for %s (%d items)", day, len(plan.Items))
		if plan.ReadOnly {
			header += " [read-only]"
		}
		fmt.Println(header)
		fmt.Println(strings.Repeat("-", 70))

		for _, item := range plan.Items {
			status := " "
			if item.Completed {
				status = "x"
			}
			flags := ""
			if item.Important {
				flags += " !important"
			}
			if item.Urgent {
				flags += " !urgent"
			}
			fmt.Printf("%2d. [%s] %-7s %s%s\n", item.Position+1, status, item.Kind, item.Title, flags)
			fmt.Printf("        ID: %s\n", item.ID)
		}

		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "day to show (YYYY-MM-DD, default today)")
}
