package automation

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/automations/application/queries"
)

var (
	listDate   string
	listDue    bool
	listActive bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List automations",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListAutomationsHandler == nil {
			fmt.Println("Automation listing requires a database connection.")
			return nil
		}

		day, err := cli.DayFlag(listDate)
		if err != nil {
			return err
		}

		autos, err := app.ListAutomationsHandler.Handle(cmd.Context(), queries.ListAutomationsQuery{
			UserID:     app.CurrentUserID,
			Day:        day,
			OnlyDue:    listDue,
			ActiveOnly: listActive,
		})
		if err != nil {
			return fmt.Errorf("failed to list automations: %w", err)
		}

		if len(autos) == 0 {
			fmt.Println("No automations yet. Create one with: pokrok automation create")
			return nil
		}

		fmt.Printf("Automations (%d):\n", len(autos))
		fmt.Println(strings.Repeat("-", 70))

		for _, a := range autos {
			marker := " "
			switch {
			case !a.Active:
				marker = "-"
			case a.Due:
				marker = "!"
			}
			fmt.Printf("[%s] %s: %.2f/%.2f (+%.2f %s)\n", marker, a.Name, a.CurrentValue, a.TargetValue, a.UpdateValue, a.RuleKind)
			last := a.LastAppliedDay
			if last == "" {
				last = "never"
			}
			fmt.Printf("    ID: %s | Last applied: %s\n", a.ID, last)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "day to evaluate dueness against (YYYY-MM-DD, default today)")
	listCmd.Flags().BoolVar(&listDue, "due", false, "only automations due on the day")
	listCmd.Flags().BoolVar(&listActive, "active", false, "only active automations")
}
