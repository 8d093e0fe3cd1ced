package automation

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/automations/application/commands"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	createTarget     float64
	createUpdate     float64
	createRule       string
	createWeekdays   string
	createDayOfMonth int
	createAnchor     string
	createInitial    float64
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new automation",
	Long: `Create an automation that accrues a value on a schedule.

Rules:
  daily   - Accrue every day
  weekly  - Accrue on the listed weekdays (use --weekdays)
  monthly - Accrue on a day of the month (use --day-of-month)
  none    - Accrue only when applied by hand

Examples:
  pokrok automation create "Salary" --rule monthly --day-of-month 1 --target 5000 --update 2500
  pokrok automation create "Daily savings" --rule daily --target 365 --update 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateAutomationHandler == nil {
			fmt.Println("Automation creation requires a database connection.")
			return nil
		}

		var anchor dates.Day
		if createAnchor != "" {
			var err error
			if anchor, err = dates.ParseDay(createAnchor); err != nil {
				return fmt.Errorf("invalid anchor date: %w", err)
			}
		}

		auto, err := app.CreateAutomationHandler.Handle(cmd.Context(), commands.CreateAutomationCommand{
			UserID:       app.CurrentUserID,
			Name:         args[0],
			TargetValue:  createTarget,
			UpdateValue:  createUpdate,
			RuleKind:     recurrence.Kind(createRule),
			Weekdays:     createWeekdays,
			DayOfMonth:   createDayOfMonth,
			AnchorDay:    anchor,
			InitialValue: createInitial,
		})
		if err != nil {
			return fmt.Errorf("failed to create automation: %w", err)
		}

		fmt.Printf("Created automation: %s\n", auto.Name())
		fmt.Printf("  ID: %s\n", auto.ID())
		fmt.Printf("  Accrues %.2f towards %.2f (%s)\n", auto.UpdateValue(), auto.TargetValue(), createRule)
		return nil
	},
}

func init() {
	createCmd.Flags().Float64VarP(&createTarget, "target", "t", 0, "value the automation accrues towards")
	createCmd.Flags().Float64VarP(&createUpdate, "update", "u", 0, "value added per accrual")
	createCmd.Flags().StringVarP(&createRule, "rule", "r", "daily", "accrual rule (daily, weekly, monthly, none)")
	createCmd.Flags().StringVarP(&createWeekdays, "weekdays", "w", "", "comma-separated weekdays for weekly rules")
	createCmd.Flags().IntVar(&createDayOfMonth, "day-of-month", 0, "day of month for monthly rules (1-31)")
	createCmd.Flags().StringVar(&createAnchor, "anchor", "", "anchor date; monthly rules default their day of month from it")
	createCmd.Flags().Float64Var(&createInitial, "initial", 0, "starting value")
}
