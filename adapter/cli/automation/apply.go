package automation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/automations/application/commands"
)

var (
	applyDate  string
	applyForce bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <automation-id>",
	Short: "Apply an automation's accrual for a day",
	Long: `Apply an automation's accrual. Without --force the accrual only
applies when the automation is due on the day and has not already
been applied for it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ApplyAccrualHandler == nil {
			fmt.Println("Applying accruals requires a database connection.")
			return nil
		}

		automationID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid automation ID: %w", err)
		}

		day, err := cli.DayFlag(applyDate)
		if err != nil {
			return err
		}

		result, err := app.ApplyAccrualHandler.Handle(cmd.Context(), commands.ApplyAccrualCommand{
			UserID:       app.CurrentUserID,
			AutomationID: automationID,
			Day:          day,
			Force:        applyForce,
		})
		if err != nil {
			return fmt.Errorf("failed to apply accrual: %w", err)
		}

		if !result.Applied {
			fmt.Printf("Not due on %s; nothing applied. Use --force to apply anyway.\n", day)
			return nil
		}

		fmt.Printf("Applied. Current value: %.2f\n", result.CurrentValue)
		if result.Overshoot > 0 {
			fmt.Printf("Target exceeded by %.2f.\n", result.Overshoot)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyDate, "date", "", "day to apply for (YYYY-MM-DD, default today)")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "apply even if not due")
}
