package step

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var toDate string

var moveCmd = &cobra.Command{
	Use:   "move [step-id]",
	Short: "Reschedule a step to another day",
	Long: `Move an open step to another day. The step leaves its overdue
state behind and becomes a candidate for the new day.

Examples:
  pokrok step move 7be0... --to 2026-09-05`,
	Aliases: []string{"reschedule"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RescheduleStepHandler == nil {
			fmt.Println("Rescheduling requires a database connection.")
			return nil
		}

		stepID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid step ID: %w", err)
		}
		if toDate == "" {
			return fmt.Errorf("--to is required")
		}
		day, err := dates.ParseDay(toDate)
		if err != nil {
			return fmt.Errorf("invalid target date: %w", err)
		}

		err = app.RescheduleStepHandler.Handle(cmd.Context(), commands.RescheduleStepCommand{
			UserID: app.CurrentUserID,
			StepID: stepID,
			ToDay:  day,
		})
		if err != nil {
			return fmt.Errorf("failed to reschedule step: %w", err)
		}

		fmt.Printf("Step moved to %s.\n", day)
		return nil
	},
}

func init() {
	moveCmd.Flags().StringVar(&toDate, "to", "", "target day (YYYY-MM-DD)")
}
