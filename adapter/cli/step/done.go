package step

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
)

var revoke bool

var doneCmd = &cobra.Command{
	Use:   "done [step-id]",
	Short: "Complete a step",
	Long: `Mark a step as completed. The step stays in any plan it was added
to, shown as done. Use --revoke to reopen it.`,
	Aliases: []string{"complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteStepHandler == nil {
			fmt.Println("Completing steps requires a database connection.")
			return nil
		}

		stepID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid step ID: %w", err)
		}

		result, err := app.CompleteStepHandler.Handle(cmd.Context(), commands.CompleteStepCommand{
			UserID: app.CurrentUserID,
			StepID: stepID,
			Revoke: revoke,
		})
		if err != nil {
			return fmt.Errorf("failed to complete step: %w", err)
		}

		if revoke {
			fmt.Println("Step reopened.")
			return nil
		}
		fmt.Println("Step completed!")
		if result.XPAwarded > 0 {
			fmt.Printf("  XP awarded: %d\n", result.XPAwarded)
		}
		if result.GoalID != uuid.Nil {
			fmt.Printf("  Contributes to goal: %s\n", result.GoalID)
		}
		return nil
	},
}

func init() {
	doneCmd.Flags().BoolVar(&revoke, "revoke", false, "reopen a completed step")
}
