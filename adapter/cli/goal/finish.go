package goal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/goals/application/commands"
)

var (
	finishAbandon bool
	finishReopen  bool
)

var finishCmd = &cobra.Command{
	Use:     "finish <goal-id>",
	Short:   "Complete, abandon or reopen a goal",
	Aliases: []string{"complete", "close"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FinishGoalHandler == nil {
			fmt.Println("Closing goals requires a database connection.")
			return nil
		}

		if finishAbandon && finishReopen {
			return fmt.Errorf("--abandon and --reopen are mutually exclusive")
		}

		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal ID: %w", err)
		}

		err = app.FinishGoalHandler.Handle(cmd.Context(), commands.FinishGoalCommand{
			UserID:  app.CurrentUserID,
			GoalID:  goalID,
			Abandon: finishAbandon,
			Reopen:  finishReopen,
		})
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		switch {
		case finishReopen:
			fmt.Println("Goal reopened.")
		case finishAbandon:
			fmt.Println("Goal abandoned.")
		default:
			fmt.Println("Goal completed!")
		}
		return nil
	},
}

func init() {
	finishCmd.Flags().BoolVar(&finishAbandon, "abandon", false, "mark the goal abandoned instead of completed")
	finishCmd.Flags().BoolVar(&finishReopen, "reopen", false, "reopen a completed or abandoned goal")
}
