package plan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
)

var removeDate string

var removeCmd = &cobra.Command{
	Use:     "remove <item-id>",
	Short:   "Remove an item from a day's plan",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PlanItemsHandler == nil {
			fmt.Println("Plan editing requires a database connection.")
			return nil
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		day, err := cli.DayFlag(removeDate)
		if err != nil {
			return err
		}

		err = app.PlanItemsHandler.HandleRemove(cmd.Context(), commands.RemovePlanItemCommand{
			UserID: app.CurrentUserID,
			Day:    day,
			ItemID: itemID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove from plan: %w", err)
		}

		fmt.Printf("Removed from the plan for %s.\n", day)
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeDate, "date", "", "plan day (YYYY-MM-DD, default today)")
}
