package plan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
)

var addDate string

var addCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Add a candidate to a day's plan",
	Args:  cobra.ExactArgs(1),
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

		day, err := cli.DayFlag(addDate)
		if err != nil {
			return err
		}

		err = app.PlanItemsHandler.HandleAdd(cmd.Context(), commands.AddPlanItemCommand{
			UserID: app.CurrentUserID,
			Day:    day,
			ItemID: itemID,
		})
		if err != nil {
			return fmt.Errorf("failed to add to plan: %w", err)
		}

		fmt.Printf("Added to the plan for %s.\n", day)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "plan day (YYYY-MM-DD, default today)")
}
