package plan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
)

var (
	moveDate string
	movePos  int
)

var moveCmd = &cobra.Command{
	Use:   "move <item-id>",
	Short: "Move an item to a new position in a day's plan",
	Long: `Move a plan item to a new position. Positions start at 1 for the top
of the plan; values past the end move the item to the bottom.

Example:
  pokrok plan move 9b2d... --pos 1`,
	Args: cobra.ExactArgs(1),
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

		day, err := cli.DayFlag(moveDate)
		if err != nil {
			return err
		}

		if movePos < 1 {
			return fmt.Errorf("--pos must be 1 or greater")
		}

		err = app.PlanItemsHandler.HandleMove(cmd.Context(), commands.MovePlanItemCommand{
			UserID:   app.CurrentUserID,
			Day:      day,
			ItemID:   itemID,
			Position: movePos - 1,
		})
		if err != nil {
			return fmt.Errorf("failed to move plan item: %w", err)
		}

		fmt.Printf("Moved to position %d.\n", movePos)
		return nil
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveDate, "date", "", "plan day (YYYY-MM-DD, default today)")
	moveCmd.Flags().IntVar(&movePos, "pos", 1, "target position, starting at 1")
}
