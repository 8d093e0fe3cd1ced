package plan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
)

var orderDate string

var orderCmd = &cobra.Command{
	Use:   "order <item-id> [item-id...]",
	Short: "Reorder a day's plan",
	Long: `Reorder a day's plan by listing item IDs in the desired order. Every
item currently in the plan must appear exactly once.`,
	Aliases: []string{"reorder"},
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PlanItemsHandler == nil {
			fmt.Println("Plan editing requires a database connection.")
			return nil
		}

		order := make([]uuid.UUID, 0, len(args))
		for _, arg := range args {
			id, err := uuid.Parse(arg)
			if err != nil {
				return fmt.Errorf("invalid item ID %q: %w", arg, err)
			}
			order = append(order, id)
		}

		day, err := cli.DayFlag(orderDate)
		if err != nil {
			return err
		}

		err = app.PlanItemsHandler.HandleReorder(cmd.Context(), commands.ReorderPlanCommand{
			UserID: app.CurrentUserID,
			Day:    day,
			Order:  order,
		})
		if err != nil {
			return fmt.Errorf("failed to reorder plan: %w", err)
		}

		fmt.Println("Plan reordered.")
		return nil
	},
}

func init() {
	orderCmd.Flags().StringVar(&orderDate, "date", "", "plan day (YYYY-MM-DD, default today)")
}
