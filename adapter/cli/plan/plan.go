package plan

import (
	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage daily plans",
	Long: `Review candidates for a day and commit them to the day's plan.
Candidates are suggestions only; nothing enters a plan until added.`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(candidatesCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(moveCmd)
	Cmd.AddCommand(orderCmd)
}
