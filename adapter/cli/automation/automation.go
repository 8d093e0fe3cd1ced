package automation

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for automation management.
var Cmd = &cobra.Command{
	Use:   "automation",
	Short: "Manage automations",
	Long: `Automations accrue a value towards a target on a schedule, without a
background timer. Accruals apply when you run them or when the worker
sweep picks them up.`,
	Aliases: []string{"auto"},
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(applyCmd)
	Cmd.AddCommand(pauseCmd)
	Cmd.AddCommand(resumeCmd)
}
