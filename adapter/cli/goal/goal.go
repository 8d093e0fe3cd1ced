package goal

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for goal management.
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	Long:  `Create goals, record progress towards them and close them out.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(progressCmd)
	Cmd.AddCommand(finishCmd)
}
