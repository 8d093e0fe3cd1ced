package step

import (
	"github.com/spf13/cobra"
)

// Cmd is the step command group
var Cmd = &cobra.Command{
	Use:   "step",
	Short: "Manage daily steps",
	Long:  `Create, complete and reschedule one-off steps scheduled for a day.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(moveCmd)
}
