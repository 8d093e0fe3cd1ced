package insights

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for insight reports.
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Review how balanced your effort is",
}

func init() {
	Cmd.AddCommand(balanceCmd)
}
