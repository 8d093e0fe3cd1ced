package automation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/automations/application/commands"
)

var pauseCmd = &cobra.Command{
	Use:   "pause <automation-id>",
	Short: "Pause an automation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(cmd, args[0], true)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <automation-id>",
	Short: "Resume a paused automation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(cmd, args[0], false)
	},
}

func toggle(cmd *cobra.Command, arg string, pause bool) error {
	app := cli.GetApp()
	if app == nil || app.ToggleAutomationHandler == nil {
		fmt.Println("Toggling automations requires a database connection.")
		return nil
	}

	automationID, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("invalid automation ID: %w", err)
	}

	err = app.ToggleAutomationHandler.Handle(cmd.Context(), commands.ToggleAutomationCommand{
		UserID:       app.CurrentUserID,
		AutomationID: automationID,
		Pause:        pause,
	})
	if err != nil {
		return fmt.Errorf("failed to toggle automation: %w", err)
	}

	if pause {
		fmt.Println("Automation paused.")
	} else {
		fmt.Println("Automation resumed.")
	}
	return nil
}
