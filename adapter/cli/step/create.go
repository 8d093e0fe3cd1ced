package step

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/planning/application/commands"
)

var (
	stepDate  string
	goalID    string
	important bool
	urgent    bool
	xp        int
	addToPlan bool
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a daily step",
	Long: `Create a one-off step scheduled for a day. Unfinished steps carry
over as overdue candidates until completed or rescheduled.

Examples:
  pokrok step create "Call the bank"
  pokrok step create "Write outline" --date 2026-09-02 --important
  pokrok step create "Run 5k" --goal 9a2e... --xp 20 --plan`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateStepHandler == nil {
			fmt.Println("Step creation requires a database connection.")
			return nil
		}

		day, err := cli.DayFlag(stepDate)
		if err != nil {
			return err
		}

		createCmd := commands.CreateStepCommand{
			UserID:    app.CurrentUserID,
			Title:     args[0],
			Day:       day,
			Important: important,
			Urgent:    urgent,
			XP:        xp,
			Plan:      addToPlan,
		}
		if goalID != "" {
			id, err := uuid.Parse(goalID)
			if err != nil {
				return fmt.Errorf("invalid goal ID: %w", err)
			}
			createCmd.GoalID = id
		}

		result, err := app.CreateStepHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create step: %w", err)
		}

		fmt.Printf("Created step: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.StepID)
		fmt.Printf("  Day: %s\n", day)
		if addToPlan {
			fmt.Println("  Added to the day's plan.")
		}

		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&stepDate, "date", "", "day to schedule the step for (YYYY-MM-DD, default today)")
	createCmd.Flags().StringVar(&goalID, "goal", "", "goal ID the step contributes to")
	createCmd.Flags().BoolVar(&important, "important", false, "mark the step important")
	createCmd.Flags().BoolVar(&urgent, "urgent", false, "mark the step urgent")
	createCmd.Flags().IntVar(&xp, "xp", 10, "XP awarded on completion")
	createCmd.Flags().BoolVar(&addToPlan, "plan", false, "also add the step to the day's plan")
}
