package goal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/goals/application/queries"
	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
)

var listCmd = &cobra.Command{
	Use:     "list [goal-id]",
	Short:   "List goals with their progress",
	Aliases: []string{"ls", "show"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GoalProgressHandler == nil {
			fmt.Println("Goal listing requires a database connection.")
			return nil
		}

		query := queries.GoalProgressQuery{UserID: app.CurrentUserID}
		if len(args) == 1 {
			goalID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid goal ID: %w", err)
			}
			query.GoalID = goalID
		}

		goals, err := app.GoalProgressHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}

		if len(goals) == 0 {
			fmt.Println("No goals yet. Create one with: pokrok goal create")
			return nil
		}

		fmt.Printf("Goals (%d):\n", len(goals))
		fmt.Println(strings.Repeat("-", 70))

		for _, g := range goals {
			marker := " "
			switch g.Status {
			case domain.StatusCompleted:
				marker = "x"
			case domain.StatusAbandoned:
				marker = "-"
			}
			fmt.Printf("[%s] %s (%d%%)\n", marker, g.Name, g.Progress)
			fmt.Printf("    ID: %s | Mode: %s | Status: %s\n", g.ID, g.Mode, g.Status)
			if g.Mode == domain.ModeSteps || g.Mode == domain.ModeCombined {
				fmt.Printf("    Steps: %d/%d\n", g.StepsCompleted, g.StepsTotal)
			}
			for _, m := range g.Metrics {
				unit := ""
				if m.Unit != "" {
					unit = " " + m.Unit
				}
				fmt.Printf("    Metric %s: %.2f/%.2f%s\n", m.Name, m.Current, m.Target, unit)
			}
		}

		return nil
	},
}
