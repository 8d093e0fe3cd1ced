package goal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/goals/application/commands"
	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
)

var (
	createMode       string
	createAspiration string
	createMetrics    []string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new goal",
	Long: `Create a goal with a progress mode:
  manual   - You set the percentage yourself
  steps    - Progress follows completed vs total linked steps
  amount   - Progress follows metric values vs their targets
  combined - Averages the step ratio with the metric ratios

Metrics are given as name:target or name:target:unit and can repeat.

Examples:
  pokrok goal create "Finish thesis" --mode steps
  pokrok goal create "Save up" --mode amount --metric savings:5000:eur
  pokrok goal create "Run a marathon" --mode combined --metric distance:42:km`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateGoalHandler == nil {
			fmt.Println("Goal creation requires a database connection.")
			return nil
		}

		metrics, err := parseMetrics(createMetrics)
		if err != nil {
			return err
		}

		command := commands.CreateGoalCommand{
			UserID:  app.CurrentUserID,
			Name:    args[0],
			Mode:    domain.ProgressMode(createMode),
			Metrics: metrics,
		}
		if createAspiration != "" {
			aspirationID, err := uuid.Parse(createAspiration)
			if err != nil {
				return fmt.Errorf("invalid aspiration ID: %w", err)
			}
			command.AspirationID = aspirationID
		}

		goal, err := app.CreateGoalHandler.Handle(cmd.Context(), command)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		fmt.Printf("Created goal: %s\n", goal.Name())
		fmt.Printf("ID:   %s\n", goal.ID())
		fmt.Printf("Mode: %s\n", goal.Mode())
		return nil
	},
}

func parseMetrics(raw []string) ([]commands.MetricInput, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	metrics := make([]commands.MetricInput, 0, len(raw))
	for _, spec := range raw {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid metric %q (want name:target or name:target:unit)", spec)
		}
		target, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid metric target in %q: %w", spec, err)
		}
		input := commands.MetricInput{Name: parts[0], Target: target}
		if len(parts) == 3 {
			input.Unit = parts[2]
		}
		metrics = append(metrics, input)
	}
	return metrics, nil
}

func init() {
	createCmd.Flags().StringVarP(&createMode, "mode", "m", "steps", "progress mode (manual, steps, amount, combined)")
	createCmd.Flags().StringVar(&createAspiration, "aspiration", "", "aspiration this goal contributes to")
	createCmd.Flags().StringArrayVar(&createMetrics, "metric", nil, "metric as name:target[:unit], repeatable")
}
