package goal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/goals/application/commands"
)

var (
	progressPercent int
	progressMetric  string
	progressValue   float64
)

var progressCmd = &cobra.Command{
	Use:   "progress <goal-id>",
	Short: "Record progress on a goal",
	Long: `Record progress on a goal. Manual-mode goals take a percentage with
--percent; amount and combined goals take a metric reading with
--metric and --value.

Examples:
  pokrok goal progress 9b2d... --percent 60
  pokrok goal progress 9b2d... --metric 4f1a... --value 2500`,
	Aliases: []string{"record"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateProgressHandler == nil {
			fmt.Println("Recording progress requires a database connection.")
			return nil
		}

		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal ID: %w", err)
		}

		command := commands.UpdateProgressCommand{
			UserID: app.CurrentUserID,
			GoalID: goalID,
		}
		switch {
		case cmd.Flags().Changed("percent") && progressMetric != "":
			return fmt.Errorf("--percent and --metric are mutually exclusive")
		case cmd.Flags().Changed("percent"):
			pct := progressPercent
			command.ManualProgress = &pct
		case progressMetric != "":
			metricID, err := uuid.Parse(progressMetric)
			if err != nil {
				return fmt.Errorf("invalid metric ID: %w", err)
			}
			if !cmd.Flags().Changed("value") {
				return fmt.Errorf("--value is required with --metric")
			}
			command.MetricID = metricID
			command.MetricValue = progressValue
		default:
			return fmt.Errorf("pass either --percent or --metric with --value")
		}

		result, err := app.UpdateProgressHandler.Handle(cmd.Context(), command)
		if err != nil {
			return fmt.Errorf("failed to record progress: %w", err)
		}

		fmt.Printf("Progress: %d%%\n", result.Progress)
		return nil
	},
}

func init() {
	progressCmd.Flags().IntVar(&progressPercent, "percent", 0, "manual progress percentage (0-100)")
	progressCmd.Flags().StringVar(&progressMetric, "metric", "", "metric to record a value for")
	progressCmd.Flags().Float64Var(&progressValue, "value", 0, "new metric value")
}
