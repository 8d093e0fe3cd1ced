package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/habits/application/commands"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	newRuleKind   string
	newWeekdays   string
	newDayOfMonth int
	newAnchor     string
	setAlwaysShow string
)

var ruleCmd = &cobra.Command{
	Use:   "rule [habit-id]",
	Short: "Change a habit's recurrence rule",
	Long: `Replace a habit's recurrence rule. History and streaks are kept.

Examples:
  pokrok habit rule 4f1c... --rule weekly --weekdays tue,fri
  pokrok habit rule 4f1c... --rule monthly --day-of-month 1
  pokrok habit rule 4f1c... --always-show on`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AdjustRuleHandler == nil {
			fmt.Println("Rule changes require a database connection.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		var anchor dates.Day
		if newAnchor != "" {
			if anchor, err = dates.ParseDay(newAnchor); err != nil {
				return fmt.Errorf("invalid anchor date: %w", err)
			}
		}

		adjust := commands.AdjustRuleCommand{
			UserID:     app.CurrentUserID,
			HabitID:    habitID,
			RuleKind:   newRuleKind,
			Weekdays:   newWeekdays,
			DayOfMonth: newDayOfMonth,
			AnchorDay:  anchor,
		}
		switch setAlwaysShow {
		case "":
		case "on", "true":
			v := true
			adjust.AlwaysShow = &v
		case "off", "false":
			v := false
			adjust.AlwaysShow = &v
		default:
			return fmt.Errorf("invalid --always-show value %q (want on or off)", setAlwaysShow)
		}

		if err := app.AdjustRuleHandler.Handle(cmd.Context(), adjust); err != nil {
			return fmt.Errorf("failed to adjust rule: %w", err)
		}

		fmt.Println("Rule updated.")
		return nil
	},
}

func init() {
	ruleCmd.Flags().StringVar(&newRuleKind, "rule", "", "new recurrence rule (daily, weekly, monthly, custom, always, none)")
	ruleCmd.Flags().StringVar(&newWeekdays, "weekdays", "", "comma-separated weekdays for weekly rules")
	ruleCmd.Flags().IntVar(&newDayOfMonth, "day-of-month", 0, "day of month for monthly rules (1-31)")
	ruleCmd.Flags().StringVar(&newAnchor, "anchor", "", "anchor date (YYYY-MM-DD)")
	ruleCmd.Flags().StringVar(&setAlwaysShow, "always-show", "", "set the always-show flag (on or off)")
}
