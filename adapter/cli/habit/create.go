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
	description string
	ruleKind    string
	weekdays    string
	dayOfMonth  int
	anchorDate  string
	alwaysShow  bool
	xp          int
	aspiration  string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new habit",
	Long: `Create a new recurring habit to track.

Rules:
  daily     - Every day
  weekly    - On the listed weekdays (use --weekdays)
  monthly   - On a day of the month (use --day-of-month)
  custom    - A custom weekday set (use --weekdays)
  always    - No schedule; shown every day
  none      - No schedule; shown only with --always-show

Examples:
  pokrok habit create "Morning run" --rule daily
  pokrok habit create "Review week" --rule weekly --weekdays fri
  pokrok habit create "Pay rent" --rule monthly --day-of-month 31
  pokrok habit create "Gym" --rule custom --weekdays mon,wed,fri`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateHabitHandler == nil {
			fmt.Println("Habit creation requires a database connection.")
			return nil
		}

		var anchor dates.Day
		if anchorDate != "" {
			var err error
			if anchor, err = dates.ParseDay(anchorDate); err != nil {
				return fmt.Errorf("invalid anchor date: %w", err)
			}
		}

		createCmd := commands.CreateHabitCommand{
			UserID:          app.CurrentUserID,
			Name:            args[0],
			Description:     description,
			RuleKind:        ruleKind,
			Weekdays:        weekdays,
			DayOfMonth:      dayOfMonth,
			AnchorDay:       anchor,
			AlwaysShow:      alwaysShow,
			XPPerCompletion: xp,
		}
		if aspiration != "" {
			id, err := uuid.Parse(aspiration)
			if err != nil {
				return fmt.Errorf("invalid aspiration ID: %w", err)
			}
			createCmd.AspirationID = id
		}

		result, err := app.CreateHabitHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		fmt.Printf("Created habit: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.HabitID)
		fmt.Printf("  Rule: %s\n", ruleKind)

		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&description, "description", "d", "", "habit description")
	createCmd.Flags().StringVarP(&ruleKind, "rule", "r", "daily", "recurrence rule (daily, weekly, monthly, custom, always, none)")
	createCmd.Flags().StringVarP(&weekdays, "weekdays", "w", "", "comma-separated weekdays for weekly rules, e.g. mon,wed,fri")
	createCmd.Flags().IntVar(&dayOfMonth, "day-of-month", 0, "day of month for monthly rules (1-31)")
	createCmd.Flags().StringVar(&anchorDate, "anchor", "", "anchor date; monthly rules default their day of month from it")
	createCmd.Flags().BoolVar(&alwaysShow, "always-show", false, "show the habit every day regardless of its rule")
	createCmd.Flags().IntVar(&xp, "xp", 10, "XP awarded per completion")
	createCmd.Flags().StringVar(&aspiration, "aspiration", "", "aspiration ID to link the habit to")
}
