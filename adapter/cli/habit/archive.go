package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/habits/application/commands"
)

var restore bool

var archiveCmd = &cobra.Command{
	Use:   "archive [habit-id]",
	Short: "Archive a habit",
	Long: `Archive a habit. Archived habits keep their history but are never
due and are hidden from listings. Use --restore to bring one back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ArchiveHabitHandler == nil {
			fmt.Println("Archiving requires a database connection.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		err = app.ArchiveHabitHandler.Handle(cmd.Context(), commands.ArchiveHabitCommand{
			UserID:  app.CurrentUserID,
			HabitID: habitID,
			Restore: restore,
		})
		if err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}

		if restore {
			fmt.Println("Habit restored.")
		} else {
			fmt.Println("Habit archived.")
		}
		return nil
	},
}

func init() {
	archiveCmd.Flags().BoolVar(&restore, "restore", false, "restore an archived habit")
}
