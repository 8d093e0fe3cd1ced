package insights

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reluam/pokrok.app-sub004/adapter/cli"
	"github.com/reluam/pokrok.app-sub004/internal/insights/application/queries"
	"github.com/reluam/pokrok.app-sub004/internal/insights/domain"
)

var (
	balanceDate       string
	balanceAspiration string
	balanceGrouped    bool
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show per-aspiration balance over the recent window",
	Long: `Show how much effort each aspiration received recently compared to
its lifetime pace. Aspirations with nothing linked report as empty;
linked aspirations with no recent completions report a zero rate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AspirationBalanceHandler == nil {
			fmt.Println("Balance reports require a database connection.")
			return nil
		}

		day, err := cli.DayFlag(balanceDate)
		if err != nil {
			return err
		}

		query := queries.AspirationBalanceQuery{UserID: app.CurrentUserID, Day: day}
		if balanceAspiration != "" {
			aspirationID, err := uuid.Parse(balanceAspiration)
			if err != nil {
				return fmt.Errorf("invalid aspiration ID: %w", err)
			}
			query.AspirationID = aspirationID
		}

		balances, err := app.AspirationBalanceHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to compute balances: %w", err)
		}

		if len(balances) == 0 {
			fmt.Println("No aspirations have anything linked yet.")
			return nil
		}

		if balanceGrouped {
			grouped := app.AspirationBalanceHandler.Group(balances)
			fmt.Println("Going well:")
			printBalances(grouped.Easy)
			fmt.Println("\nNeeds attention:")
			printBalances(grouped.Hard)
			return nil
		}

		fmt.Printf("Aspiration balance as of %s:\n", day)
		fmt.Println(strings.Repeat("-", 70))
		printBalances(balances)
		return nil
	},
}

func printBalances(balances []domain.AspirationBalance) {
	if len(balances) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, b := range balances {
		if b.Empty {
			fmt.Printf("  %s: empty, nothing linked\n", b.AspirationID)
			continue
		}
		rate := "no signal"
		if b.CompletionRateRecent != nil {
			rate = fmt.Sprintf("%.0f%%", *b.CompletionRateRecent)
		}
		fmt.Printf("  %s\n", b.AspirationID)
		fmt.Printf("    Recent completion rate: %s | Trend: %s\n", rate, b.Trend)
		fmt.Printf("    XP: %d recent / %d total\n", b.RecentXP, b.TotalXP)
	}
}

func init() {
	balanceCmd.Flags().StringVar(&balanceDate, "date", "", "day to evaluate as of (YYYY-MM-DD, default today)")
	balanceCmd.Flags().StringVar(&balanceAspiration, "aspiration", "", "limit to one aspiration")
	balanceCmd.Flags().BoolVar(&balanceGrouped, "grouped", false, "group into going-well and needs-attention buckets")
}
