package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show daily completion statistics",
	Long: `Show per-day task counts and completion rates.

Statistics live on the server, so this requires a logged-in account.
Free accounts see the last 7 days, premium accounts up to a year.

Examples:
  oneday stats
  oneday stats --days 30`,
	RunE: runStats,
}

var statsDays int

func init() {
	statsCmd.Flags().IntVarP(&statsDays, "days", "d", 7, "Number of days to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := apiClient()
	if err != nil {
		return err
	}
	if !client.IsLoggedIn() {
		fmt.Println("Statistics require an account. Run: oneday auth login")
		return nil
	}

	stats, err := client.Statistics(context.Background(), statsDays)
	if err != nil {
		return fmt.Errorf("failed to fetch statistics: %w", err)
	}

	fmt.Printf("\n📊 Last %d day(s)\n", len(stats))
	fmt.Println(strings.Repeat("─", 44))
	fmt.Printf("%-12s %7s %10s %8s\n", "Date", "Total", "Completed", "Rate")
	for _, d := range stats {
		fmt.Printf("%-12s %7d %10d %7.0f%%\n", d.Date, d.TotalTasks, d.CompletedTasks, d.CompletionRate)
	}
	fmt.Println()
	return nil
}
