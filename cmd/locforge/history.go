// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/locforge/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists recent conversion runs from the local ledger, newest
first: when each run started, its mode, how it ended, and its row counts.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	store, err := history.Open(cfg.HistoryDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-5s  %-9s  %8s  %8s  %7s  %5s  %9s  %s\n",
		"Started", "Mode", "Outcome", "Units", "Records", "Skipped", "Trunc", "Duration", "Message")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range runs {
		trunc := ""
		if r.Truncated {
			trunc = "yes"
		}
		message := r.Message
		if len(message) > 40 {
			message = message[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-5s  %-9s  %8d  %8d  %7d  %5s  %9s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Mode, r.Outcome, r.Units, r.Records, r.Skipped, trunc,
			r.Duration.Round(time.Millisecond), message)
	}

	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (default 20)")

	rootCmd.AddCommand(historyCmd)
}
