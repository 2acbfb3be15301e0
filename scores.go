package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/coindash/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the highest scoring runs from the run history.

Examples:
  coindash scores
  coindash scores --limit 5`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	runs, err := store.TopScores(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Coin Dash")
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-15s  %s\n", "Rank", "Score", "Level", "Outcome", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-15s  %s\n", "----", "-----", "-----", "-------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-5d  %-15s  %s\n", i+1, r.Score, r.Level, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(); err == nil {
		fmt.Fprintf(out, "\nBest: %d\n", best)
	}
	return nil
}
