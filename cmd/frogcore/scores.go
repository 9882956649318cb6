package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frogcore/internal/platform/tui"
	"github.com/vovakirdan/frogcore/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score table",
	Long: `Display the top five high scores and game statistics.

Examples:
  frogcore scores
  frogcore scores --tui
  frogcore scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores and game history interactively")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Clear the high-score table")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println("High-score table cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.Top()
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'frogcore console' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "----", "-----", "----")

	for _, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-6d  %s\n", entry.Rank, entry.Name, entry.Score, dateStr)
	}

	stats, err := store.Stats()
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Average: %.1f  Best level: %d\n", stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
	return nil
}
