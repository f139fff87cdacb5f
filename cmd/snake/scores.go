package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a board",
	Long: `Display the top games for a board variant. A variant names the
boundary rule and board size, e.g. wall-10x10 or wrap-20x15. Without an
argument the variant of the current configuration is shown.

Examples:
  snake scores
  snake scores wrap-20x15 --limit 5
  snake scores --recent
  snake scores wall-10x10 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent games across all boards")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the best score and history of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRecent {
		printRecent(store)
		return
	}

	variant, err := resolveVariant(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearVariant(variant); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", variant)
		return
	}

	games, err := store.TopGames(variant, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", variant)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		if variants, vErr := store.Variants(); vErr == nil && len(variants) > 0 {
			fmt.Println()
			fmt.Println("Boards with scores:")
			for _, v := range variants {
				fmt.Printf("  %s\n", v)
			}
		}
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "Rank", "Score", "Length", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, g := range games {
		dateStr := g.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7d  %-6d  %s\n", i+1, g.Score, g.Length, dateStr)
	}

	fmt.Println()
	if stats, sErr := store.Stats(variant); sErr == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.1f\n", stats.BestScore, stats.GamesCount, stats.AvgScore)
	}
}

func printRecent(store *storage.Store) {
	games, err := store.RecentGames(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Games")
	fmt.Println()
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-7s  %s\n", "Date", "Board", "Score", "Result")
	fmt.Printf("  %-16s  %-12s  %-7s  %s\n", "----", "-----", "-----", "------")
	for _, g := range games {
		result := "crashed"
		if g.Won {
			result = "won"
		}
		fmt.Printf("  %-16s  %-12s  %-7d  %s\n", g.CreatedAt.Format("2006-01-02 15:04"), g.Variant, g.Score, result)
	}
}

// resolveVariant returns the variant argument or the configured one.
func resolveVariant(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.Variant(), nil
}
