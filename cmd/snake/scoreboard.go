package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard [variant]",
	Short: "Browse high scores interactively",
	Long: `Open the scoreboard. Tab and the left/right keys switch between boards.

Examples:
  snake scoreboard
  snake scoreboard wrap-20x15`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScoreboard,
}

func runScoreboard(cmd *cobra.Command, args []string) {
	variant, err := resolveVariant(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if _, err := tui.RunScoreboard(store, variant, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
