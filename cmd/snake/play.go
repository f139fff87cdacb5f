package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLogFile string
	flagPick    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of snake. The snake waits for the first arrow key.

Controls:
  Arrows/WASD/hjkl - Steer
  P                - Pause
  R/Enter          - Restart
  B/Esc            - Scoreboard (B again to play)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start, gentle speed-up
  normal - 500ms per move, 20ms faster per apple
  hard   - Fast start, fast speed-up
  fixed  - No speed-up

Examples:
  snake play
  snake play --wrap
  snake play --width 30 --height 20 --difficulty hard
  snake play --config ./my-snake.yaml
  snake play --pick`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.snake/snake.log", "Log file (the terminal is busy with the game)")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the board edges and size from a menu before playing")
}

func runPlay(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engineCfg, err := gameCfg.Engine(flagSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := tui.OpenLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "snake")

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	if flagPick {
		sel, pickErr := tui.RunBoardPicker(rc)
		if pickErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
			os.Exit(1)
		}
		if sel == nil {
			return
		}
		engineCfg = sel.Apply(engineCfg)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "variant", engineCfg.Variant(), "seed", flagSeed)
	if err := tui.Run(engineCfg, store, rc, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
