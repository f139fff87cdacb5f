// snake is the classic snake game for the terminal, with a shared
// scoreboard that can be served over SSH and HTTP.
//
// Usage:
//
//	snake play               - Play a game
//	snake scores [variant]   - Show high scores for a board
//	snake scoreboard         - Browse high scores interactively
//	snake serve              - Start SSH and/or HTTP servers
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible apple placement
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
	flagWrap       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic arcade game: steer the snake to the apple,
grow by one cell per apple, and do not bite yourself. Every apple makes
the snake a little faster.

Available commands:
  play        - Play a game
  scores      - Print high scores
  scoreboard  - Browse high scores interactively
  serve       - Start SSH and/or HTTP servers
  config      - Print the effective configuration

Examples:
  snake play
  snake play --wrap --width 20 --height 15
  snake scores wall-10x10
  snake serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default info, or $"+config.EnvLogLevel+")")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagWidth, "width", 0, "Board width in cells (overrides config)")
	pf.IntVar(&flagHeight, "height", 0, "Board height in cells (overrides config)")
	pf.BoolVar(&flagWrap, "wrap", false, "Wrap around the board edges instead of dying at the wall")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger at the level from --log-level or the environment.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	raw := flagLogLevel
	if raw == "" {
		raw = os.Getenv(config.EnvLogLevel)
	}
	if raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", raw)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}

// loadGameConfig resolves the game configuration from file, preset,
// environment and flags, in that order.
func loadGameConfig(cmd *cobra.Command) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Board.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Board.Height = flagHeight
	}
	if flags.Changed("wrap") {
		cfg.Boundary = "wall"
		if flagWrap {
			cfg.Boundary = "wrap"
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
