package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the classic 10x10 wall-death configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:  snake.DefaultWidth,
			Height: snake.DefaultHeight,
		},
		Boundary: snake.WallDeath.String(),
		Speed: SpeedConfig{
			InitialDelayMs: int(snake.DefaultInitialDelay.Milliseconds()),
			DecrementMs:    int(snake.DefaultDelayDecrement.Milliseconds()),
			MinDelayMs:     int(snake.DefaultMinDelay.Milliseconds()),
			Ramp:           true,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
