// Package config provides YAML-based game configuration loading, environment
// overrides and difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Board extents accepted from users. The simulation itself tolerates smaller
// boards; this range keeps games playable in a terminal.
const (
	MinBoardExtent = 10
	MaxBoardExtent = 100
)

// ErrBoardOutOfRange is returned when a configured board is outside the accepted extents.
var ErrBoardOutOfRange = errors.New("config: board size out of range")

// SnakeConfig contains all configuration for a snake game.
type SnakeConfig struct {
	Board    BoardConfig `yaml:"board"`
	Boundary string      `yaml:"boundary"` // "wall" or "wrap"
	Speed    SpeedConfig `yaml:"speed"`
	Rules    RulesConfig `yaml:"rules"`
}

// BoardConfig defines the playing field extents.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines the move delay and its ramp.
type SpeedConfig struct {
	InitialDelayMs int  `yaml:"initial_delay_ms"`
	DecrementMs    int  `yaml:"decrement_ms"` // Subtracted per apple while ramp is on
	MinDelayMs     int  `yaml:"min_delay_ms"`
	Ramp           bool `yaml:"ramp"`
}

// RulesConfig toggles rule variants.
type RulesConfig struct {
	AllowReverse bool `yaml:"allow_reverse"` // Accept turning straight back into the neck
	TailFollow   bool `yaml:"tail_follow"`   // Head may enter the cell the tail is leaving
}

// Validate checks user-facing constraints and returns a message suitable for display.
func (c SnakeConfig) Validate() error {
	if c.Board.Width < MinBoardExtent || c.Board.Width > MaxBoardExtent ||
		c.Board.Height < MinBoardExtent || c.Board.Height > MaxBoardExtent {
		return fmt.Errorf("%w: %dx%d, width and height must be between %d and %d",
			ErrBoardOutOfRange, c.Board.Width, c.Board.Height, MinBoardExtent, MaxBoardExtent)
	}
	if _, err := snake.ParseBoundaryPolicy(c.Boundary); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Speed.InitialDelayMs <= 0 {
		return fmt.Errorf("config: initial_delay_ms must be positive, got %d", c.Speed.InitialDelayMs)
	}
	if c.Speed.DecrementMs < 0 || c.Speed.MinDelayMs < 0 {
		return fmt.Errorf("config: decrement_ms and min_delay_ms must not be negative")
	}
	return nil
}

// Engine converts the file representation into a simulation config.
func (c SnakeConfig) Engine(seed int64) (snake.Config, error) {
	if err := c.Validate(); err != nil {
		return snake.Config{}, err
	}
	policy, _ := snake.ParseBoundaryPolicy(c.Boundary)

	cfg := snake.Config{
		Width:        c.Board.Width,
		Height:       c.Board.Height,
		Boundary:     policy,
		InitialDelay: time.Duration(c.Speed.InitialDelayMs) * time.Millisecond,
		MinDelay:     time.Duration(c.Speed.MinDelayMs) * time.Millisecond,
		AllowReverse: c.Rules.AllowReverse,
		TailFollow:   c.Rules.TailFollow,
		Seed:         seed,
	}
	if c.Speed.Ramp {
		cfg.DelayDecrement = time.Duration(c.Speed.DecrementMs) * time.Millisecond
	}
	return cfg, nil
}

// Variant returns the score bucket for this config, e.g. "wrap-20x15".
func (c SnakeConfig) Variant() string {
	policy, _ := snake.ParseBoundaryPolicy(c.Boundary)
	return fmt.Sprintf("%s-%dx%d", policy, c.Board.Width, c.Board.Height)
}
