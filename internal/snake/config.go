package snake

import (
	"fmt"
	"time"
)

// Defaults match the classic 10x10 browser game.
const (
	DefaultWidth          = 10
	DefaultHeight         = 10
	DefaultInitialDelay   = 500 * time.Millisecond
	DefaultDelayDecrement = 20 * time.Millisecond
	DefaultMinDelay       = 60 * time.Millisecond

	// FloorDelay is the hard lower bound on the move delay regardless of config.
	FloorDelay = 20 * time.Millisecond
)

// Config parameterizes one game session.
type Config struct {
	Width    int
	Height   int
	Boundary BoundaryPolicy

	// InitialDelay is the move delay at the start of every game.
	InitialDelay time.Duration
	// DelayDecrement is subtracted from the move delay per apple eaten.
	// Zero disables the difficulty ramp.
	DelayDecrement time.Duration
	// MinDelay floors the ramp. Values below FloorDelay are raised to it.
	MinDelay time.Duration

	// AllowReverse accepts a direction change to the exact opposite of the
	// current direction, which turns the head into the neck.
	AllowReverse bool
	// TailFollow lets the head enter the cell the tail leaves on the same tick.
	TailFollow bool

	// Seed for apple placement. Equal seeds and inputs replay identically.
	Seed int64
}

// DefaultConfig returns the classic wall-death configuration.
func DefaultConfig() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Boundary:       WallDeath,
		InitialDelay:   DefaultInitialDelay,
		DelayDecrement: DefaultDelayDecrement,
		MinDelay:       DefaultMinDelay,
	}
}

// Validate checks the configuration the simulation relies on.
func (c Config) Validate() error {
	if _, err := NewBoard(c.Width, c.Height); err != nil {
		return err
	}
	if c.InitialDelay <= 0 {
		return fmt.Errorf("snake: initial delay must be positive, got %s", c.InitialDelay)
	}
	if c.DelayDecrement < 0 {
		return fmt.Errorf("snake: delay decrement must not be negative, got %s", c.DelayDecrement)
	}
	return nil
}

// minDelay returns the effective delay floor.
func (c Config) minDelay() time.Duration {
	return max(c.MinDelay, FloorDelay)
}

// Variant identifies the ruleset for score bookkeeping, e.g. "wall-10x10".
func (c Config) Variant() string {
	return fmt.Sprintf("%s-%dx%d", c.Boundary, c.Width, c.Height)
}
