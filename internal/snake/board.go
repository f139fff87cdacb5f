package snake

import (
	"errors"
	"fmt"
	"strings"
)

// MinBoardSize is the smallest extent the simulation accepts in either
// dimension. Anything smaller cannot hold a spawned snake plus an apple.
const MinBoardSize = 3

// ErrBoardTooSmall is returned when a board is narrower or shorter than MinBoardSize.
var ErrBoardTooSmall = errors.New("snake: board too small")

// BoundaryPolicy decides what happens when the head leaves the board.
type BoundaryPolicy int

const (
	// WallDeath ends the game when the head would leave the board.
	WallDeath BoundaryPolicy = iota
	// Wrap moves the head to the opposite edge.
	Wrap
)

func (p BoundaryPolicy) String() string {
	switch p {
	case Wrap:
		return "wrap"
	default:
		return "wall"
	}
}

// ParseBoundaryPolicy accepts "wall"/"wall-death" and "wrap"/"wrap-around".
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wall", "wall-death", "walldeath":
		return WallDeath, nil
	case "wrap", "wrap-around", "wraparound":
		return Wrap, nil
	}
	return WallDeath, fmt.Errorf("snake: unknown boundary policy %q", s)
}

// Board holds the immutable extents of the playing field.
type Board struct {
	width  int
	height int
}

// NewBoard creates a board of the given extents.
func NewBoard(width, height int) (Board, error) {
	if width < MinBoardSize || height < MinBoardSize {
		return Board{}, fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrBoardTooSmall, width, height, MinBoardSize, MinBoardSize)
	}
	return Board{width: width, height: height}, nil
}

// Width returns the number of columns.
func (b Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b Board) Height() int {
	return b.height
}

// Area returns the number of cells on the board.
func (b Board) Area() int {
	return b.width * b.height
}

// Contains reports whether c lies within [0,width)x[0,height).
func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Resolve applies the boundary policy to a candidate cell. Under WallDeath an
// out-of-bounds cell is returned unchanged with ok=false. Under Wrap the
// coordinates are reduced modulo the extents and ok is always true.
func (b Board) Resolve(c Cell, policy BoundaryPolicy) (Cell, bool) {
	if policy == Wrap {
		return Cell{X: mod(c.X, b.width), Y: mod(c.Y, b.height)}, true
	}
	return c, b.Contains(c)
}

// mod is a modulo that never returns a negative result.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
