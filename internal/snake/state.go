package snake

import (
	"math/rand"
	"time"
)

// TickResult is the outcome of a single simulation step.
type TickResult int

const (
	Continue TickResult = iota
	AppleEaten
	GameOver
)

func (r TickResult) String() string {
	switch r {
	case Continue:
		return "continue"
	case AppleEaten:
		return "apple_eaten"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameState owns one game session: the snake, the apple, score and speed.
// It is not safe for concurrent use; callers serialize Tick and SetDirection.
type GameState struct {
	cfg   Config
	board Board
	rng   *rand.Rand

	body      []Cell // head at index 0
	direction Direction
	pending   Direction // applied at the start of the next tick
	apple     Cell

	score     int
	best      int
	moveDelay time.Duration
	ticks     uint64
	gameOver  bool
	won       bool
}

// New validates cfg and returns a freshly spawned game.
func New(cfg Config) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board, err := NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	g := &GameState{
		cfg:   cfg,
		board: board,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
	g.Reset()
	return g, nil
}

// Reset starts a new game on the same board. The best score and the RNG
// stream carry over.
func (g *GameState) Reset() {
	cx, cy := g.board.Width()/2, g.board.Height()/2
	g.body = []Cell{
		{X: cx, Y: cy},     // head
		{X: cx - 1, Y: cy}, // tail
	}
	g.direction = DirRight
	g.pending = DirRight
	g.score = 0
	g.moveDelay = g.cfg.InitialDelay
	g.ticks = 0
	g.gameOver = false
	g.won = false
	g.apple, _ = PlaceApple(g.rng, g.board, occupancy(g.body))
}

// SetDirection buffers a direction for the next tick. The last accepted call
// before a tick wins. Reversing onto the neck is refused unless the config
// allows it. It reports whether the direction was accepted.
func (g *GameState) SetDirection(d Direction) bool {
	if !d.Valid() || g.gameOver {
		return false
	}
	if !g.cfg.AllowReverse && d == g.direction.Opposite() {
		return false
	}
	g.pending = d
	return true
}

// Tick advances the simulation by one step. Collision checks run before the
// move is committed, so on GameOver the body is left as it was.
func (g *GameState) Tick() TickResult {
	if g.gameOver {
		return GameOver
	}
	g.ticks++
	g.direction = g.pending

	dx, dy := g.direction.Delta()
	head, ok := g.board.Resolve(g.body[0].Add(dx, dy), g.cfg.Boundary)
	if !ok {
		g.gameOver = true
		return GameOver
	}

	eating := head == g.apple
	if g.collidesWithBody(head, eating) {
		g.gameOver = true
		return GameOver
	}

	if eating {
		g.grow(head)
		return AppleEaten
	}

	copy(g.body[1:], g.body[:len(g.body)-1])
	g.body[0] = head
	return Continue
}

// collidesWithBody checks head against the body. With TailFollow the tail
// cell is free unless the snake grows this tick.
func (g *GameState) collidesWithBody(head Cell, growing bool) bool {
	n := len(g.body)
	if g.cfg.TailFollow && !growing {
		n--
	}
	for _, c := range g.body[:n] {
		if c == head {
			return true
		}
	}
	return false
}

// grow prepends head while keeping the tail, scores the apple, speeds the
// game up and respawns the apple.
func (g *GameState) grow(head Cell) {
	g.body = append(g.body, Cell{})
	copy(g.body[1:], g.body[:len(g.body)-1])
	g.body[0] = head

	g.score++
	if g.score > g.best {
		g.best = g.score
	}
	g.speedUp()

	apple, ok := PlaceApple(g.rng, g.board, occupancy(g.body))
	g.apple = apple
	if !ok {
		// Board is full: nothing left to eat.
		g.gameOver = true
		g.won = true
	}
}

// speedUp lowers the move delay by the configured decrement, never below the floor.
func (g *GameState) speedUp() {
	if g.cfg.DelayDecrement <= 0 {
		return
	}
	floor := g.cfg.minDelay()
	if g.moveDelay <= floor {
		return
	}
	g.moveDelay = max(g.moveDelay-g.cfg.DelayDecrement, floor)
}

// Body returns a copy of the snake, head first.
func (g *GameState) Body() []Cell {
	out := make([]Cell, len(g.body))
	copy(out, g.body)
	return out
}

// Head returns the head cell.
func (g *GameState) Head() Cell {
	return g.body[0]
}

// Len returns the body length.
func (g *GameState) Len() int {
	return len(g.body)
}

// Apple returns the apple position, or (-1,-1) once the board is full.
func (g *GameState) Apple() Cell {
	return g.apple
}

// Direction returns the direction applied on the last tick.
func (g *GameState) Direction() Direction {
	return g.direction
}

// PendingDirection returns the direction the next tick will use.
func (g *GameState) PendingDirection() Direction {
	return g.pending
}

func (g *GameState) Score() int {
	return g.score
}

// BestScore returns the running maximum across games of this session.
func (g *GameState) BestScore() int {
	return g.best
}

// SetBestScore seeds the best score, typically from persistence.
// Lower values than the current best are ignored.
func (g *GameState) SetBestScore(best int) {
	if best > g.best {
		g.best = best
	}
}

// MoveDelay is the minimum time between ticks at the current speed.
func (g *GameState) MoveDelay() time.Duration {
	return g.moveDelay
}

func (g *GameState) GameOver() bool {
	return g.gameOver
}

// Won reports whether the game ended by filling the board.
func (g *GameState) Won() bool {
	return g.won
}

// Ticks returns the number of steps taken in the current game.
func (g *GameState) Ticks() uint64 {
	return g.ticks
}

// Board returns the board extents.
func (g *GameState) Board() Board {
	return g.board
}

// Config returns the configuration the game was created with.
func (g *GameState) Config() Config {
	return g.cfg
}
