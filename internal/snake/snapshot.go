package snake

import "time"

// Status summarizes where a game is in its lifecycle.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusGameOver Status = "game_over"
	StatusWon      Status = "won"
)

// Snapshot captures the complete game state for determinism testing and
// history records.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Score     int
	BestScore int
	Body      []Cell
	Dir       Direction
	Apple     Cell
	MoveDelay time.Duration
	Status    Status
}

// Snapshot returns a copy of the current state.
func (g *GameState) Snapshot() Snapshot {
	status := StatusPlaying
	switch {
	case g.won:
		status = StatusWon
	case g.gameOver:
		status = StatusGameOver
	}

	return Snapshot{
		Tick:      g.ticks,
		Variant:   g.cfg.Variant(),
		Score:     g.score,
		BestScore: g.best,
		Body:      g.Body(),
		Dir:       g.direction,
		Apple:     g.apple,
		MoveDelay: g.moveDelay,
		Status:    status,
	}
}

// Len returns the snake length at the time of the snapshot.
func (s Snapshot) Len() int {
	return len(s.Body)
}
