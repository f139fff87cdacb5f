package snake

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Renderer draws the post-tick state. Implementations decide the technology.
type Renderer interface {
	Clear()
	RenderSnake(body []Cell)
	RenderApple(apple Cell)
}

// BestScoreStore persists the best score between sessions.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for session events.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGameOverHook registers fn to run once when a game ends.
func WithGameOverHook(fn func(Snapshot)) SessionOption {
	return func(s *Session) {
		s.onGameOver = fn
	}
}

// Session drives a GameState from an external frame scheduler. Each frame
// carries a monotonically increasing timestamp; a tick runs only once the
// elapsed time since the previous tick reaches the current move delay.
// Frames, direction changes and restarts must come from one goroutine.
type Session struct {
	state      *GameState
	renderer   Renderer
	store      BestScoreStore
	logger     *log.Logger
	onGameOver func(Snapshot)

	savedBest int
	lastTick  time.Duration
	running   bool
}

// NewSession creates a game for cfg and loads the persisted best score.
// renderer and store may be nil. A failing store is logged and ignored.
func NewSession(cfg Config, renderer Renderer, store BestScoreStore, opts ...SessionOption) (*Session, error) {
	state, err := New(cfg)
	if err != nil {
		return nil, err
	}

	s := &Session{
		state:    state,
		renderer: renderer,
		store:    store,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store != nil {
		best, loadErr := s.store.LoadBestScore()
		if loadErr != nil {
			s.logger.Warn("could not load best score", "error", loadErr)
		} else {
			state.SetBestScore(best)
			s.savedBest = best
		}
	}

	s.render()
	return s, nil
}

// State exposes the underlying game for read access.
func (s *Session) State() *GameState {
	return s.state
}

// Running reports whether frames currently advance the game.
func (s *Session) Running() bool {
	return s.running
}

// Start begins ticking, measuring the first interval from ts.
func (s *Session) Start(ts time.Duration) {
	if s.running || s.state.GameOver() {
		return
	}
	s.running = true
	s.lastTick = ts
	s.logger.Debug("game started", "variant", s.state.Config().Variant())
}

// Restart resets the game and starts it at ts.
func (s *Session) Restart(ts time.Duration) {
	s.state.Reset()
	s.running = false
	s.render()
	s.Start(ts)
}

// SetDirection forwards an input event to the game.
func (s *Session) SetDirection(d Direction) bool {
	return s.state.SetDirection(d)
}

// OnFrame is called once per display frame. It reports whether a tick ran
// and, if so, its result.
func (s *Session) OnFrame(ts time.Duration) (TickResult, bool) {
	if !s.running {
		return Continue, false
	}
	if ts-s.lastTick < s.state.MoveDelay() {
		return Continue, false
	}
	s.lastTick = ts

	result := s.state.Tick()
	s.render()

	if result == AppleEaten {
		s.persistBest()
	}
	if s.state.GameOver() {
		s.finish()
	}
	return result, true
}

// persistBest writes the best score when it beats the last persisted value.
func (s *Session) persistBest() {
	best := s.state.BestScore()
	if best <= s.savedBest {
		return
	}
	if s.store != nil {
		if err := s.store.SaveBestScore(best); err != nil {
			s.logger.Warn("could not save best score", "score", best, "error", err)
			return
		}
	}
	s.savedBest = best
	s.logger.Info("new best score", "score", best, "variant", s.state.Config().Variant())
}

func (s *Session) finish() {
	s.running = false
	snap := s.state.Snapshot()
	s.logger.Info("game over",
		"score", snap.Score,
		"length", snap.Len(),
		"ticks", snap.Tick,
		"won", s.state.Won(),
	)
	if s.onGameOver != nil {
		s.onGameOver(snap)
	}
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.Clear()
	s.renderer.RenderSnake(s.state.Body())
	if s.state.Board().Contains(s.state.Apple()) {
		s.renderer.RenderApple(s.state.Apple())
	}
}
