package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Model is the Bubble Tea model for one game of snake.
type Model struct {
	session   *snake.Session
	renderer  *ScreenRenderer
	screen    *core.Screen
	keys      *KeyMapper
	logger    *log.Logger
	config    core.RuntimeConfig
	sessionID string

	started   bool          // Set by the first direction key
	paused    bool          // Game clock frozen
	clock     time.Duration // Game time, advanced only while running
	lastFrame time.Time
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewModel creates a model for cfg. store and logger may be nil.
func NewModel(cfg snake.Config, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sessionID := uuid.NewString()
	logger = logger.With("session", sessionID[:8])

	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
	renderer := NewScreenRenderer(screen, cfg.Width, cfg.Height)

	var best snake.BestScoreStore
	if store != nil {
		best = storage.BestScoreKeeper{Store: store, Variant: cfg.Variant()}
	}

	session, err := snake.NewSession(cfg, renderer, best,
		snake.WithLogger(logger),
		snake.WithGameOverHook(func(snap snake.Snapshot) {
			if store == nil {
				return
			}
			if _, err := store.RecordSnapshot(sessionID, snap); err != nil {
				logger.Warn("could not record game", "error", err)
			}
		}),
	)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	return Model{
		session:   session,
		renderer:  renderer,
		screen:    screen,
		keys:      NewKeyMapper(),
		logger:    logger,
		config:    rc,
		sessionID: sessionID,
	}, nil
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.renderer.Layout()
		return m, nil

	case TickMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	state := m.session.State()

	if d, ok := DirectionFor(action); ok {
		if m.paused {
			return m, nil
		}
		m.session.SetDirection(d)
		if !m.started {
			m.started = true
			m.session.Start(m.clock)
		}
		return m, nil
	}

	switch action {
	case core.ActionPause:
		if m.started && !state.GameOver() {
			m.paused = !m.paused
		}
	case core.ActionRestart:
		m.restart()
	case core.ActionConfirm:
		if state.GameOver() {
			m.restart()
		}
	case core.ActionBack:
		m.goingBack = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) restart() {
	m.paused = false
	m.started = true
	m.session.Restart(m.clock)
	m.logger.Debug("restarted")
}

// handleFrame advances the game clock by the wall time since the last
// frame and lets the session decide whether a tick is due.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastFrame.IsZero() && m.started && !m.paused {
		m.clock += now.Sub(m.lastFrame)
		m.session.OnFrame(m.clock)
	}
	m.lastFrame = now
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	state := m.session.State()
	m.renderer.Draw()
	m.renderer.DrawHUD(state.Score(), state.BestScore(), state.Len(), state.MoveDelay(), state.Config().Variant())

	switch {
	case state.Won():
		m.renderer.DrawOverlay("You Win!", fmt.Sprintf("Final Score: %d", state.Score()), core.ColorBrightGreen)
	case state.GameOver():
		m.renderer.DrawOverlay("Game Over", "Press R to restart", core.ColorBrightRed)
	case !m.started:
		m.renderer.DrawOverlay("Snake", "Press any arrow to start", core.ColorCyan)
	case m.paused:
		m.renderer.DrawOverlay("Paused", "Press P to continue", core.ColorYellow)
	}

	return RenderScreen(m.screen)
}

// Session exposes the running game session.
func (m Model) Session() *snake.Session {
	return m.session
}

// Paused reports whether the game clock is frozen.
func (m Model) Paused() bool {
	return m.paused
}

// IsGoingBack returns true if the user asked for the scoreboard.
func (m Model) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local session: a game with the
// scoreboard one key away.
func Run(cfg snake.Config, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) error {
	model, err := NewSessionModel(cfg, store, rc, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}

// OpenLogFile opens the log file used while the terminal is in the
// alternate screen. The caller closes it.
func OpenLogFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("tui: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open log file: %w", err)
	}
	return f, nil
}
