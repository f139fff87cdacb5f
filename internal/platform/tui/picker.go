package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// BoardSize is one entry of the board size list.
type BoardSize struct {
	Name   string
	Width  int
	Height int
}

// BoardSizes are the sizes offered by the picker.
var BoardSizes = []BoardSize{
	{Name: "Classic", Width: 10, Height: 10},
	{Name: "Medium", Width: 20, Height: 15},
	{Name: "Large", Width: 30, Height: 20},
	{Name: "Huge", Width: 40, Height: 25},
}

var boundaryChoices = []struct {
	label  string
	policy snake.BoundaryPolicy
}{
	{"Walls (hitting the edge ends the game)", snake.WallDeath},
	{"Wrap-around (exit one side, enter the other)", snake.Wrap},
}

// BoardSelection holds the user's choice from the board picker.
type BoardSelection struct {
	Boundary snake.BoundaryPolicy
	Width    int
	Height   int
}

// Apply returns cfg with the selected board.
func (s BoardSelection) Apply(cfg snake.Config) snake.Config {
	cfg.Boundary = s.Boundary
	cfg.Width = s.Width
	cfg.Height = s.Height
	return cfg
}

// BoardPickerModel lets users choose the boundary rule and then a board size.
type BoardPickerModel struct {
	cursor       int
	sizeCursor   int
	inSizeSelect bool
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    BoardSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewBoardPickerModel creates a picker with the cursor on the first entries.
func NewBoardPickerModel(width, height int) BoardPickerModel {
	return BoardPickerModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m BoardPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BoardPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m BoardPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inSizeSelect {
		return m.handleSizeKey(action)
	}
	return m.handleBoundaryKey(action)
}

func (m BoardPickerModel) handleBoundaryKey(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(boundaryChoices)-1 {
			m.cursor++
		}
	case core.ActionConfirm, core.ActionRight:
		m.selection.Boundary = boundaryChoices[m.cursor].policy
		m.inSizeSelect = true
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BoardPickerModel) handleSizeKey(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionUp:
		if m.sizeCursor > 0 {
			m.sizeCursor--
		}
	case core.ActionDown:
		if m.sizeCursor < len(BoardSizes)-1 {
			m.sizeCursor++
		}
	case core.ActionConfirm:
		size := BoardSizes[m.sizeCursor]
		m.selection.Width = size.Width
		m.selection.Height = size.Height
		m.choosing = false
		return m, tea.Quit
	case core.ActionBack, core.ActionLeft:
		m.inSizeSelect = false
	}
	return m, nil
}

// View renders the current picker step.
func (m BoardPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")

	if m.inSizeSelect {
		b.WriteString(centerText("Board size:", m.width))
		b.WriteString("\n\n")
		for i, size := range BoardSizes {
			line := fmt.Sprintf("%s%-8s %dx%d", cursorMark(i == m.sizeCursor), size.Name, size.Width, size.Height)
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Board edges:", m.width))
		b.WriteString("\n\n")
		for i, choice := range boundaryChoices {
			b.WriteString(centerText(cursorMark(i == m.cursor)+choice.label, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

func cursorMark(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

// Selected returns the selection, or nil if still choosing.
func (m BoardPickerModel) Selected() *BoardSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m BoardPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user backed out of the first step.
func (m BoardPickerModel) WantsBack() bool {
	return m.back
}

// RunBoardPicker runs the picker and returns the selection, or nil if the
// user left without choosing.
func RunBoardPicker(rc core.RuntimeConfig) (*BoardSelection, error) {
	p := tea.NewProgram(
		NewBoardPickerModel(rc.ScreenW, rc.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(BoardPickerModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
