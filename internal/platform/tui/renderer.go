package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Layout constants
const (
	cellCols   = 2 // Terminal columns per board cell, keeps cells roughly square
	hudRows    = 2 // Status line plus separator
	footerRows = 1 // Key help
)

// ScreenRenderer paints the game into a core.Screen. It implements
// snake.Renderer and remembers the last frame so the view can be repainted
// between ticks.
type ScreenRenderer struct {
	screen *core.Screen
	boardW int
	boardH int
	frame  core.Rect // Board outline in screen coordinates

	body     []snake.Cell
	apple    snake.Cell
	hasApple bool
}

// NewScreenRenderer creates a renderer for a boardW x boardH game.
func NewScreenRenderer(screen *core.Screen, boardW, boardH int) *ScreenRenderer {
	r := &ScreenRenderer{
		screen: screen,
		boardW: boardW,
		boardH: boardH,
	}
	r.Layout()
	return r
}

// Layout recomputes the board position after the screen was resized.
func (r *ScreenRenderer) Layout() {
	w := r.boardW*cellCols + 2
	h := r.boardH + 2
	r.frame = core.NewRect(max((r.screen.Width()-w)/2, 0), hudRows, w, h)
}

// Fits reports whether the whole board and HUD fit on the screen.
func (r *ScreenRenderer) Fits() bool {
	return r.screen.Width() >= r.frame.W && r.screen.Height() >= hudRows+r.frame.H+footerRows
}

// Clear implements snake.Renderer.
func (r *ScreenRenderer) Clear() {
	r.body = r.body[:0]
	r.hasApple = false
	r.Draw()
}

// RenderSnake implements snake.Renderer. body[0] is the head.
func (r *ScreenRenderer) RenderSnake(body []snake.Cell) {
	r.body = append(r.body[:0], body...)
	r.drawSnake()
}

// RenderApple implements snake.Renderer.
func (r *ScreenRenderer) RenderApple(apple snake.Cell) {
	r.apple = apple
	r.hasApple = true
	r.drawApple()
}

// Draw repaints the board from the last rendered frame.
func (r *ScreenRenderer) Draw() {
	r.screen.Clear()
	if !r.Fits() {
		r.screen.DrawTextCentered(r.screen.Height()/2-1, "Window too small", core.ColorYellow)
		r.screen.DrawTextCentered(r.screen.Height()/2, fmt.Sprintf("Need %dx%d", r.frame.W, hudRows+r.frame.H+footerRows), core.ColorGray)
		return
	}
	r.screen.DrawBox(r.frame, core.ColorGray)
	r.drawSnake()
	r.drawApple()
}

func (r *ScreenRenderer) drawSnake() {
	if !r.Fits() {
		return
	}
	for i := len(r.body) - 1; i >= 0; i-- {
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
		}
		r.fillCell(r.body[i], '█', '█', color)
	}
}

func (r *ScreenRenderer) drawApple() {
	if !r.hasApple || !r.Fits() {
		return
	}
	r.fillCell(r.apple, '(', ')', core.ColorBrightRed)
}

// fillCell paints one board cell. Cells outside the board are skipped.
func (r *ScreenRenderer) fillCell(c snake.Cell, left, right rune, color core.Color) {
	if c.X < 0 || c.X >= r.boardW || c.Y < 0 || c.Y >= r.boardH {
		return
	}
	x, y := r.ScreenPos(c)
	r.screen.SetColor(x, y, left, color)
	r.screen.SetColor(x+1, y, right, color)
}

// ScreenPos returns the screen column and row of a board cell's left half.
func (r *ScreenRenderer) ScreenPos(c snake.Cell) (x, y int) {
	return r.frame.X + 1 + c.X*cellCols, r.frame.Y + 1 + c.Y
}

// DrawHUD writes the status line and the key help footer.
func (r *ScreenRenderer) DrawHUD(score, best, length int, delay time.Duration, variant string) {
	hud := fmt.Sprintf(" Snake | Score: %d  Best: %d  Length: %d  Delay: %dms  [%s]",
		score, best, length, delay.Milliseconds(), variant)
	r.screen.DrawText(0, 0, hud, core.ColorBrightWhite)
	for x := range r.screen.Width() {
		r.screen.SetColor(x, 1, '─', core.ColorGray)
	}

	if !r.Fits() {
		return
	}
	help := "arrows/wasd move  p pause  r restart  b scores  q quit"
	r.screen.DrawTextCentered(r.frame.Bottom(), help, core.ColorGray)
}

// DrawOverlay draws a boxed message over the middle of the board.
func (r *ScreenRenderer) DrawOverlay(title, subtitle string, color core.Color) {
	if !r.Fits() {
		return
	}
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := r.frame.Centered(w, 5)
	r.screen.FillRect(box, ' ')
	r.screen.DrawBox(box, color)
	r.drawInBox(box, box.Y+1, title, color)
	r.drawInBox(box, box.Y+3, subtitle, core.ColorDefault)
}

func (r *ScreenRenderer) drawInBox(box core.Rect, y int, text string, color core.Color) {
	n := len([]rune(text))
	r.screen.DrawText(box.X+(box.W-n)/2, y, text, color)
}
