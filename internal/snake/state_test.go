package snake

import (
	"slices"
	"testing"
	"time"
)

func newTestGame(t *testing.T, mutate func(*Config)) *GameState {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

// appleAhead puts the apple directly in front of the head.
func appleAhead(g *GameState) {
	dx, dy := g.pending.Delta()
	g.apple = g.body[0].Add(dx, dy)
}

func TestNewSpawnsClassicSnake(t *testing.T) {
	g := newTestGame(t, nil)

	want := []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}}
	if !slices.Equal(g.Body(), want) {
		t.Errorf("Body() = %v, expected %v", g.Body(), want)
	}
	if g.Direction() != DirRight {
		t.Errorf("Direction() = %v, expected right", g.Direction())
	}
	if slices.Contains(g.Body(), g.Apple()) {
		t.Errorf("apple %v spawned on snake", g.Apple())
	}
	if g.MoveDelay() != DefaultInitialDelay {
		t.Errorf("MoveDelay() = %s, expected %s", g.MoveDelay(), DefaultInitialDelay)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"board too narrow", func(c *Config) { c.Width = 2 }},
		{"board too short", func(c *Config) { c.Height = 1 }},
		{"zero initial delay", func(c *Config) { c.InitialDelay = 0 }},
		{"negative decrement", func(c *Config) { c.DelayDecrement = -time.Millisecond }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestTickAppleScenario(t *testing.T) {
	g := newTestGame(t, nil)
	g.apple = Cell{X: 6, Y: 5}

	if got := g.Tick(); got != AppleEaten {
		t.Fatalf("Tick() = %v, expected %v", got, AppleEaten)
	}

	want := []Cell{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	if !slices.Equal(g.Body(), want) {
		t.Errorf("Body() = %v, expected %v", g.Body(), want)
	}
	if g.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", g.Score())
	}
	if slices.Contains(g.Body(), g.Apple()) {
		t.Errorf("respawned apple %v overlaps snake", g.Apple())
	}
	if !g.Board().Contains(g.Apple()) {
		t.Errorf("respawned apple %v outside board", g.Apple())
	}
	if g.MoveDelay() != DefaultInitialDelay-DefaultDelayDecrement {
		t.Errorf("MoveDelay() = %s, expected %s", g.MoveDelay(), DefaultInitialDelay-DefaultDelayDecrement)
	}
}

func TestTickMoveKeepsLength(t *testing.T) {
	g := newTestGame(t, nil)
	g.body = []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	g.apple = Cell{X: 0, Y: 0}

	before := g.Body()
	if got := g.Tick(); got != Continue {
		t.Fatalf("Tick() = %v, expected %v", got, Continue)
	}

	after := g.Body()
	if len(after) != len(before) {
		t.Fatalf("length changed from %d to %d", len(before), len(after))
	}
	if after[0] != (Cell{X: 6, Y: 5}) {
		t.Errorf("head = %v, expected (6,5)", after[0])
	}
	if !slices.Equal(after[1:], before[:len(before)-1]) {
		t.Errorf("body did not shift: before %v, after %v", before, after)
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", g.Score())
	}
}

func TestTickWallDeath(t *testing.T) {
	tests := []struct {
		name string
		body []Cell
		dir  Direction
	}{
		{"right edge", []Cell{{X: 9, Y: 5}, {X: 8, Y: 5}}, DirRight},
		{"left edge", []Cell{{X: 0, Y: 5}, {X: 1, Y: 5}}, DirLeft},
		{"top edge", []Cell{{X: 3, Y: 0}, {X: 3, Y: 1}}, DirUp},
		{"bottom edge", []Cell{{X: 3, Y: 9}, {X: 3, Y: 8}}, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, nil)
			g.body = slices.Clone(tc.body)
			g.direction, g.pending = tc.dir, tc.dir
			g.apple = Cell{X: 5, Y: 5}

			if got := g.Tick(); got != GameOver {
				t.Fatalf("Tick() = %v, expected %v", got, GameOver)
			}
			if !g.GameOver() {
				t.Error("GameOver() should be true")
			}
			if !slices.Equal(g.Body(), tc.body) {
				t.Errorf("body changed on game over: %v, expected %v", g.Body(), tc.body)
			}
		})
	}
}

func TestTickWrapAround(t *testing.T) {
	tests := []struct {
		name string
		body []Cell
		dir  Direction
		head Cell
	}{
		{"right edge", []Cell{{X: 9, Y: 5}, {X: 8, Y: 5}}, DirRight, Cell{X: 0, Y: 5}},
		{"left edge", []Cell{{X: 0, Y: 5}, {X: 1, Y: 5}}, DirLeft, Cell{X: 9, Y: 5}},
		{"top edge", []Cell{{X: 3, Y: 0}, {X: 3, Y: 1}}, DirUp, Cell{X: 3, Y: 9}},
		{"bottom edge", []Cell{{X: 3, Y: 9}, {X: 3, Y: 8}}, DirDown, Cell{X: 3, Y: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, func(c *Config) { c.Boundary = Wrap })
			g.body = slices.Clone(tc.body)
			g.direction, g.pending = tc.dir, tc.dir
			g.apple = Cell{X: 5, Y: 5}

			if got := g.Tick(); got != Continue {
				t.Fatalf("Tick() = %v, expected %v", got, Continue)
			}
			if g.Head() != tc.head {
				t.Errorf("Head() = %v, expected %v", g.Head(), tc.head)
			}
		})
	}
}

func TestWrapStaysInBounds(t *testing.T) {
	g := newTestGame(t, func(c *Config) {
		c.Boundary = Wrap
		c.Width = 7
		c.Height = 4
	})

	dirs := []Direction{DirRight, DirDown, DirLeft, DirUp}
	for i := range 200 {
		g.SetDirection(dirs[(i/9)%len(dirs)])
		if g.Tick() == GameOver {
			g.Reset()
			continue
		}
		for _, c := range g.Body() {
			if !g.Board().Contains(c) {
				t.Fatalf("tick %d: cell %v out of bounds", i, c)
			}
		}
	}
}

func TestTickSelfCollision(t *testing.T) {
	body := []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}}

	g := newTestGame(t, nil)
	g.body = slices.Clone(body)
	g.apple = Cell{X: 0, Y: 0}

	if !g.SetDirection(DirDown) {
		t.Fatal("SetDirection(down) should be accepted")
	}
	if got := g.Tick(); got != GameOver {
		t.Fatalf("Tick() = %v, expected %v", got, GameOver)
	}
	if !slices.Equal(g.Body(), body) {
		t.Errorf("body changed on game over: %v", g.Body())
	}
}

func TestTailFollow(t *testing.T) {
	body := []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}}

	g := newTestGame(t, func(c *Config) { c.TailFollow = true })
	g.body = slices.Clone(body)
	g.apple = Cell{X: 0, Y: 0}
	g.SetDirection(DirDown)

	if got := g.Tick(); got != Continue {
		t.Fatalf("Tick() = %v, expected %v", got, Continue)
	}
	want := []Cell{{X: 5, Y: 6}, {X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}}
	if !slices.Equal(g.Body(), want) {
		t.Errorf("Body() = %v, expected %v", g.Body(), want)
	}

	// The tail stays put while growing, so entering it is fatal.
	g = newTestGame(t, func(c *Config) { c.TailFollow = true })
	g.body = slices.Clone(body)
	g.apple = Cell{X: 5, Y: 6}
	g.SetDirection(DirDown)
	if got := g.Tick(); got != GameOver {
		t.Errorf("Tick() into growing tail = %v, expected %v", got, GameOver)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, nil)

	if g.SetDirection(DirLeft) {
		t.Error("reversal from right to left should be refused")
	}
	if g.PendingDirection() != DirRight {
		t.Errorf("PendingDirection() = %v, expected right", g.PendingDirection())
	}

	// Up is accepted, but left is still the reverse of the applied direction.
	g.SetDirection(DirUp)
	if g.SetDirection(DirLeft) {
		t.Error("left should be refused until a tick applies up")
	}
	if g.PendingDirection() != DirUp {
		t.Errorf("PendingDirection() = %v, expected up", g.PendingDirection())
	}
}

func TestAllowReverse(t *testing.T) {
	g := newTestGame(t, func(c *Config) { c.AllowReverse = true })
	g.body = []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}

	if !g.SetDirection(DirLeft) {
		t.Fatal("SetDirection(left) should be accepted when reversal is allowed")
	}
	if got := g.Tick(); got != GameOver {
		t.Errorf("reversing into the neck = %v, expected %v", got, GameOver)
	}
}

func TestLastDirectionWins(t *testing.T) {
	g := newTestGame(t, nil)
	g.apple = Cell{X: 0, Y: 0}

	g.SetDirection(DirUp)
	g.SetDirection(DirDown)
	g.Tick()

	if g.Head() != (Cell{X: 5, Y: 6}) {
		t.Errorf("Head() = %v, expected (5,6)", g.Head())
	}
	if g.Direction() != DirDown {
		t.Errorf("Direction() = %v, expected down", g.Direction())
	}
}

func TestTickAfterGameOverIsNoop(t *testing.T) {
	g := newTestGame(t, nil)
	g.body = []Cell{{X: 9, Y: 5}, {X: 8, Y: 5}}
	g.Tick()

	snap := g.Snapshot()
	if got := g.Tick(); got != GameOver {
		t.Errorf("Tick() = %v, expected %v", got, GameOver)
	}
	if g.Ticks() != snap.Tick {
		t.Errorf("Ticks() advanced after game over: %d -> %d", snap.Tick, g.Ticks())
	}
	if g.SetDirection(DirUp) {
		t.Error("SetDirection should be refused after game over")
	}
}

func TestGrowthIncrementsLengthAndScore(t *testing.T) {
	g := newTestGame(t, nil)

	for i := 1; i <= 3; i++ {
		lenBefore := g.Len()
		appleAhead(g)
		if got := g.Tick(); got != AppleEaten {
			t.Fatalf("apple %d: Tick() = %v", i, got)
		}
		if g.Len() != lenBefore+1 {
			t.Errorf("apple %d: length %d, expected %d", i, g.Len(), lenBefore+1)
		}
		if g.Score() != i {
			t.Errorf("apple %d: score %d", i, g.Score())
		}
		if slices.Contains(g.Body(), g.Apple()) {
			t.Errorf("apple %d: respawned on snake", i)
		}
	}
}

func TestMoveDelayRamp(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		apples int
		want   time.Duration
	}{
		{
			name:   "decrements per apple",
			mutate: nil,
			apples: 3,
			want:   440 * time.Millisecond,
		},
		{
			name: "clamped at configured minimum",
			mutate: func(c *Config) {
				c.Boundary = Wrap
				c.InitialDelay = 100 * time.Millisecond
				c.DelayDecrement = 30 * time.Millisecond
				c.MinDelay = 50 * time.Millisecond
			},
			apples: 4,
			want:   50 * time.Millisecond,
		},
		{
			name: "minimum never below hard floor",
			mutate: func(c *Config) {
				c.Boundary = Wrap
				c.InitialDelay = 50 * time.Millisecond
				c.DelayDecrement = 40 * time.Millisecond
				c.MinDelay = 0
			},
			apples: 2,
			want:   FloorDelay,
		},
		{
			name:   "ramp disabled",
			mutate: func(c *Config) { c.DelayDecrement = 0 },
			apples: 3,
			want:   DefaultInitialDelay,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, tc.mutate)
			for range tc.apples {
				appleAhead(g)
				if got := g.Tick(); got != AppleEaten {
					t.Fatalf("Tick() = %v, expected %v", got, AppleEaten)
				}
			}
			if g.MoveDelay() != tc.want {
				t.Errorf("MoveDelay() = %s, expected %s", g.MoveDelay(), tc.want)
			}
		})
	}
}

func TestBestScoreIsRunningMaximum(t *testing.T) {
	g := newTestGame(t, nil)
	g.SetBestScore(2)

	for range 3 {
		appleAhead(g)
		g.Tick()
	}
	if g.BestScore() != 3 {
		t.Errorf("BestScore() = %d, expected 3", g.BestScore())
	}

	g.Reset()
	if g.Score() != 0 {
		t.Errorf("Score() after reset = %d, expected 0", g.Score())
	}
	if g.BestScore() != 3 {
		t.Errorf("BestScore() after reset = %d, expected 3", g.BestScore())
	}

	g.SetBestScore(1)
	if g.BestScore() != 3 {
		t.Errorf("SetBestScore should not lower the best, got %d", g.BestScore())
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	g := newTestGame(t, nil)
	appleAhead(g)
	g.Tick()
	g.SetDirection(DirUp)
	g.body = []Cell{{X: 9, Y: 0}, {X: 9, Y: 1}}
	g.Tick()
	if !g.GameOver() {
		t.Fatal("expected game over")
	}

	g.Reset()
	if g.GameOver() {
		t.Error("GameOver() should be false after reset")
	}
	if g.Len() != 2 || g.Head() != (Cell{X: 5, Y: 5}) {
		t.Errorf("snake not respawned: %v", g.Body())
	}
	if g.MoveDelay() != DefaultInitialDelay {
		t.Errorf("MoveDelay() = %s, expected %s", g.MoveDelay(), DefaultInitialDelay)
	}
	if g.Ticks() != 0 {
		t.Errorf("Ticks() = %d, expected 0", g.Ticks())
	}
}

func TestFillingBoardWins(t *testing.T) {
	g := newTestGame(t, func(c *Config) {
		c.Width = 3
		c.Height = 3
	})
	// Snake covers everything except (2,0), where the apple sits.
	g.body = []Cell{
		{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	g.apple = Cell{X: 2, Y: 0}

	if got := g.Tick(); got != AppleEaten {
		t.Fatalf("Tick() = %v, expected %v", got, AppleEaten)
	}
	if !g.GameOver() || !g.Won() {
		t.Errorf("GameOver()=%v Won()=%v, expected both true", g.GameOver(), g.Won())
	}
	if g.Snapshot().Status != StatusWon {
		t.Errorf("Status = %s, expected %s", g.Snapshot().Status, StatusWon)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boundary = Wrap
	cfg.Seed = 12345

	g1, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g2, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	inputs := map[int]Direction{5: DirDown, 9: DirLeft, 14: DirUp, 20: DirRight}
	for i := range 100 {
		if d, ok := inputs[i%25]; ok {
			g1.SetDirection(d)
			g2.SetDirection(d)
		}
		r1, r2 := g1.Tick(), g2.Tick()
		if r1 != r2 {
			t.Fatalf("tick %d: results diverged: %v vs %v", i, r1, r2)
		}
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Score != s2.Score || s1.Apple != s2.Apple || s1.Dir != s2.Dir {
		t.Errorf("snapshots diverged: %+v vs %+v", s1, s2)
	}
	if !slices.Equal(s1.Body, s2.Body) {
		t.Errorf("bodies diverged: %v vs %v", s1.Body, s2.Body)
	}
}
