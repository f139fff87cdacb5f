package snake

import (
	"errors"
	"testing"
	"time"
)

type recordingRenderer struct {
	clears int
	body   []Cell
	apple  Cell
}

func (r *recordingRenderer) Clear()                  { r.clears++ }
func (r *recordingRenderer) RenderSnake(body []Cell) { r.body = body }
func (r *recordingRenderer) RenderApple(apple Cell)  { r.apple = apple }

type memoryBestStore struct {
	best    int
	writes  []int
	loadErr error
	saveErr error
}

func (s *memoryBestStore) LoadBestScore() (int, error) {
	return s.best, s.loadErr
}

func (s *memoryBestStore) SaveBestScore(score int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.writes = append(s.writes, score)
	s.best = score
	return nil
}

func newTestSession(t *testing.T, store BestScoreStore, opts ...SessionOption) (*Session, *recordingRenderer) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 99
	r := &recordingRenderer{}
	s, err := NewSession(cfg, r, store, opts...)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s, r
}

func TestSessionRendersInitialState(t *testing.T) {
	s, r := newTestSession(t, nil)

	if r.clears != 1 {
		t.Errorf("Clear() called %d times, expected 1", r.clears)
	}
	if len(r.body) != 2 || r.body[0] != s.State().Head() {
		t.Errorf("initial snake not rendered: %v", r.body)
	}
	if r.apple != s.State().Apple() {
		t.Errorf("apple rendered at %v, expected %v", r.apple, s.State().Apple())
	}
}

func TestSessionFrameGate(t *testing.T) {
	s, r := newTestSession(t, nil)
	s.State().apple = Cell{X: 0, Y: 0}

	if _, ticked := s.OnFrame(time.Second); ticked {
		t.Fatal("frames before Start must not tick")
	}

	s.Start(0)
	if _, ticked := s.OnFrame(499 * time.Millisecond); ticked {
		t.Error("ticked before move delay elapsed")
	}
	result, ticked := s.OnFrame(500 * time.Millisecond)
	if !ticked || result != Continue {
		t.Fatalf("OnFrame(500ms) = %v, %v; expected continue, true", result, ticked)
	}
	if r.body[0] != (Cell{X: 6, Y: 5}) {
		t.Errorf("renderer not updated after tick: %v", r.body)
	}

	// Interval is measured from the previous tick, not from Start.
	if _, ticked := s.OnFrame(900 * time.Millisecond); ticked {
		t.Error("ticked 400ms after previous tick")
	}
	if _, ticked := s.OnFrame(1000 * time.Millisecond); !ticked {
		t.Error("expected a tick 500ms after previous tick")
	}
	if s.State().Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", s.State().Ticks())
	}
}

func TestSessionUsesRampedDelay(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Start(0)

	appleAhead(s.State())
	if result, _ := s.OnFrame(500 * time.Millisecond); result != AppleEaten {
		t.Fatalf("expected apple eaten, got %v", result)
	}
	s.State().apple = Cell{X: 0, Y: 0}

	// 480ms after the previous tick is enough at the new speed.
	if _, ticked := s.OnFrame(980 * time.Millisecond); !ticked {
		t.Error("expected tick at the ramped delay")
	}
}

func TestSessionPersistsOnlyStrictlyHigherBest(t *testing.T) {
	store := &memoryBestStore{best: 3}
	s, _ := newTestSession(t, store)

	if s.State().BestScore() != 3 {
		t.Fatalf("BestScore() = %d, expected loaded 3", s.State().BestScore())
	}

	s.Start(0)
	ts := time.Duration(0)
	for i := 1; i <= 4; i++ {
		appleAhead(s.State())
		ts += time.Second
		if result, _ := s.OnFrame(ts); result != AppleEaten {
			t.Fatalf("apple %d: got %v", i, result)
		}
		if i <= 3 && len(store.writes) != 0 {
			t.Fatalf("score %d should not be written, writes=%v", i, store.writes)
		}
	}

	if len(store.writes) != 1 || store.writes[0] != 4 {
		t.Errorf("writes = %v, expected [4]", store.writes)
	}
}

func TestSessionStoreFailuresAreTolerated(t *testing.T) {
	store := &memoryBestStore{loadErr: errors.New("disk gone"), saveErr: errors.New("read-only")}
	s, _ := newTestSession(t, store)

	if s.State().BestScore() != 0 {
		t.Errorf("BestScore() = %d, expected 0", s.State().BestScore())
	}

	s.Start(0)
	appleAhead(s.State())
	if result, _ := s.OnFrame(time.Second); result != AppleEaten {
		t.Fatalf("expected apple eaten, got %v", result)
	}
	if s.State().BestScore() != 1 {
		t.Errorf("in-memory best = %d, expected 1", s.State().BestScore())
	}
}

func TestSessionStopsOnGameOver(t *testing.T) {
	var finished []Snapshot
	s, r := newTestSession(t, nil, WithGameOverHook(func(snap Snapshot) {
		finished = append(finished, snap)
	}))

	st := s.State()
	st.body = []Cell{{X: 9, Y: 5}, {X: 8, Y: 5}}
	st.apple = Cell{X: 0, Y: 0}

	s.Start(0)
	result, ticked := s.OnFrame(time.Second)
	if !ticked || result != GameOver {
		t.Fatalf("OnFrame() = %v, %v; expected game over", result, ticked)
	}
	if s.Running() {
		t.Error("session should stop after game over")
	}
	if len(finished) != 1 || finished[0].Status != StatusGameOver {
		t.Errorf("game over hook calls = %+v", finished)
	}
	if r.body[0] != (Cell{X: 9, Y: 5}) {
		t.Errorf("final frame should show the body before the crash, got %v", r.body)
	}

	if _, ticked := s.OnFrame(5 * time.Second); ticked {
		t.Error("frames after game over must not tick")
	}

	s.Restart(6 * time.Second)
	if !s.Running() || st.GameOver() {
		t.Fatal("Restart should start a fresh game")
	}
	if st.Head() != (Cell{X: 5, Y: 5}) {
		t.Errorf("Head() after restart = %v", st.Head())
	}
	if _, ticked := s.OnFrame(6*time.Second + DefaultInitialDelay); !ticked {
		t.Error("expected a tick after restart")
	}
}
