package meditate

import (
	"errors"
	"testing"
	"time"
)

// fakeClock lets tests advance session time deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)}
	m := NewManager(time.Hour)
	m.now = clock.now
	return m, clock
}

func TestStartAndRemaining(t *testing.T) {
	m, clock := newTestManager()
	snap, err := m.Start(10 * time.Minute)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.Phase != PhaseRunning || snap.Remaining != 10*time.Minute {
		t.Errorf("start snapshot = %+v", snap)
	}

	clock.advance(4 * time.Minute)
	got, ok := m.Get(snap.ID)
	if !ok {
		t.Fatal("session vanished")
	}
	if got.Remaining != 6*time.Minute {
		t.Errorf("remaining = %s, want 6m", got.Remaining)
	}
}

func TestStartRejectsNonPositiveDuration(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.Start(0); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestPauseFreezesAndResumeContinues(t *testing.T) {
	m, clock := newTestManager()
	snap, _ := m.Start(10 * time.Minute)

	clock.advance(3 * time.Minute)
	paused, err := m.Pause(snap.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Phase != PhasePaused || paused.Remaining != 7*time.Minute {
		t.Errorf("paused snapshot = %+v", paused)
	}

	// Time passing while paused changes nothing.
	clock.advance(30 * time.Minute)
	got, _ := m.Get(snap.ID)
	if got.Remaining != 7*time.Minute {
		t.Errorf("remaining while paused = %s, want 7m", got.Remaining)
	}

	resumed, err := m.Resume(snap.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Phase != PhaseRunning {
		t.Errorf("resume phase = %s", resumed.Phase)
	}
	clock.advance(2 * time.Minute)
	got, _ = m.Get(snap.ID)
	if got.Remaining != 5*time.Minute {
		t.Errorf("remaining after resume = %s, want 5m", got.Remaining)
	}
}

func TestSessionCompletes(t *testing.T) {
	m, clock := newTestManager()
	snap, _ := m.Start(10 * time.Minute)

	clock.advance(11 * time.Minute)
	got, _ := m.Get(snap.ID)
	if got.Phase != PhaseCompleted || got.Remaining != 0 {
		t.Errorf("expected completed with 0 remaining, got %+v", got)
	}

	// A completed session can no longer be paused.
	if _, err := m.Pause(snap.ID); !errors.Is(err, ErrBadTransition) {
		t.Errorf("pause after completion: %v", err)
	}
}

func TestStop(t *testing.T) {
	m, clock := newTestManager()
	snap, _ := m.Start(10 * time.Minute)

	clock.advance(2 * time.Minute)
	stopped, err := m.Stop(snap.ID)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.Phase != PhaseStopped || stopped.Remaining != 8*time.Minute {
		t.Errorf("stopped snapshot = %+v", stopped)
	}
}

func TestTransitionErrors(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.Pause("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("pause missing: %v", err)
	}
	snap, _ := m.Start(time.Minute)
	if _, err := m.Resume(snap.ID); !errors.Is(err, ErrBadTransition) {
		t.Errorf("resume running session: %v", err)
	}
}

func TestCleanup(t *testing.T) {
	m, clock := newTestManager()
	snap, _ := m.Start(time.Minute)

	clock.advance(2 * time.Hour)
	m.Cleanup()
	if _, ok := m.Get(snap.ID); ok {
		t.Error("expected stale session to be evicted")
	}
}
