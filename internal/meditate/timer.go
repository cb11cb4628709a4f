// Package meditate tracks meditation timer sessions. Sessions live in
// memory; clients poll for remaining time and completion.
package meditate

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase is a session's lifecycle state.
type Phase string

const (
	PhaseRunning   Phase = "running"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
	PhaseStopped   Phase = "stopped"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrBadTransition = errors.New("invalid session transition")
)

type session struct {
	id       string
	duration time.Duration
	phase    Phase
	elapsed  time.Duration // accumulated while running, frozen on pause/stop
	resumed  time.Time     // start of the current running stretch
	updated  time.Time
}

// Snapshot is the JSON-safe view of a session.
type Snapshot struct {
	ID        string        `json:"id"`
	Duration  time.Duration `json:"duration"`
	Remaining time.Duration `json:"remaining"`
	Phase     Phase         `json:"phase"`
}

// Manager owns all sessions. The zero clock is real time; tests substitute
// their own.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start begins a new session of the given duration.
func (m *Manager) Start(d time.Duration) (Snapshot, error) {
	if d <= 0 {
		return Snapshot{}, errors.New("duration must be positive")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	s := &session{
		id:       uuid.NewString(),
		duration: d,
		phase:    PhaseRunning,
		resumed:  now,
		updated:  now,
	}
	m.sessions[s.id] = s
	return m.snapshotLocked(s), nil
}

// Pause freezes a running session.
func (m *Manager) Pause(id string) (Snapshot, error) {
	return m.transition(id, PhaseRunning, func(s *session, now time.Time) {
		s.elapsed += now.Sub(s.resumed)
		s.phase = PhasePaused
	})
}

// Resume continues a paused session.
func (m *Manager) Resume(id string) (Snapshot, error) {
	return m.transition(id, PhasePaused, func(s *session, now time.Time) {
		s.resumed = now
		s.phase = PhaseRunning
	})
}

// Stop ends a session early.
func (m *Manager) Stop(id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	now := m.now()
	m.settleLocked(s, now)
	if s.phase == PhaseRunning || s.phase == PhasePaused {
		if s.phase == PhaseRunning {
			s.elapsed += now.Sub(s.resumed)
		}
		s.phase = PhaseStopped
	}
	s.updated = now
	return m.snapshotLocked(s), nil
}

// Get returns the current view of a session.
func (m *Manager) Get(id string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Snapshot{}, false
	}
	m.settleLocked(s, m.now())
	return m.snapshotLocked(s), true
}

// Cleanup removes sessions that have not been touched within the TTL.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, s := range m.sessions {
		if now.Sub(s.updated) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) transition(id string, from Phase, apply func(*session, time.Time)) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	now := m.now()
	m.settleLocked(s, now)
	if s.phase != from {
		return Snapshot{}, ErrBadTransition
	}
	apply(s, now)
	s.updated = now
	return m.snapshotLocked(s), nil
}

// settleLocked promotes a running session whose time ran out to completed.
func (m *Manager) settleLocked(s *session, now time.Time) {
	if s.phase != PhaseRunning {
		return
	}
	if s.elapsed+now.Sub(s.resumed) >= s.duration {
		s.elapsed = s.duration
		s.phase = PhaseCompleted
		s.updated = now
	}
}

func (m *Manager) snapshotLocked(s *session) Snapshot {
	elapsed := s.elapsed
	if s.phase == PhaseRunning {
		elapsed += m.now().Sub(s.resumed)
	}
	remaining := s.duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		ID:        s.id,
		Duration:  s.duration,
		Remaining: remaining,
		Phase:     s.phase,
	}
}
