// Package cache holds normalized outlines between requests. The store is the
// single owner of per-outline expanded state: toggles go through it rather
// than through the forest directly.
package cache

import (
	"sync"
	"time"

	"github.com/dkaplan/sifria/internal/outline"
)

// Store is a thread-safe TTL cache of outline forests keyed by text title.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	contents  []*outline.Node
	fetchedAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put replaces the cached outline for a title. Expanded state of a previous
// forest is discarded with it.
func (s *Store) Put(title string, contents []*outline.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[title] = &entry{contents: contents, fetchedAt: s.now()}
}

// Contents returns the cached outline for a title, or false on a miss or an
// expired entry.
func (s *Store) Contents(title string) ([]*outline.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.liveEntry(title)
	if e == nil {
		return nil, false
	}
	return e.contents, true
}

// Toggle inverts the expanded flag of one node in a cached outline. The
// second return reports whether the title was cached at all.
func (s *Store) Toggle(title, nodeID string) (found, cached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.liveEntry(title)
	if e == nil {
		return false, false
	}
	return outline.Toggle(e.contents, nodeID), true
}

// Resolve computes the selection action for one node in a cached outline.
func (s *Store) Resolve(title, nodeID string) (outline.Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.liveEntry(title)
	if e == nil {
		return outline.Action{}, false
	}
	n := outline.Find(e.contents, nodeID)
	if n == nil {
		return outline.Action{}, false
	}
	return outline.Resolve(n), true
}

// Cleanup evicts expired entries.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for title, e := range s.entries {
		if now.Sub(e.fetchedAt) > s.ttl {
			delete(s.entries, title)
		}
	}
}

// Len returns the number of cached outlines, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) liveEntry(title string) *entry {
	e := s.entries[title]
	if e == nil {
		return nil
	}
	if s.now().Sub(e.fetchedAt) > s.ttl {
		return nil
	}
	return e
}
