// Package bookmarks keeps per-user reading bookmarks, persisted as a JSON
// file under the data directory.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Bookmark marks a reading location, optionally annotated with a markdown
// note.
type Bookmark struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Ref       string    `json:"ref"`
	Title     string    `json:"title,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a thread-safe bookmark registry backed by a single JSON file.
type Store struct {
	mu    sync.Mutex
	path  string
	items map[string]Bookmark
}

// Open loads the store from path, creating an empty one if the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		items: make(map[string]Bookmark),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	var list []Bookmark
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	for _, b := range list {
		s.items[b.ID] = b
	}
	return s, nil
}

// Add stores a new bookmark, assigning its ID and creation time.
func (s *Store) Add(b Bookmark) (Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	s.items[b.ID] = b
	if err := s.persistLocked(); err != nil {
		delete(s.items, b.ID)
		return Bookmark{}, err
	}
	return b, nil
}

// Get returns a bookmark by ID.
func (s *Store) Get(id string) (Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.items[id]
	return b, ok
}

// Delete removes a bookmark and reports whether it existed.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.items[id]
	if !ok {
		return false, nil
	}
	delete(s.items, id)
	if err := s.persistLocked(); err != nil {
		s.items[id] = b
		return false, err
	}
	return true, nil
}

// ListByUser returns a user's bookmarks, newest first.
func (s *Store) ListByUser(user string) []Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Bookmark{}
	for _, b := range s.items {
		if b.User == user {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// persistLocked writes the full bookmark list atomically: temp file in the
// same directory, then rename.
func (s *Store) persistLocked() error {
	list := make([]Bookmark, 0, len(s.items))
	for _, b := range s.items {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookmarks-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace bookmarks: %w", err)
	}
	return nil
}
