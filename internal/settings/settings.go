// Package settings keeps per-user reader display preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings are the reader display preferences for one user.
type Settings struct {
	FontScale       float64 `json:"font_scale"`
	Theme           string  `json:"theme"`
	LineSpacing     float64 `json:"line_spacing"`
	ShowTranslation bool    `json:"show_translation"`
}

var validThemes = map[string]bool{
	"light": true,
	"dark":  true,
	"sepia": true,
}

// Default returns the settings applied to users who never saved any.
func Default() Settings {
	return Settings{
		FontScale:       1.0,
		Theme:           "light",
		LineSpacing:     1.4,
		ShowTranslation: true,
	}
}

func (s Settings) Validate() error {
	if s.FontScale < 0.5 || s.FontScale > 3.0 {
		return fmt.Errorf("font_scale %.2f out of range [0.5, 3.0]", s.FontScale)
	}
	if !validThemes[s.Theme] {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if s.LineSpacing < 1.0 || s.LineSpacing > 2.5 {
		return fmt.Errorf("line_spacing %.2f out of range [1.0, 2.5]", s.LineSpacing)
	}
	return nil
}

// Store persists settings per user as a single JSON file.
type Store struct {
	mu     sync.Mutex
	path   string
	byUser map[string]Settings
}

func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		byUser: make(map[string]Settings),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s.byUser); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Get returns the user's settings, or the defaults if none were saved.
func (s *Store) Get(user string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if saved, ok := s.byUser[user]; ok {
		return saved
	}
	return Default()
}

// Put validates and saves the user's settings.
func (s *Store) Put(user string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.byUser[user]
	s.byUser[user] = settings
	if err := s.persistLocked(); err != nil {
		if had {
			s.byUser[user] = prev
		} else {
			delete(s.byUser, user)
		}
		return err
	}
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.byUser, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
