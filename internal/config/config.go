package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Upstream texts API
	LibraryURL     string
	RequestTimeout time.Duration

	// Auth (optional; empty disables the auth middleware)
	APIKey string

	// Local persistence
	DataDir string

	// Outline cache
	CacheTTL time.Duration

	// Prefetch pool
	PrefetchTitles []string
	WorkerCount    int
	QueueSize      int

	// Bookmarks
	MaxNoteBytes int

	// Meditation sessions
	SessionTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		LibraryURL:     envOr("LIBRARY_URL", "https://library.example.org"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),

		APIKey: os.Getenv("SIFRIA_API_KEY"),

		DataDir: envOr("DATA_DIR", "./data"),

		CacheTTL: envDuration("CACHE_TTL", 6*time.Hour),

		PrefetchTitles: envList("PREFETCH_TITLES"),
		WorkerCount:    envInt("WORKER_COUNT", 2),
		QueueSize:      envInt("QUEUE_SIZE", 32),

		MaxNoteBytes: envInt("MAX_NOTE_BYTES", 16384),

		SessionTTL: envDuration("SESSION_TTL", 12*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 32
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 6 * time.Hour
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxNoteBytes <= 0 {
		cfg.MaxNoteBytes = 16384
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.LibraryURL == "" {
		return fmt.Errorf("LIBRARY_URL is required")
	}
	if !strings.HasPrefix(c.LibraryURL, "http://") && !strings.HasPrefix(c.LibraryURL, "https://") {
		return fmt.Errorf("LIBRARY_URL must be an http(s) URL")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
