package prefetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dkaplan/sifria/internal/cache"
)

type fakeFetcher struct {
	indexes map[string]string
}

func (f *fakeFetcher) GetIndex(_ context.Context, title string) (json.RawMessage, error) {
	if doc, ok := f.indexes[title]; ok {
		return json.RawMessage(doc), nil
	}
	return nil, errors.New("unreachable")
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWarmerFillsCache(t *testing.T) {
	fetcher := &fakeFetcher{indexes: map[string]string{
		"Pirkei Avot": `{"title":"Pirkei Avot","schema":{"nodeType":"JaggedArrayNode","sectionNames":["Chapter","Mishnah"]}}`,
	}}
	store := cache.NewStore(time.Hour)
	w := New(fetcher, store, discard(), 2, 8)

	w.Start(context.Background())
	if err := w.Submit("Pirkei Avot"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := w.Submit("Missing Text"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	w.Stop()

	contents, ok := store.Contents("Pirkei Avot")
	if !ok {
		t.Fatal("expected warmed outline for Pirkei Avot")
	}
	if len(contents) != 1 || len(contents[0].Children) != 6 {
		t.Errorf("unexpected outline shape: %d roots", len(contents))
	}
	if _, ok := store.Contents("Missing Text"); ok {
		t.Error("failed fetch must not populate the cache")
	}
}

func TestSubmitQueueFull(t *testing.T) {
	store := cache.NewStore(time.Hour)
	w := New(&fakeFetcher{}, store, discard(), 1, 1)
	// Not started: the single queue slot fills immediately.
	if err := w.Submit("A"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := w.Submit("B"); err == nil {
		t.Error("expected queue-full error")
	}
}
