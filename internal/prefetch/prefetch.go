// Package prefetch warms the outline cache for a configured list of texts so
// first navigation does not wait on the upstream API.
package prefetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dkaplan/sifria/internal/cache"
	"github.com/dkaplan/sifria/internal/toc"
)

// Fetcher retrieves raw index documents.
type Fetcher interface {
	GetIndex(ctx context.Context, title string) (json.RawMessage, error)
}

// Warmer runs a small worker pool that fetches and normalizes indexes into
// the cache, and drives periodic cache eviction.
type Warmer struct {
	fetcher Fetcher
	store   *cache.Store
	log     *slog.Logger
	queue   chan string
	workers int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(fetcher Fetcher, store *cache.Store, log *slog.Logger, workers, queueSize int) *Warmer {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}
	return &Warmer{
		fetcher: fetcher,
		store:   store,
		log:     log,
		queue:   make(chan string, queueSize),
		workers: workers,
	}
}

// Start launches the worker goroutines and the cache cleanup ticker.
func (w *Warmer) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for title := range w.queue {
				w.warm(workerCtx, title)
			}
		}()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				w.store.Cleanup()
			}
		}
	}()
}

// Stop stops accepting titles, cancels outstanding fetches, and waits for
// the workers and the cleanup ticker to exit.
func (w *Warmer) Stop() {
	close(w.queue)
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// Submit queues a title for warming.
func (w *Warmer) Submit(title string) error {
	select {
	case w.queue <- title:
		return nil
	default:
		return fmt.Errorf("prefetch queue is full (%d)", cap(w.queue))
	}
}

func (w *Warmer) warm(ctx context.Context, title string) {
	log := w.log.With("title", title)

	raw, err := w.fetcher.GetIndex(ctx, title)
	if err != nil {
		log.Warn("prefetch fetch failed", "error", err)
		return
	}
	nodes, err := toc.Normalize(raw, title)
	if err != nil {
		log.Warn("prefetch normalize failed", "error", err)
		return
	}
	w.store.Put(title, nodes)
	log.Info("outline warmed", "nodes", len(nodes))
}
