package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkaplan/sifria/internal/api"
	"github.com/dkaplan/sifria/internal/bookmarks"
	"github.com/dkaplan/sifria/internal/cache"
	"github.com/dkaplan/sifria/internal/config"
	"github.com/dkaplan/sifria/internal/library"
	"github.com/dkaplan/sifria/internal/meditate"
	"github.com/dkaplan/sifria/internal/navigate"
	"github.com/dkaplan/sifria/internal/prefetch"
	"github.com/dkaplan/sifria/internal/settings"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sifria server",
	Long: `Start the sifria HTTP server.

Configuration comes from the environment (LIBRARY_URL, DATA_DIR,
SIFRIA_API_KEY, PREFETCH_TITLES, ...); the --port flag overrides PORT.
The server shuts down cleanly on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		cfg := config.Load()
		if servePort != "" {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return err
		}
		bm, err := bookmarks.Open(filepath.Join(cfg.DataDir, "bookmarks.json"))
		if err != nil {
			return err
		}
		st, err := settings.Open(filepath.Join(cfg.DataDir, "settings.json"))
		if err != nil {
			return err
		}

		client := library.NewClient(cfg.LibraryURL, cfg.RequestTimeout)
		defer client.Close()

		outlines := cache.NewStore(cfg.CacheTTL)
		sessions := meditate.NewManager(cfg.SessionTTL)

		warmer := prefetch.New(client, outlines, log, cfg.WorkerCount, cfg.QueueSize)
		warmer.Start(ctx)
		for _, title := range cfg.PrefetchTitles {
			if err := warmer.Submit(title); err != nil {
				log.Warn("prefetch submit failed", "title", title, "error", err)
			}
		}

		// Expired meditation sessions are swept on the same cadence as the
		// outline cache.
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					sessions.Cleanup()
				}
			}
		}()

		srv := api.NewServer(api.Deps{
			Client:    client,
			Navigator: navigate.New(client),
			Outlines:  outlines,
			Bookmarks: bm,
			Settings:  st,
			Sessions:  sessions,
		}, log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			log.Info("shutting down...")

			warmer.Stop()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting sifria", "port", cfg.Port, "library", cfg.LibraryURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides PORT)")
}
