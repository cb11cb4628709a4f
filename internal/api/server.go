package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dkaplan/sifria/internal/bookmarks"
	"github.com/dkaplan/sifria/internal/cache"
	"github.com/dkaplan/sifria/internal/config"
	"github.com/dkaplan/sifria/internal/library"
	"github.com/dkaplan/sifria/internal/meditate"
	"github.com/dkaplan/sifria/internal/navigate"
	"github.com/dkaplan/sifria/internal/settings"
)

// Server is the HTTP API for the reading service.
type Server struct {
	router    chi.Router
	client    *library.Client
	nav       *navigate.Navigator
	outlines  *cache.Store
	bookmarks *bookmarks.Store
	settings  *settings.Store
	sessions  *meditate.Manager
	log       *slog.Logger
	cfg       config.Config
}

// Deps bundles the collaborators the server routes to.
type Deps struct {
	Client    *library.Client
	Navigator *navigate.Navigator
	Outlines  *cache.Store
	Bookmarks *bookmarks.Store
	Settings  *settings.Store
	Sessions  *meditate.Manager
}

// NewServer creates and configures the HTTP server.
func NewServer(deps Deps, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		client:    deps.Client,
		nav:       deps.Navigator,
		outlines:  deps.Outlines,
		bookmarks: deps.Bookmarks,
		settings:  deps.Settings,
		sessions:  deps.Sessions,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/texts/{title}/contents", s.handleContents)
		r.Post("/api/texts/{title}/contents/toggle", s.handleToggle)
		r.Get("/api/texts/{title}/contents/resolve", s.handleResolve)
		r.Get("/api/texts/{title}/export", s.handleExport)

		r.Get("/api/text", s.handleText)
		r.Get("/api/navigate", s.handleNavigate)

		r.Route("/api/bookmarks", func(r chi.Router) {
			r.Get("/", s.handleListBookmarks)
			r.Post("/", s.handleCreateBookmark)
			r.Get("/{bookmarkID}", s.handleGetBookmark)
			r.Delete("/{bookmarkID}", s.handleDeleteBookmark)
		})

		r.Get("/api/settings/{user}", s.handleGetSettings)
		r.Put("/api/settings/{user}", s.handlePutSettings)

		r.Route("/api/meditation", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/{sessionID}", s.handleGetSession)
			r.Post("/{sessionID}/pause", s.handlePauseSession)
			r.Post("/{sessionID}/resume", s.handleResumeSession)
			r.Post("/{sessionID}/stop", s.handleStopSession)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
