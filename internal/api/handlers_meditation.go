package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkaplan/sifria/internal/meditate"
)

// sessionJSON reports durations in whole seconds for clients.
type sessionJSON struct {
	ID               string         `json:"id"`
	Phase            meditate.Phase `json:"phase"`
	DurationSeconds  int64          `json:"duration_seconds"`
	RemainingSeconds int64          `json:"remaining_seconds"`
}

func renderSession(snap meditate.Snapshot) sessionJSON {
	return sessionJSON{
		ID:               snap.ID,
		Phase:            snap.Phase,
		DurationSeconds:  int64(snap.Duration / time.Second),
		RemainingSeconds: int64((snap.Remaining + time.Second - 1) / time.Second),
	}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DurationSeconds int64 `json:"duration_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.sessions.Start(time.Duration(req.DurationSeconds) * time.Second)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, renderSession(snap))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	snap, ok := s.sessions.Get(id)
	if !ok {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, renderSession(snap))
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.sessions.Pause)
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.sessions.Resume)
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.sessions.Stop)
}

func (s *Server) sessionTransition(w http.ResponseWriter, r *http.Request, op func(string) (meditate.Snapshot, error)) {
	id := chi.URLParam(r, "sessionID")
	snap, err := op(id)
	if err != nil {
		switch {
		case errors.Is(err, meditate.ErrNotFound):
			jsonError(w, "session not found", http.StatusNotFound)
		case errors.Is(err, meditate.ErrBadTransition):
			jsonError(w, "session is not in a state that allows this", http.StatusConflict)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, renderSession(snap))
}
