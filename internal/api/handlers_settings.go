package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkaplan/sifria/internal/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	if user == "" {
		jsonError(w, "user is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.settings.Get(user))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	if user == "" {
		jsonError(w, "user is required", http.StatusBadRequest)
		return
	}

	var req settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.settings.Put(user, req); err != nil {
		if verr := req.Validate(); verr != nil {
			jsonError(w, verr.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("settings save failed", "user", user, "error", err)
		jsonError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
