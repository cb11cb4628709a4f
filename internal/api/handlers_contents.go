package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dkaplan/sifria/internal/library"
	"github.com/dkaplan/sifria/internal/outline"
	"github.com/dkaplan/sifria/internal/toc"
)

// contentsResponse distinguishes "this text has no structured outline"
// (available=false, still a 200) from upstream failures, which are reported
// as errors.
type contentsResponse struct {
	Title     string          `json:"title"`
	Available bool            `json:"available"`
	Contents  []*outline.Node `json:"contents"`
}

func (s *Server) handleContents(w http.ResponseWriter, r *http.Request) {
	title, ok := titleParam(w, r)
	if !ok {
		return
	}

	if contents, cached := s.outlines.Contents(title); cached {
		writeJSON(w, http.StatusOK, contentsResponse{
			Title:     title,
			Available: len(contents) > 0,
			Contents:  contents,
		})
		return
	}

	raw, err := s.client.GetIndex(r.Context(), title)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			jsonError(w, "unknown text: "+title, http.StatusNotFound)
			return
		}
		s.log.Error("index fetch failed", "title", title, "error", err)
		jsonError(w, "library unavailable", http.StatusBadGateway)
		return
	}

	contents, err := toc.Normalize(raw, title)
	if err != nil {
		s.log.Error("index unusable", "title", title, "error", err)
		jsonError(w, "library returned an unusable index", http.StatusBadGateway)
		return
	}
	s.outlines.Put(title, contents)

	writeJSON(w, http.StatusOK, contentsResponse{
		Title:     title,
		Available: len(contents) > 0,
		Contents:  contents,
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	title, ok := titleParam(w, r)
	if !ok {
		return
	}

	var req struct {
		NodeID string `json:"node_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NodeID == "" {
		jsonError(w, "node_id is required", http.StatusBadRequest)
		return
	}

	found, cached := s.outlines.Toggle(title, req.NodeID)
	if !cached {
		jsonError(w, "no contents loaded for text: "+title, http.StatusNotFound)
		return
	}
	if !found {
		jsonError(w, "unknown node id: "+req.NodeID, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"node_id": req.NodeID, "toggled": true})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	title, ok := titleParam(w, r)
	if !ok {
		return
	}
	nodeID := r.URL.Query().Get("node_id")
	if nodeID == "" {
		jsonError(w, "node_id is required", http.StatusBadRequest)
		return
	}

	action, ok := s.outlines.Resolve(title, nodeID)
	if !ok {
		jsonError(w, "unknown node id: "+nodeID, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, action)
}

// titleParam extracts and unescapes the {title} route parameter.
func titleParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "title")
	title, err := url.PathUnescape(raw)
	if err != nil || title == "" {
		jsonError(w, "invalid text title", http.StatusBadRequest)
		return "", false
	}
	return title, true
}
