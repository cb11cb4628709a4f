package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkaplan/sifria/internal/export"
	"github.com/dkaplan/sifria/internal/library"
	"github.com/dkaplan/sifria/internal/navigate"
	"github.com/dkaplan/sifria/internal/textclean"
)

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		jsonError(w, "ref is required", http.StatusBadRequest)
		return
	}

	res, ok := s.fetchText(w, r, ref)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ref":      res.Ref,
		"heading":  res.Heading,
		"segments": textclean.Segments(res.Segments),
		"hebrew":   textclean.Segments(res.Hebrew),
		"next":     res.Next,
		"prev":     res.Prev,
	})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		jsonError(w, "ref is required", http.StatusBadRequest)
		return
	}

	var (
		next string
		err  error
	)
	switch dir := r.URL.Query().Get("dir"); dir {
	case "next":
		next, err = s.nav.Next(r.Context(), ref)
	case "prev":
		next, err = s.nav.Prev(r.Context(), ref)
	default:
		jsonError(w, "dir must be next or prev", http.StatusBadRequest)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, navigate.ErrEdge):
			jsonError(w, "no adjacent reference", http.StatusNotFound)
		case errors.Is(err, library.ErrNotFound):
			jsonError(w, "unknown reference: "+ref, http.StatusNotFound)
		default:
			s.log.Error("navigation failed", "ref", ref, "error", err)
			jsonError(w, "library unavailable", http.StatusBadGateway)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ref": next})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	title, ok := titleParam(w, r)
	if !ok {
		return
	}
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		jsonError(w, "ref is required", http.StatusBadRequest)
		return
	}

	res, ok := s.fetchText(w, r, ref)
	if !ok {
		return
	}

	filename := strings.ReplaceAll(res.Ref, " ", "_") + ".docx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.Chapter(w, title, res.Heading, textclean.Segments(res.Segments)); err != nil {
		// Headers are already out; all we can do is log.
		s.log.Error("export failed", "ref", ref, "error", err)
	}
}

// fetchText retrieves a reference and writes the error response itself on
// failure.
func (s *Server) fetchText(w http.ResponseWriter, r *http.Request, ref string) (*library.TextResult, bool) {
	res, err := s.client.GetText(r.Context(), ref)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			jsonError(w, "unknown reference: "+ref, http.StatusNotFound)
			return nil, false
		}
		s.log.Error("text fetch failed", "ref", ref, "error", err)
		jsonError(w, "library unavailable", http.StatusBadGateway)
		return nil, false
	}
	return res, true
}
