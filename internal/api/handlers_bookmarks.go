package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkaplan/sifria/internal/bookmarks"
)

// bookmarkJSON is a bookmark plus its rendered note.
type bookmarkJSON struct {
	bookmarks.Bookmark
	NoteHTML string `json:"note_html,omitempty"`
}

func renderBookmark(b bookmarks.Bookmark) bookmarkJSON {
	html, err := b.NoteHTML()
	if err != nil {
		html = ""
	}
	return bookmarkJSON{Bookmark: b, NoteHTML: html}
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User  string `json:"user"`
		Ref   string `json:"ref"`
		Title string `json:"title"`
		Note  string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.User == "" || req.Ref == "" {
		jsonError(w, "user and ref are required", http.StatusBadRequest)
		return
	}
	if len(req.Note) > s.cfg.MaxNoteBytes {
		jsonError(w, "note too large", http.StatusRequestEntityTooLarge)
		return
	}

	b, err := s.bookmarks.Add(bookmarks.Bookmark{
		User:  req.User,
		Ref:   req.Ref,
		Title: req.Title,
		Note:  req.Note,
	})
	if err != nil {
		s.log.Error("bookmark save failed", "user", req.User, "error", err)
		jsonError(w, "failed to save bookmark", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, renderBookmark(b))
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		jsonError(w, "user is required", http.StatusBadRequest)
		return
	}
	list := s.bookmarks.ListByUser(user)
	out := make([]bookmarkJSON, 0, len(list))
	for _, b := range list {
		out = append(out, renderBookmark(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookmarks": out})
}

func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookmarkID")
	b, ok := s.bookmarks.Get(id)
	if !ok {
		jsonError(w, "bookmark not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, renderBookmark(b))
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookmarkID")
	ok, err := s.bookmarks.Delete(id)
	if err != nil {
		s.log.Error("bookmark delete failed", "id", id, "error", err)
		jsonError(w, "failed to delete bookmark", http.StatusInternalServerError)
		return
	}
	if !ok {
		jsonError(w, "bookmark not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
