package bookmarks

import (
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, path
}

func TestAddAssignsIDAndPersists(t *testing.T) {
	s, path := openTestStore(t)

	b, err := s.Add(Bookmark{User: "dina", Ref: "Tanya.12", Title: "Tanya"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.ID == "" || b.CreatedAt.IsZero() {
		t.Errorf("add did not assign id/created_at: %+v", b)
	}

	// A fresh store reads the same file back.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := s2.Get(b.ID)
	if !ok || got.Ref != "Tanya.12" || got.User != "dina" {
		t.Errorf("reloaded bookmark = %+v ok=%v", got, ok)
	}
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)
	b, err := s.Add(Bookmark{User: "dina", Ref: "Tanya.12"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	ok, err := s.Delete(b.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, found := s.Get(b.ID); found {
		t.Error("bookmark still present after delete")
	}
	ok, err = s.Delete(b.ID)
	if err != nil || ok {
		t.Errorf("second delete: ok=%v err=%v", ok, err)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	s, _ := openTestStore(t)
	for _, ref := range []string{"Tanya.1", "Tanya.2", "Tanya.3"} {
		if _, err := s.Add(Bookmark{User: "dina", Ref: ref}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := s.Add(Bookmark{User: "avi", Ref: "Pirkei Avot.1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	list := s.ListByUser("dina")
	if len(list) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Errorf("list not newest first at %d", i)
		}
	}
	if len(s.ListByUser("nobody")) != 0 {
		t.Error("expected empty list for unknown user")
	}
}

func TestNoteHTML(t *testing.T) {
	b := Bookmark{Note: "**important** passage"}
	html, err := b.NoteHTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<strong>important</strong>") {
		t.Errorf("rendered note = %q", html)
	}

	empty := Bookmark{}
	if html, err := empty.NoteHTML(); err != nil || html != "" {
		t.Errorf("empty note = %q err=%v", html, err)
	}
}
