package bookmarks

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// NoteHTML renders the bookmark's markdown note to HTML for display. An
// empty note renders to "".
func (b Bookmark) NoteHTML() (string, error) {
	if b.Note == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(b.Note), &buf); err != nil {
		return "", fmt.Errorf("render note: %w", err)
	}
	return buf.String(), nil
}
