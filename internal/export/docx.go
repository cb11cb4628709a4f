// Package export writes fetched chapters to downloadable documents for
// offline reading.
package export

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// Chapter writes one chapter as a .docx document: book title, chapter
// heading, then one paragraph per cleaned segment.
func Chapter(w io.Writer, title, heading string, segments []string) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(title).Size("36")
	if heading != "" && heading != title {
		doc.AddParagraph().AddText(heading).Size("28")
	}
	for _, seg := range segments {
		doc.AddParagraph().AddText(seg)
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
