package toc

import (
	"fmt"

	"github.com/dkaplan/sifria/internal/outline"
)

// buildFlat handles texts whose schema is a single flat array of sections
// with one unit label. The payload does not say how many units the text has;
// the total comes from the known-text table, so an unrecorded text degrades
// to an empty outline.
func buildFlat(doc *rawIndex, title string) []*outline.Node {
	if len(doc.Schema.SectionNames) == 0 {
		return []*outline.Node{}
	}
	label := doc.Schema.SectionNames[0]
	kt, ok := knownTotals[title]
	if !ok || kt.Unit != label {
		return []*outline.Node{}
	}

	container := &outline.Node{
		ID:         "0",
		Title:      "All " + label + "s",
		Kind:       outline.KindSection,
		Expandable: true,
		RangeLabel: fmt.Sprintf("%ss 1-%d", label, kt.Total),
	}
	for n := 1; n <= kt.Total; n++ {
		container.Children = append(container.Children, &outline.Node{
			ID:    childID("0", n-1),
			Title: fmt.Sprintf("%s %d", label, n),
			Ref:   fmt.Sprintf("%s.%d", title, n),
			Depth: 1,
			Kind:  outline.KindLeaf,
		})
	}
	return []*outline.Node{container}
}
