package toc

import (
	"fmt"

	"github.com/dkaplan/sifria/internal/outline"
)

// buildSchema handles the nested schema-node convention. Only array-type
// nodes are considered; everything else in the node list is document
// machinery (dictionaries, references between texts) with no place in a
// reading outline.
func buildSchema(doc *rawIndex, title string) []*outline.Node {
	out := []*outline.Node{}
	for i, n := range doc.Schema.Nodes {
		if n.NodeType != "JaggedArrayNode" {
			continue
		}
		t := cleanTitle(n.Title)
		if t == "" {
			t = cleanTitle(n.Key)
		}
		id := childID("", i)

		if t == "Introduction" || n.Key == "Introduction" {
			out = append(out, &outline.Node{
				ID:    id,
				Title: introTitle(t),
				Ref:   title + ", Introduction",
				Kind:  outline.KindIntroduction,
			})
			continue
		}

		// A default-content node, or one nested deeply enough to carry the
		// text body, holds the numbered primary units. Their count is not in
		// the payload; it comes from the known-text table.
		if n.Default || (n.Depth >= 2 && len(n.SectionNames) > 0) {
			if sec := numberedSection(id, t, n.SectionNames, title); sec != nil {
				out = append(out, sec)
				continue
			}
		}

		if t == "" {
			continue
		}
		ref := n.Ref
		if ref == "" {
			ref = title + ", " + t
		}
		out = append(out, &outline.Node{
			ID:    id,
			Title: t,
			Ref:   ref,
			Kind:  outline.KindSection,
		})
	}
	return out
}

// numberedSection synthesizes a container of numbered unit leaves when the
// node's section names name a known primary unit and the text's total is on
// record. Returns nil otherwise so the caller can fall back.
func numberedSection(id, title string, sectionNames []string, bookTitle string) *outline.Node {
	unit := ""
	for _, name := range sectionNames {
		if primaryUnits[name] {
			unit = name
			break
		}
	}
	if unit == "" {
		return nil
	}
	kt, ok := knownTotals[bookTitle]
	if !ok || kt.Unit != unit {
		return nil
	}

	if title == "" {
		title = "All " + unit + "s"
	}
	sec := &outline.Node{
		ID:         id,
		Title:      title,
		Kind:       outline.KindSection,
		Expandable: true,
		RangeLabel: fmt.Sprintf("%d %ss", kt.Total, unit),
	}
	for n := 1; n <= kt.Total; n++ {
		sec.Children = append(sec.Children, &outline.Node{
			ID:    childID(id, n-1),
			Title: fmt.Sprintf("%s %d", unit, n),
			Ref:   fmt.Sprintf("%s.%d", bookTitle, n),
			Depth: 1,
			Kind:  outline.KindLeaf,
		})
	}
	return sec
}
