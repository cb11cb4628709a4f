package toc

import (
	"fmt"
	"strings"

	"github.com/dkaplan/sifria/internal/outline"
)

// buildCompoundLegal handles the deeply nested convention used by legal
// codes: top-level nodes are major categories, their children subsections.
// Subsection references do not exist in the source document and are
// synthesized from the human-readable path, with whitespace replaced by
// underscores and a default starting locator appended.
func buildCompoundLegal(doc *rawIndex, title string) []*outline.Node {
	if doc.Schema == nil || len(doc.Schema.Nodes) == 0 {
		return []*outline.Node{}
	}

	out := []*outline.Node{}
	for i, n := range doc.Schema.Nodes {
		t := cleanTitle(n.Title)
		if t == "" {
			continue
		}

		id := childID("", i)
		if strings.Contains(t, "Introduction") {
			out = append(out, &outline.Node{
				ID:    id,
				Title: t,
				Ref:   title + ", Author's Introduction",
				Kind:  outline.KindIntroduction,
			})
			continue
		}

		sec := &outline.Node{
			ID:    id,
			Title: t,
			Kind:  outline.KindSection,
		}
		for j, ch := range n.Nodes {
			ct := cleanTitle(ch.Title)
			if ct == "" {
				continue
			}
			ref := strings.Join([]string{
				underscored(title), underscored(t), underscored(ct),
			}, ",_") + ".1.1"
			sec.Children = append(sec.Children, &outline.Node{
				ID:    childID(id, j),
				Title: ct,
				Ref:   ref,
				Depth: 1,
				Kind:  outline.KindLeaf,
			})
		}
		if len(sec.Children) == 0 {
			continue
		}
		sec.Expandable = true
		sec.RangeLabel = fmt.Sprintf("%d subsections", len(sec.Children))
		out = append(out, sec)
	}
	return out
}
