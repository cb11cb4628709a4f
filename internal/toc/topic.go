package toc

import (
	"strconv"
	"strings"

	"github.com/dkaplan/sifria/internal/outline"
)

// Introduction and part markers appear in either English or Hebrew titles.
const (
	introMarkerEn = "Introduction"
	introMarkerHe = "הקדמה"
	partMarkerEn  = "Part"
	partMarkerHe  = "חלק"
)

// buildTopic handles the alternate topic structuring, which groups content
// into parts and sections independent of the primary schema.
func buildTopic(doc *rawIndex, title string) []*outline.Node {
	out := []*outline.Node{}
	for i, n := range doc.Alts.Topic.Nodes {
		t := cleanTitle(n.Title)
		id := childID("", i)

		switch {
		case isIntroTitle(t, n.HeTitle):
			ref := selfRef(n)
			if ref == "" {
				ref = title + ", Introduction"
			}
			out = append(out, &outline.Node{
				ID:    id,
				Title: introTitle(t),
				Ref:   ref,
				Kind:  outline.KindIntroduction,
			})

		case isPartTitle(t, n.HeTitle) && len(n.Nodes) > 0:
			part := &outline.Node{
				ID:    id,
				Title: t,
				Kind:  outline.KindPart,
			}
			for j, sn := range n.Nodes {
				sec := buildTopicSection(childID(id, j), sn)
				if sec != nil {
					part.Children = append(part.Children, sec)
				}
			}
			if len(part.Children) == 0 {
				continue
			}
			part.Expandable = true
			out = append(out, part)

		case len(n.Nodes) > 0:
			// Undocumented variant: keep the node as a generic container
			// and flatten its immediate array-type children as leaves.
			sec := &outline.Node{
				ID:    id,
				Title: t,
				Kind:  outline.KindSection,
			}
			for j, ch := range n.Nodes {
				ct := cleanTitle(ch.Title)
				ref := selfRef(ch)
				if ct == "" || ref == "" {
					continue
				}
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
			out = append(out, sec)
		}
	}
	return out
}

// buildTopicSection turns one part child into a section whose leaves are the
// chapters named by its reference list. Returns nil when the node carries no
// references.
func buildTopicSection(id string, sn rawNode) *outline.Node {
	t := cleanTitle(sn.Title)
	if t == "" || len(sn.Refs) == 0 {
		return nil
	}
	sec := &outline.Node{
		ID:         id,
		Title:      t,
		Depth:      1,
		Kind:       outline.KindSection,
		Expandable: true,
		RangeLabel: chapterRangeLabel(sn.Refs),
	}
	for k, ref := range sn.Refs {
		sec.Children = append(sec.Children, &outline.Node{
			ID:    childID(id, k),
			Title: "Chapter " + strconv.Itoa(chapterNumber(ref)),
			Ref:   ref,
			Depth: 2,
			Kind:  outline.KindLeaf,
		})
	}
	return sec
}

func isIntroTitle(en, he string) bool {
	return en == introMarkerEn || cleanTitle(he) == introMarkerHe
}

func isPartTitle(en, he string) bool {
	return strings.Contains(en, partMarkerEn) || strings.Contains(cleanTitle(he), partMarkerHe)
}

// introTitle prefers the English marker for display when the source only
// carried the Hebrew one.
func introTitle(en string) string {
	if en != "" {
		return en
	}
	return introMarkerEn
}

// selfRef returns a node's self-declared reference, preferring the whole-span
// form over the first entry of its reference list.
func selfRef(n rawNode) string {
	if n.WholeRef != "" {
		return n.WholeRef
	}
	if n.Ref != "" {
		return n.Ref
	}
	if len(n.Refs) > 0 {
		return n.Refs[0]
	}
	return ""
}
