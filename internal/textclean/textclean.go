// Package textclean strips the inline HTML the upstream API embeds in text
// segments (emphasis, footnote markers, footnote bodies) down to display
// text.
package textclean

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip removes markup from one segment: tags are dropped (text kept),
// footnote markers and bodies are removed entirely, and whitespace is
// collapsed.
func Strip(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElement(n) {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return collapse(buf.String())
}

// Segments cleans a segment list, dropping entries that are empty after
// stripping.
func Segments(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if cleaned := Strip(s); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func skipElement(n *html.Node) bool {
	switch n.Data {
	case "sup", "script", "style":
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "class" && strings.Contains(a.Val, "footnote") {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
