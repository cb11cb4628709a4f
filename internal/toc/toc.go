// Package toc normalizes the heterogeneous index documents returned by the
// upstream texts API into a uniform outline forest. The source catalog uses
// several incompatible conventions for describing a text's structure; each
// convention gets its own builder, dispatched in a fixed precedence order.
package toc

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/dkaplan/sifria/internal/outline"
)

// ErrInvalidIndex reports that the input was not a JSON object at all. Every
// other irregularity degrades to an empty or partial result instead, because
// the shape of the source documents is not under our control.
var ErrInvalidIndex = errors.New("index document is not a JSON object")

// rawIndex is the loosely-typed shape of an upstream index document. Only the
// fields the builders consult are declared; everything else is ignored.
type rawIndex struct {
	Title  string     `json:"title"`
	Alts   *rawAlts   `json:"alts"`
	Schema *rawSchema `json:"schema"`
}

type rawAlts struct {
	Topic *rawAltStruct `json:"Topic"`
}

type rawAltStruct struct {
	Nodes []rawNode `json:"nodes"`
}

type rawSchema struct {
	NodeType     string    `json:"nodeType"`
	SectionNames []string  `json:"sectionNames"`
	Nodes        []rawNode `json:"nodes"`
}

// rawNode covers the node descriptor variants of all observed conventions.
type rawNode struct {
	NodeType     string    `json:"nodeType"`
	Title        string    `json:"title"`
	HeTitle      string    `json:"heTitle"`
	Key          string    `json:"key"`
	Ref          string    `json:"ref"`
	WholeRef     string    `json:"wholeRef"`
	Default      bool      `json:"default"`
	Depth        int       `json:"depth"`
	SectionNames []string  `json:"sectionNames"`
	Refs         []string  `json:"refs"`
	Nodes        []rawNode `json:"nodes"`
}

// convention pairs a structural predicate with the builder that handles it.
// The slice order below is load-bearing: the conventions are not mutually
// exclusive in practice, and the precedence reflects how real documents are
// disambiguated. Keep new conventions as new entries rather than widening an
// existing builder.
type convention struct {
	name  string
	match func(doc *rawIndex, title string) bool
	build func(doc *rawIndex, title string) []*outline.Node
}

var conventions = []convention{
	{"compound-legal", matchCompoundLegal, buildCompoundLegal},
	{"topic", matchTopic, buildTopic},
	{"schema", matchSchema, buildSchema},
	{"flat", matchFlat, buildFlat},
}

// Normalize converts a raw index document into an outline forest. A document
// matching none of the known conventions yields an empty forest and no error;
// only input that is not a JSON object raises ErrInvalidIndex.
func Normalize(raw json.RawMessage, bookTitle string) ([]*outline.Node, error) {
	doc, err := decode(raw)
	if err != nil {
		return nil, err
	}

	title := cleanTitle(bookTitle)
	if title == "" {
		title = cleanTitle(doc.Title)
	}

	for _, c := range conventions {
		if c.match(doc, title) {
			return c.build(doc, title), nil
		}
	}
	return []*outline.Node{}, nil
}

func decode(raw json.RawMessage) (*rawIndex, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidIndex
	}
	var doc rawIndex
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		// An object whose fields have unexpected types is document
		// variability, not a caller bug: treat as unrecognized.
		return &rawIndex{}, nil
	}
	return &doc, nil
}

func matchTopic(doc *rawIndex, _ string) bool {
	return doc.Alts != nil && doc.Alts.Topic != nil && len(doc.Alts.Topic.Nodes) > 0
}

func matchSchema(doc *rawIndex, _ string) bool {
	return doc.Schema != nil && len(doc.Schema.Nodes) > 0
}

func matchFlat(doc *rawIndex, _ string) bool {
	return doc.Schema != nil && doc.Schema.NodeType == "JaggedArrayNode" && len(doc.Schema.Nodes) == 0
}

// cleanTitle collapses runs of whitespace (including control characters) into
// single spaces.
func cleanTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// underscored replaces internal whitespace with underscores, for synthesized
// compound references.
func underscored(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// childID derives a node id from its parent's id and sibling position. Root
// nodes pass an empty parent. IDs encode tree position and are unique within
// one normalization.
func childID(parent string, i int) string {
	n := strconv.Itoa(i)
	if parent == "" {
		return n
	}
	return parent + "." + n
}
