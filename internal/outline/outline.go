// Package outline defines the uniform table-of-contents structure served to
// reading clients, regardless of which index convention the source text used.
package outline

// Kind classifies an outline entry.
type Kind string

const (
	KindIntroduction Kind = "introduction"
	KindPart         Kind = "part"
	KindSection      Kind = "section"
	KindLeaf         Kind = "leaf"
)

// Node is one entry in a text's navigable outline. A forest of Nodes is
// rebuilt from the raw index on every normalization; only Expanded is
// mutated afterwards.
type Node struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Ref        string  `json:"ref,omitempty"` // empty for pure containers
	Depth      int     `json:"depth"`
	Kind       Kind    `json:"kind"`
	Expandable bool    `json:"expandable"`
	Expanded   bool    `json:"expanded"`
	Children   []*Node `json:"children,omitempty"`
	RangeLabel string  `json:"range_label,omitempty"`
}

// ActionType is what a client should do when a node is selected.
type ActionType string

const (
	ActionExpand   ActionType = "expand"
	ActionCollapse ActionType = "collapse"
	ActionNavigate ActionType = "navigate"
)

// Action is the result of resolving a node selection. Ref is set only for
// ActionNavigate.
type Action struct {
	Type ActionType `json:"action"`
	Ref  string     `json:"ref,omitempty"`
}

// Resolve decides the selection behavior for a node. Expandable nodes always
// expand or collapse; only non-expandable nodes navigate.
func Resolve(n *Node) Action {
	if n.Expandable {
		if n.Expanded {
			return Action{Type: ActionCollapse}
		}
		return Action{Type: ActionExpand}
	}
	return Action{Type: ActionNavigate, Ref: n.Ref}
}

// Toggle inverts the Expanded flag of the node with the given id, leaving all
// other nodes untouched. It reports whether the id was found.
func Toggle(forest []*Node, id string) bool {
	for _, n := range forest {
		if n.ID == id {
			n.Expanded = !n.Expanded
			return true
		}
		if Toggle(n.Children, id) {
			return true
		}
	}
	return false
}

// Find returns the node with the given id, or nil.
func Find(forest []*Node, id string) *Node {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node in the forest in preorder, source document order.
func Walk(forest []*Node, fn func(*Node)) {
	for _, n := range forest {
		fn(n)
		Walk(n.Children, fn)
	}
}

// Count returns the total number of nodes in the forest.
func Count(forest []*Node) int {
	total := 0
	Walk(forest, func(*Node) { total++ })
	return total
}
