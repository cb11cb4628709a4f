// Package navigate derives adjacent reading locations for a reference.
// Upstream responses usually carry their own next/prev adjacency; when they
// do not, the numerically adjacent reference is probed directly.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dkaplan/sifria/internal/library"
)

// ErrEdge reports that the reference has no neighbor in the requested
// direction (start or end of the text).
var ErrEdge = errors.New("no adjacent reference")

// TextSource is the subset of the library client the navigator needs.
type TextSource interface {
	GetText(ctx context.Context, ref string) (*library.TextResult, error)
}

type Navigator struct {
	src TextSource
}

func New(src TextSource) *Navigator {
	return &Navigator{src: src}
}

// Next returns the reference following ref.
func (n *Navigator) Next(ctx context.Context, ref string) (string, error) {
	return n.adjacent(ctx, ref, +1)
}

// Prev returns the reference preceding ref.
func (n *Navigator) Prev(ctx context.Context, ref string) (string, error) {
	return n.adjacent(ctx, ref, -1)
}

func (n *Navigator) adjacent(ctx context.Context, ref string, delta int) (string, error) {
	res, err := n.src.GetText(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("navigate from %s: %w", ref, err)
	}
	if delta > 0 && res.Next != "" {
		return res.Next, nil
	}
	if delta < 0 && res.Prev != "" {
		return res.Prev, nil
	}

	candidate := bumpRef(ref, delta)
	if candidate == "" {
		return "", ErrEdge
	}
	if _, err := n.src.GetText(ctx, candidate); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return "", ErrEdge
		}
		return "", fmt.Errorf("probe %s: %w", candidate, err)
	}
	return candidate, nil
}

// bumpRef shifts the trailing integer of a reference by delta. References
// without a trailing integer, or whose shifted value would leave the text,
// yield "".
func bumpRef(ref string, delta int) string {
	i := len(ref)
	for i > 0 && ref[i-1] >= '0' && ref[i-1] <= '9' {
		i--
	}
	if i == len(ref) {
		return ""
	}
	num, err := strconv.Atoi(ref[i:])
	if err != nil {
		return ""
	}
	next := num + delta
	if next < 1 {
		return ""
	}
	return ref[:i] + strconv.Itoa(next)
}
