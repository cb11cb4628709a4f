package navigate

import (
	"context"
	"errors"
	"testing"

	"github.com/dkaplan/sifria/internal/library"
)

// fakeSource serves canned text results keyed by reference.
type fakeSource struct {
	texts map[string]*library.TextResult
	calls []string
}

func (f *fakeSource) GetText(_ context.Context, ref string) (*library.TextResult, error) {
	f.calls = append(f.calls, ref)
	if res, ok := f.texts[ref]; ok {
		return res, nil
	}
	return nil, library.ErrNotFound
}

func TestNextPrefersUpstreamAdjacency(t *testing.T) {
	src := &fakeSource{texts: map[string]*library.TextResult{
		"Tanya.2": {Ref: "Tanya.2", Next: "Tanya, Gate of Unity.1"},
	}}
	nav := New(src)

	got, err := nav.Next(context.Background(), "Tanya.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Tanya, Gate of Unity.1" {
		t.Errorf("next = %q", got)
	}
	if len(src.calls) != 1 {
		t.Errorf("expected no probe when upstream reports adjacency, calls = %v", src.calls)
	}
}

func TestNextFallsBackToProbe(t *testing.T) {
	src := &fakeSource{texts: map[string]*library.TextResult{
		"Tanya.2": {Ref: "Tanya.2"},
		"Tanya.3": {Ref: "Tanya.3"},
	}}
	nav := New(src)

	got, err := nav.Next(context.Background(), "Tanya.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Tanya.3" {
		t.Errorf("next = %q, want Tanya.3", got)
	}
}

func TestNextAtEndOfText(t *testing.T) {
	src := &fakeSource{texts: map[string]*library.TextResult{
		"Tanya.53": {Ref: "Tanya.53"},
	}}
	nav := New(src)

	if _, err := nav.Next(context.Background(), "Tanya.53"); !errors.Is(err, ErrEdge) {
		t.Errorf("expected ErrEdge, got %v", err)
	}
}

func TestPrevAtStartOfText(t *testing.T) {
	src := &fakeSource{texts: map[string]*library.TextResult{
		"Tanya.1": {Ref: "Tanya.1"},
	}}
	nav := New(src)

	if _, err := nav.Prev(context.Background(), "Tanya.1"); !errors.Is(err, ErrEdge) {
		t.Errorf("expected ErrEdge, got %v", err)
	}
	// Tanya.0 must never be probed.
	for _, ref := range src.calls {
		if ref == "Tanya.0" {
			t.Error("probed below the first reference")
		}
	}
}

func TestAdjacentWithoutTrailingNumber(t *testing.T) {
	src := &fakeSource{texts: map[string]*library.TextResult{
		"Tanya, Introduction": {Ref: "Tanya, Introduction"},
	}}
	nav := New(src)

	if _, err := nav.Next(context.Background(), "Tanya, Introduction"); !errors.Is(err, ErrEdge) {
		t.Errorf("expected ErrEdge for non-numeric ref, got %v", err)
	}
}

func TestBumpRef(t *testing.T) {
	cases := []struct {
		ref   string
		delta int
		want  string
	}{
		{"Tanya.2", 1, "Tanya.3"},
		{"Tanya.2", -1, "Tanya.1"},
		{"Tanya.1", -1, ""},
		{"Tanya.9", 1, "Tanya.10"},
		{"Tanya, Introduction", 1, ""},
	}
	for _, tc := range cases {
		if got := bumpRef(tc.ref, tc.delta); got != tc.want {
			t.Errorf("bumpRef(%q, %d) = %q, want %q", tc.ref, tc.delta, got, tc.want)
		}
	}
}
