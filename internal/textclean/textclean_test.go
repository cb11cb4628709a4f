package textclean

import (
	"reflect"
	"testing"
)

func TestStrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "In the beginning", "In the beginning"},
		{"emphasis kept as text", "In the <i>beginning</i> was", "In the beginning was"},
		{"bold", "<b>Blessed</b> is the one", "Blessed is the one"},
		{"footnote marker dropped", `word<sup class="footnote-marker">a</sup> next`, "word next"},
		{"footnote body dropped", `word <i class="footnote">editor's note</i> next`, "word next"},
		{"whitespace collapsed", "a  b\n\tc", "a b c"},
		{"empty", "", ""},
		{"only markup", `<sup>*</sup>`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Strip(tc.in); got != tc.want {
				t.Errorf("Strip(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSegmentsDropsEmpty(t *testing.T) {
	in := []string{"one", "<sup>2</sup>", "  ", "three"}
	want := []string{"one", "three"}
	if got := Segments(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}
