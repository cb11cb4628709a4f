package toc

import (
	"fmt"
	"strconv"
)

// chapterNumber extracts the trailing run of decimal digits from a reference
// string; a reference with no trailing digits counts as chapter 0. Every
// builder that produces range labels uses this convention.
func chapterNumber(ref string) int {
	i := len(ref)
	for i > 0 && ref[i-1] >= '0' && ref[i-1] <= '9' {
		i--
	}
	if i == len(ref) {
		return 0
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil {
		return 0
	}
	return n
}

// chapterRangeLabel summarizes the chapter span covered by a reference list:
// "Chapter N" for a single reference, "Chapters A-B (k chapters)" otherwise.
func chapterRangeLabel(refs []string) string {
	if len(refs) == 0 {
		return ""
	}
	if len(refs) == 1 {
		return fmt.Sprintf("Chapter %d", chapterNumber(refs[0]))
	}
	first := chapterNumber(refs[0])
	last := chapterNumber(refs[len(refs)-1])
	return fmt.Sprintf("Chapters %d-%d (%d chapters)", first, last, len(refs))
}
