package mustache

import "strings"

// Dedent removes the common leading margin of spaces and tabs from every line
// of text, then drops one leading newline.
//
// The margin is the smallest indent of any line that has content after its
// indent. A tab counts as one column. Lines shorter than the margin lose only
// the spaces and tabs they have.
func Dedent(text string) string {
	if margin := marginOf(text); margin > 0 {
		var b strings.Builder

		b.Grow(len(text))

		for line := range strings.SplitAfterSeq(text, "\n") {
			b.WriteString(line[indentOf(line, margin):])
		}

		text = b.String()
	}

	return strings.TrimPrefix(text, "\n")
}

// marginOf returns the minimum indent over non-blank lines, or 0 when there
// are none.
func marginOf(text string) int {
	margin := -1

	for line := range strings.SplitSeq(text, "\n") {
		n := indentOf(line, len(line))
		if n == len(line) {
			continue
		}

		if margin < 0 || n < margin {
			margin = n
		}
	}

	return max(margin, 0)
}

// indentOf counts leading spaces and tabs of line, up to limit.
func indentOf(line string, limit int) int {
	n := 0
	for n < limit && n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}

	return n
}
