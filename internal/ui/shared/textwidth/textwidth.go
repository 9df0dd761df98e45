// Package textwidth measures and truncates strings by terminal display
// width. All operations respect grapheme cluster boundaries, so emoji and
// combining sequences in entry notes are never split mid-cluster.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the display width of s in terminal cells.
// ASCII = 1 cell, emoji = 2, CJK = 2.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// GraphemeCount returns the number of grapheme clusters in s.
// For example: "hello" = 5, "h😀llo" = 5, "👨‍👩‍👧‍👦" = 1.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Truncate cuts s to at most maxWidth display cells without splitting
// grapheme clusters. A double-width cluster straddling the limit is
// dropped entirely.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}

	var b strings.Builder
	width := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if width+w > maxWidth {
			break
		}
		b.WriteString(cluster)
		width += w
		s = rest
		state = newState
	}
	return b.String()
}

// TruncateWithTail truncates s to maxWidth cells, appending tail when
// anything was cut. The tail counts against maxWidth.
func TruncateWithTail(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}

	tailWidth := Width(tail)
	if tailWidth >= maxWidth {
		return Truncate(tail, maxWidth)
	}
	return Truncate(s, maxWidth-tailWidth) + tail
}
