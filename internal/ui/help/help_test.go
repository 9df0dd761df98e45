package help

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestView_ContainsAllSections(t *testing.T) {
	m := New().SetSize(120, 40)

	view := stripANSI(m.View())
	assert.Contains(t, view, "Keybindings")
	assert.Contains(t, view, "Global")
	assert.Contains(t, view, "Timesheet")
	assert.Contains(t, view, "Admin")
	assert.Contains(t, view, "Reports")
	assert.Contains(t, view, "Press ? or esc to close")
}

func TestView_ContainsCoreBindings(t *testing.T) {
	m := New().SetSize(120, 40)

	view := stripANSI(m.View())
	for _, want := range []string{"undo", "redo", "history", "shift week", "archive", "markdown"} {
		assert.Contains(t, view, want)
	}
}

func TestOverlay_PlacesBoxOverBackground(t *testing.T) {
	m := New().SetSize(100, 30)
	bg := strings.TrimRight(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")

	view := stripANSI(m.Overlay(bg))
	assert.Contains(t, view, "Keybindings")
	assert.Contains(t, view, ".", "background should remain visible around the box")
}
