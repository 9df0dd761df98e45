package panes

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/stretchr/testify/require"
)

func TestScrollablePane_BasicRendering(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{
		Viewport:  &vp,
		LeftTitle: "History",
	}

	result := ScrollablePane(30, 8, cfg, func(wrapWidth int) string {
		return "first line\nsecond line"
	})

	require.Contains(t, result, "History", "missing left title")
	require.Contains(t, result, "first line", "missing content")
	require.Contains(t, result, "second line", "missing content")
	require.Contains(t, result, "╭", "missing border")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 8, "expected 8 lines for height 8")
}

func TestScrollablePane_ContentFnReceivesInnerWidth(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{Viewport: &vp}

	var gotWidth int
	ScrollablePane(30, 8, cfg, func(wrapWidth int) string {
		gotWidth = wrapWidth
		return "content"
	})

	require.Equal(t, 28, gotWidth, "wrap width should exclude borders")
}

func TestScrollablePane_TopAligned(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{Viewport: &vp}

	result := ScrollablePane(20, 6, cfg, func(wrapWidth int) string {
		return "only line"
	})

	// Short content starts on the first inner line, not at the bottom.
	lines := strings.Split(result, "\n")
	require.Contains(t, lines[1], "only line", "content should be top-aligned")
}

func TestScrollablePane_OverflowClipped(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{Viewport: &vp}

	content := make([]string, 20)
	for i := range content {
		content[i] = "row"
	}

	result := ScrollablePane(20, 6, cfg, func(wrapWidth int) string {
		return strings.Join(content, "\n")
	})

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 6, "overflow should be clipped to pane height")
}

func TestScrollablePane_ScrollIndicatorOnOverflow(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{
		Viewport:            &vp,
		ShowScrollIndicator: true,
	}

	content := make([]string, 20)
	for i := range content {
		content[i] = "row"
	}

	result := ScrollablePane(20, 6, cfg, func(wrapWidth int) string {
		return strings.Join(content, "\n")
	})

	require.Contains(t, result, "%", "expected scroll indicator when content overflows")
}

func TestScrollablePane_NoIndicatorWhenContentFits(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{
		Viewport:            &vp,
		ShowScrollIndicator: true,
	}

	result := ScrollablePane(20, 6, cfg, func(wrapWidth int) string {
		return "one\ntwo"
	})

	require.NotContains(t, result, "%", "no indicator when content fits")
}

func TestScrollablePane_BottomRightWinsOverIndicator(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{
		Viewport:            &vp,
		BottomRight:         "3 entries",
		ShowScrollIndicator: true,
	}

	content := make([]string, 20)
	for i := range content {
		content[i] = "row"
	}

	result := ScrollablePane(30, 6, cfg, func(wrapWidth int) string {
		return strings.Join(content, "\n")
	})

	require.Contains(t, result, "3 entries", "explicit bottom-right text should win")
	require.NotContains(t, result, "%", "indicator should be suppressed")
}

func TestScrollablePane_ScrollStatePersists(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{Viewport: &vp}

	content := make([]string, 20)
	for i := range content {
		content[i] = "row"
	}
	contentFn := func(wrapWidth int) string {
		return strings.Join(content, "\n")
	}

	ScrollablePane(20, 6, cfg, contentFn)
	vp.SetYOffset(5)
	ScrollablePane(20, 6, cfg, contentFn)

	require.Equal(t, 5, vp.YOffset, "scroll offset should survive re-render")
}

func TestBuildScrollIndicator_ContentFits(t *testing.T) {
	vp := viewport.New(20, 10)
	vp.SetContent("short")

	require.Empty(t, BuildScrollIndicator(vp), "no indicator when content fits")
}

func TestBuildScrollIndicator_Overflow(t *testing.T) {
	vp := viewport.New(20, 4)
	content := make([]string, 20)
	for i := range content {
		content[i] = "row"
	}
	vp.SetContent(strings.Join(content, "\n"))

	require.Contains(t, BuildScrollIndicator(vp), "%", "indicator should show percentage")
}
