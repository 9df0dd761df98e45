// Package panes contains reusable bordered pane UI components.
package panes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/styles"
)

// ScrollIndicatorStyle is the style for scroll position indicators (e.g., "50%").
var ScrollIndicatorStyle = lipgloss.NewStyle().
	Foreground(styles.TextMutedColor)

// ScrollableConfig holds the configuration for rendering a scrollable pane.
type ScrollableConfig struct {
	// Viewport is a pointer to the viewport model. It must be a pointer so
	// the scroll position survives across renders; ScrollablePane mutates
	// its dimensions and content.
	Viewport *viewport.Model

	// LeftTitle is the title shown on the left side of the top border.
	LeftTitle string

	// RightTitle is the title shown on the right side of the top border.
	RightTitle string

	// BottomLeft is optional text shown on the bottom-left of the border.
	BottomLeft string

	// BottomRight is optional text shown on the bottom-right of the border.
	// If empty and ShowScrollIndicator is true, the scroll indicator is
	// shown here instead.
	BottomRight string

	// ShowScrollIndicator controls whether scroll position appears in the
	// bottom-right when content overflows the viewport.
	ShowScrollIndicator bool

	// TitleColor is the color for the title text.
	TitleColor lipgloss.AdaptiveColor

	// BorderColor is the color for the pane border.
	BorderColor lipgloss.AdaptiveColor

	// Focused indicates whether the pane has focus.
	Focused bool

	// FocusedBorderColor is the border color when focused.
	// If not set, uses BorderColor even when focused.
	FocusedBorderColor lipgloss.AdaptiveColor
}

// ScrollablePane handles the common viewport setup and border rendering
// pattern used by scrollable panel components. Content is top-aligned; the
// viewport clips and scrolls anything that overflows.
//
// contentFn receives the available width (viewport width) and returns the
// rendered content string, pre-wrapped to that width.
func ScrollablePane(
	width, height int,
	cfg ScrollableConfig,
	contentFn func(wrapWidth int) string,
) string {
	// Viewport dimensions exclude the border characters.
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight
	cfg.Viewport.SetContent(contentFn(vpWidth))

	bottomRight := cfg.BottomRight
	if bottomRight == "" && cfg.ShowScrollIndicator {
		bottomRight = BuildScrollIndicator(*cfg.Viewport)
	}

	return BorderedPane(BorderConfig{
		Content:            cfg.Viewport.View(),
		Width:              width,
		Height:             height,
		PreWrapped:         true,
		TopLeft:            cfg.LeftTitle,
		TopRight:           cfg.RightTitle,
		BottomLeft:         cfg.BottomLeft,
		BottomRight:        bottomRight,
		Focused:            cfg.Focused,
		TitleColor:         cfg.TitleColor,
		BorderColor:        cfg.BorderColor,
		FocusedBorderColor: cfg.FocusedBorderColor,
	})
}

// BuildScrollIndicator returns a styled scroll position indicator for the
// viewport. Returns empty string when the content fits; otherwise the
// current position as a percentage.
func BuildScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	return ScrollIndicatorStyle.Render(fmt.Sprintf("%.0f%%", vp.ScrollPercent()*100))
}
