package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/styles"
)

// selectionBgStyle is cached to avoid repeated allocations during rendering.
var selectionBgStyle = lipgloss.NewStyle().Background(styles.SelectionBackgroundColor)

// renderHeader renders the table header row with column alignment applied.
func renderHeader[R any](cols []ColumnConfig[R], widths []int) string {
	if len(cols) == 0 || len(widths) == 0 {
		return ""
	}

	var parts []string
	for i, col := range cols {
		w := widths[i]
		header := col.Header

		if lipgloss.Width(header) > w {
			header = styles.TruncateString(header, w)
		}

		parts = append(parts, alignText(header, w, col.Align))
	}

	return strings.Join(parts, " ")
}

// renderRow renders a single data row.
// fullWidth is the total available width for the row, used to extend the
// selection background to the right edge.
func renderRow[R any](row R, cols []ColumnConfig[R], widths []int, selected bool, fullWidth int) string {
	if len(cols) == 0 || len(widths) == 0 {
		return ""
	}

	var result strings.Builder
	for i, col := range cols {
		// Separator before each cell (except first). For selected rows the
		// separator carries the background too.
		if i > 0 {
			if selected {
				result.WriteString(selectionBgStyle.Render(" "))
			} else {
				result.WriteString(" ")
			}
		}

		result.WriteString(renderCell(row, col, widths[i], selected))
	}

	content := result.String()

	// Pad to full available width so selection extends to the right edge
	if selected {
		contentWidth := lipgloss.Width(content)
		if contentWidth < fullWidth {
			content += selectionBgStyle.Render(strings.Repeat(" ", fullWidth-contentWidth))
		}
	}

	return content
}

// renderCell renders a cell with optional selection background. When selected,
// the background is applied to the content and its alignment padding while
// preserving any foreground styling from the render callback.
func renderCell[R any](row R, col ColumnConfig[R], width int, selected bool) string {
	content := safeRenderCallback(row, col, width, selected)

	if lipgloss.Width(content) > width {
		content = styles.TruncateString(content, width)
	}

	contentWidth := lipgloss.Width(content)
	padding := width - contentWidth

	if !selected {
		return alignText(content, width, col.Align)
	}

	var result strings.Builder
	switch col.Align {
	case lipgloss.Right:
		if padding > 0 {
			result.WriteString(selectionBgStyle.Render(strings.Repeat(" ", padding)))
		}
		result.WriteString(applyBackgroundToStyledContent(content))
	case lipgloss.Center:
		leftPad := padding / 2
		rightPad := padding - leftPad
		if leftPad > 0 {
			result.WriteString(selectionBgStyle.Render(strings.Repeat(" ", leftPad)))
		}
		result.WriteString(applyBackgroundToStyledContent(content))
		if rightPad > 0 {
			result.WriteString(selectionBgStyle.Render(strings.Repeat(" ", rightPad)))
		}
	default: // lipgloss.Left
		result.WriteString(applyBackgroundToStyledContent(content))
		if padding > 0 {
			result.WriteString(selectionBgStyle.Render(strings.Repeat(" ", padding)))
		}
	}

	return result.String()
}

// selectionBgPrefix returns the ANSI prefix that enables the selection
// background, or "" when the color profile renders no escape codes.
func selectionBgPrefix() string {
	rendered := selectionBgStyle.Render(" ")
	if !strings.Contains(rendered, "\x1b[") {
		return ""
	}
	return strings.TrimSuffix(rendered, " \x1b[0m")
}

// applyBackgroundToStyledContent applies the selection background to content
// that may already have foreground styling. ANSI reset sequences inside the
// content would cancel the background, so each reset is followed by a
// background restore.
func applyBackgroundToStyledContent(content string) string {
	if !strings.Contains(content, "\x1b[") {
		return selectionBgStyle.Render(content)
	}

	bgPrefix := selectionBgPrefix()
	if bgPrefix == "" {
		return content
	}

	contentWithBg := strings.ReplaceAll(content, "\x1b[0m", "\x1b[0m"+bgPrefix)
	return bgPrefix + contentWithBg + "\x1b[0m"
}

// safeRenderCallback invokes the column's Render callback with panic recovery.
// If the callback panics, returns a placeholder string instead of taking down
// the whole view.
func safeRenderCallback[R any](row R, col ColumnConfig[R], width int, selected bool) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = styles.TruncateString(fmt.Sprintf("!ERR:%v", r), width)
		}
	}()

	if col.Render == nil {
		return ""
	}

	return col.Render(row, col.Key, width, selected)
}

// renderEmptyState renders the centered empty state message.
func renderEmptyState(msg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	if msg == "" {
		msg = "No data"
	}

	styledMsg := lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		Render(msg)

	msgWidth := lipgloss.Width(styledMsg)
	if msgWidth > width {
		styledMsg = styles.TruncateString(msg, width)
		msgWidth = lipgloss.Width(styledMsg)
	}

	// Center horizontally
	leftPad := max((width-msgWidth)/2, 0)
	centeredLine := strings.Repeat(" ", leftPad) + styledMsg

	// Center vertically
	topPad := max((height-1)/2, 0)

	var lines []string
	for range topPad {
		lines = append(lines, "")
	}
	lines = append(lines, centeredLine)
	remaining := height - topPad - 1
	for range remaining {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// alignText aligns text within the given width according to position.
func alignText(text string, width int, align lipgloss.Position) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}

	padding := width - textWidth

	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", padding) + text
	case lipgloss.Center:
		leftPad := padding / 2
		rightPad := padding - leftPad
		return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
	default: // lipgloss.Left or any other value
		return text + strings.Repeat(" ", padding)
	}
}
