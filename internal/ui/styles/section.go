package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderFieldFrame draws a single form field inside a rounded border
// with its label embedded in the top edge:
//
//	╭─ Minutes (optional) ────────╮
//	│ 90                          │
//	╰─────────────────────────────╯
//
// The modal renders every input this way. focused swaps the border and
// label onto focusColor so the active field stands out; the hint, when
// present, stays muted in both states.
func RenderFieldFrame(row, label, hint string, width int, focused bool, focusColor lipgloss.TerminalColor) string {
	frameColor := lipgloss.TerminalColor(BorderDefaultColor)
	if focused {
		frameColor = focusColor
	}

	frame := lipgloss.NewStyle().Foreground(frameColor)
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(frameColor)
	hintStyle := lipgloss.NewStyle().Foreground(TextMutedColor)

	inner := max(width-2, 1)

	lines := []string{
		fieldTopEdge(label, hint, inner, frame, labelStyle, hintStyle),
		frame.Render("│") + padRight(row, inner) + frame.Render("│"),
		frame.Render("╰" + strings.Repeat("─", inner) + "╯"),
	}
	return strings.Join(lines, "\n")
}

// fieldTopEdge builds the top border, splicing "─ label (hint) " in
// after the corner when a label is set.
func fieldTopEdge(label, hint string, inner int, frame, labelStyle, hintStyle lipgloss.Style) string {
	if label == "" {
		return frame.Render("╭" + strings.Repeat("─", inner) + "╮")
	}

	caption := label
	if hint != "" {
		caption += " (" + hint + ")"
	}
	// "─ " before the caption and " " after take three columns.
	fill := max(inner-lipgloss.Width(caption)-3, 0)

	var b strings.Builder
	b.WriteString(frame.Render("╭─ "))
	b.WriteString(labelStyle.Render(label))
	if hint != "" {
		b.WriteString(" " + hintStyle.Render("("+hint+")"))
	}
	b.WriteString(frame.Render(" " + strings.Repeat("─", fill) + "╮"))
	return b.String()
}

// padRight pads row with spaces out to width display columns.
func padRight(row string, width int) string {
	gap := width - lipgloss.Width(row)
	if gap <= 0 {
		return row
	}
	return row + strings.Repeat(" ", gap)
}
