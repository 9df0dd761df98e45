// Package panes contains reusable bordered pane UI components.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/stint/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered panel.
type BorderConfig struct {
	// Required fields
	Content string // The content to render inside the border
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	// Title placement (all optional)
	TopLeft     string // Title on top border, left-aligned
	TopRight    string // Title on top border, right-aligned
	BottomLeft  string // Title on bottom border, left-aligned
	BottomRight string // Title on bottom border, right-aligned

	// PreWrapped indicates the content lines are already sized to the inner
	// width. The lipgloss wrap step is skipped so styled lines (table rows
	// with selection backgrounds) pass through untouched.
	PreWrapped bool

	// Styling
	Focused            bool                   // Whether the panel has focus
	TitleColor         lipgloss.TerminalColor // Color for title text
	BorderColor        lipgloss.TerminalColor // Border color when not focused
	FocusedBorderColor lipgloss.TerminalColor // Border color when focused
}

// BorderedPane renders content within a bordered panel with optional titles.
//
// Nil color fallback rules:
//   - Both BorderColor and FocusedBorderColor nil: use BorderDefaultColor for both states
//   - BorderColor set, FocusedBorderColor nil: inherit BorderColor for focused state
//   - BorderColor nil, FocusedBorderColor set: unfocused uses BorderDefaultColor, focused uses specified
//   - Both set: use appropriately based on Focused flag
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused)

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	// Inner width excludes the left and right border characters.
	innerWidth := max(cfg.Width-2, 1)

	topBorder := buildTitledBorder(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle)
	bottomBorder := buildTitledBorder(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle)

	contentHeight := max(cfg.Height-2, 1)

	var contentLines []string
	if cfg.PreWrapped {
		contentLines = strings.Split(cfg.Content, "\n")
	} else {
		// Let lipgloss constrain the content so long lines wrap instead of
		// breaking the right border.
		contentStyle := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight)
		contentLines = strings.Split(contentStyle.Render(cfg.Content), "\n")
	}

	paddedLines := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}

		lineWidth := lipgloss.Width(line)
		if lineWidth > innerWidth {
			line = ansi.Truncate(line, innerWidth, "")
			lineWidth = lipgloss.Width(line)
		}
		if lineWidth < innerWidth {
			// Pad to innerWidth so the right border aligns.
			line = line + strings.Repeat(" ", innerWidth-lineWidth)
		}

		paddedLines[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(topBorder)
	result.WriteString("\n")
	result.WriteString(strings.Join(paddedLines, "\n"))
	result.WriteString("\n")
	result.WriteString(bottomBorder)

	return result.String()
}

// resolveBorderColor implements the nil color fallback logic for border colors.
func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	if borderColor == nil && focusedBorderColor == nil {
		return styles.BorderDefaultColor
	}

	// Only BorderColor set: it covers both states.
	if borderColor != nil && focusedBorderColor == nil {
		return borderColor
	}

	// Only FocusedBorderColor set: unfocused falls back to the default.
	if borderColor == nil && focusedBorderColor != nil {
		if focused {
			return focusedBorderColor
		}
		return styles.BorderDefaultColor
	}

	if focused {
		return focusedBorderColor
	}
	return borderColor
}

// buildTitledBorder creates a horizontal border line with optional titles
// embedded on the left and right. Corner characters are passed in so the same
// logic serves both the top and bottom border.
//
// Format: ╭─ LeftTitle ─────────────────── RightTitle ─╮
func buildTitledBorder(leftCorner, rightCorner, leftTitle, rightTitle string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(leftCorner + rightCorner)
	}

	if leftTitle == "" && rightTitle == "" {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}

	leftTitleWidth := lipgloss.Width(leftTitle)
	rightTitleWidth := lipgloss.Width(rightTitle)

	// Space needed: "─ " + leftTitle + " " + middleDashes + " " + rightTitle + " ─"
	minRequired := 2 + leftTitleWidth + 1 + 1 + 1 + rightTitleWidth + 2
	if rightTitle == "" {
		// Just left title: "─ " + leftTitle + " " + dashes
		minRequired = 2 + leftTitleWidth + 1 + 1
	}
	if leftTitle == "" {
		// Just right title: dashes + " " + rightTitle + " ─"
		minRequired = 1 + 1 + rightTitleWidth + 2
	}

	if innerWidth < minRequired {
		// Too narrow for both, keep the left title if there is one.
		if leftTitle != "" {
			return buildSingleTitleBorder(leftCorner, rightCorner, leftTitle, innerWidth, borderStyle, titleStyle)
		}
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}

	// innerWidth = 2 + leftWidth + 1 + middleDashes + 1 + rightWidth + 2
	var middleDashes int
	switch {
	case leftTitle != "" && rightTitle != "":
		middleDashes = innerWidth - leftTitleWidth - rightTitleWidth - 6
	case leftTitle != "":
		middleDashes = innerWidth - leftTitleWidth - 3
	default:
		middleDashes = innerWidth - rightTitleWidth - 3
	}
	middleDashes = max(middleDashes, 1)

	var result strings.Builder
	result.WriteString(borderStyle.Render(leftCorner))

	if leftTitle != "" {
		result.WriteString(borderStyle.Render(borderHorizontal + " "))
		result.WriteString(titleStyle.Render(leftTitle))
		result.WriteString(borderStyle.Render(" "))
	}

	result.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, middleDashes)))

	if rightTitle != "" {
		result.WriteString(borderStyle.Render(" "))
		result.WriteString(titleStyle.Render(rightTitle))
		result.WriteString(borderStyle.Render(" " + borderHorizontal))
	}

	result.WriteString(borderStyle.Render(rightCorner))

	return result.String()
}

// buildSingleTitleBorder creates a border line with a single left-aligned
// title, truncating the title when it exceeds the available width.
//
// Format: ╭─ Title ──────╮
func buildSingleTitleBorder(leftCorner, rightCorner, title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(leftCorner + rightCorner)
	}

	if title == "" {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}

	// "─ " before and " ─" after leave 4 characters of overhead.
	if innerWidth < 4 {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}

	availableForTitle := innerWidth - 4

	displayTitle := title
	if lipgloss.Width(displayTitle) > availableForTitle {
		displayTitle = styles.TruncateString(displayTitle, availableForTitle)
	}

	// Inner: "─ " (2) + title + " " (1) + dashes = innerWidth
	titleTextWidth := lipgloss.Width(displayTitle)
	remainingWidth := max(innerWidth-3-titleTextWidth, 0)

	return borderStyle.Render(leftCorner+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remainingWidth)+rightCorner)
}
