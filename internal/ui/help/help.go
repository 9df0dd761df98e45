// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextDescriptionColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	width  int
	height int
}

// New creates a new help view.
func New() Model {
	return Model{}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	// Column style with right margin for spacing
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var globalCol strings.Builder
	globalCol.WriteString(sectionStyle.Render("Global"))
	globalCol.WriteString("\n")
	globalCol.WriteString(renderKeyDesc("1/2/3", "switch mode"))
	globalCol.WriteString(renderKeyDesc("u", "undo"))
	globalCol.WriteString(renderKeyDesc("ctrl+r", "redo"))
	globalCol.WriteString(renderKeyDesc("ctrl+h", "history"))
	globalCol.WriteString(renderKeyDesc("?", "help"))
	globalCol.WriteString(renderKeyDesc("q", "quit"))

	var timesheetCol strings.Builder
	timesheetCol.WriteString(sectionStyle.Render("Timesheet"))
	timesheetCol.WriteString("\n")
	timesheetCol.WriteString(renderKeyDesc("h/l", "prev/next day"))
	timesheetCol.WriteString(renderKeyDesc("j/k", "entry up/down"))
	timesheetCol.WriteString(renderKeyDesc("[ ]", "shift week"))
	timesheetCol.WriteString(renderKeyDesc("n", "new entry"))
	timesheetCol.WriteString(renderKeyDesc("e", "edit entry"))
	timesheetCol.WriteString(renderKeyDesc("d", "delete entry"))
	timesheetCol.WriteString(renderKeyDesc("m", "move entry"))
	timesheetCol.WriteString(renderKeyDesc("y", "copy day"))

	var adminCol strings.Builder
	adminCol.WriteString(sectionStyle.Render("Admin"))
	adminCol.WriteString("\n")
	adminCol.WriteString(renderKeyDesc("tab", "next table"))
	adminCol.WriteString(renderKeyDesc("j/k", "row up/down"))
	adminCol.WriteString(renderKeyDesc("n", "new"))
	adminCol.WriteString(renderKeyDesc("r", "rename"))
	adminCol.WriteString(renderKeyDesc("a", "archive"))

	var reportsCol strings.Builder
	reportsCol.WriteString(sectionStyle.Render("Reports"))
	reportsCol.WriteString("\n")
	reportsCol.WriteString(renderKeyDesc("h/l", "period"))
	reportsCol.WriteString(renderKeyDesc("R", "markdown"))
	reportsCol.WriteString(renderKeyDesc("y", "copy report"))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(globalCol.String()),
		columnStyle.Render(timesheetCol.String()),
		columnStyle.Render(adminCol.String()),
		reportsCol.String(), // Last column doesn't need right margin
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4 // Add horizontal padding (2 each side)

	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press ? or esc to close"))
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
