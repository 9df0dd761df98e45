// Package picker implements the small centered list used to choose a
// project, activity, or customer.
package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/styles"
)

const boxWidth = 25

// Option is one selectable row.
type Option struct {
	Label string
	Value string
	Color lipgloss.TerminalColor // Optional color for the label
}

// SelectMsg is sent when an option is chosen with Enter.
type SelectMsg struct {
	Option Option
}

// CancelMsg is sent when the picker is dismissed with Esc.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	title    string
	options  []Option
	selected int
	width    int // viewport, for overlay centering
	height   int
}

// New creates a picker titled title over options, with the first
// option selected.
func New(title string, options []Option) Model {
	return Model{title: title, options: options}
}

// SetSize records the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetSelected moves the selection to index. Out-of-range indexes are
// ignored so callers can pass a lookup result directly.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// Selected returns the option under the cursor, or the zero Option
// when the picker is empty.
func (m Model) Selected() Option {
	if len(m.options) == 0 {
		return Option{}
	}
	return m.options[m.selected]
}

// Update handles navigation, selection, and cancel keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down", "ctrl+n":
		if len(m.options) > 0 {
			m.selected = min(m.selected+1, len(m.options)-1)
		}
	case "k", "up", "ctrl+p":
		m.selected = max(m.selected-1, 0)
	case "enter":
		if len(m.options) == 0 {
			return m, nil
		}
		opt := m.Selected()
		return m, func() tea.Msg { return SelectMsg{Option: opt} }
	case "esc":
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

// View renders the picker box: title, divider, one row per option.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render(m.title)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	rows := make([]string, 0, len(m.options)+2)
	rows = append(rows, title, divider)
	for i, opt := range m.options {
		rows = append(rows, m.renderOption(opt, i == m.selected))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(strings.Join(rows, "\n"))
}

// renderOption draws one row, bold with a "> " marker when selected.
func (m Model) renderOption(opt Option, selected bool) string {
	label := lipgloss.NewStyle().Bold(selected)
	if opt.Color != nil {
		label = label.Foreground(opt.Color)
	}
	if selected {
		return styles.SelectionIndicatorStyle.Render(">") + label.Render(opt.Label)
	}
	return " " + label.Render(opt.Label)
}

// Overlay centers the picker over the background view.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

// FindIndexByValue returns the index of the option carrying value, or
// 0 when no option matches.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
