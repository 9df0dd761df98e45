// Package toaster shows transient notification toasts above the active
// view, e.g. "Undid: Create entry on 2026-03-11".
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/styles"
)

// Style selects the toast variant.
type Style int

const (
	// StyleSuccess reports a committed mutation, undo, or redo.
	StyleSuccess Style = iota
	// StyleError reports a failed command effect.
	StyleError
	// StyleInfo reports a neutral notice, like an external reload.
	StyleInfo
	// StyleWarn reports a recoverable condition, like a busy coordinator.
	StyleWarn
)

// variant pairs a style's icon with its border color.
type variant struct {
	icon   string
	border lipgloss.TerminalColor
}

var variants = map[Style]variant{
	StyleSuccess: {"✅", styles.ToastBorderSuccessColor},
	StyleError:   {"❌", styles.ToastBorderErrorColor},
	StyleInfo:    {"ℹ️", styles.ToastBorderInfoColor},
	StyleWarn:    {"⚠️", styles.ToastBorderWarnColor},
}

// Model is the toast state. At most one toast shows at a time; a new
// Show replaces whatever is on screen.
type Model struct {
	message string
	style   Style
	visible bool
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show replaces the current toast with message in the given style.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether a toast is on screen.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the toast box: icon, message, rounded border in the
// variant's color.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	v := variants[m.style]
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(v.border)
	return box.Render(v.icon + " " + m.message)
}

// Overlay composites the toast bottom-center over bg, one row off the
// bottom edge so it clears the status bar.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}

	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg asks the app to hide the toast.
type DismissMsg struct{}

// ScheduleDismiss emits a DismissMsg after d.
func ScheduleDismiss(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{}
	})
}
