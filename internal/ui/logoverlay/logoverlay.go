// Package logoverlay provides an in-app log viewer overlay that shows
// recent log entries without leaving the TUI.
package logoverlay

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/styles"
)

const (
	viewportMaxHeight = 25  // Fixed viewport height in lines
	viewportMinHeight = 5   // Minimum viewport height for very small screens
	boxMaxWidth       = 160 // Maximum box width in characters
	boxMinWidth       = 40  // Minimum box width in characters
	maxEntries        = 500 // Entries kept in memory; oldest are dropped first

	// Header, footer, and borders around the viewport: 2 lines each
	// for title+divider, divider+hints, top+bottom border.
	chromeHeight = 6
)

// CloseMsg is sent when the overlay should be closed.
type CloseMsg struct{}

// filterKeys maps the filter hotkeys to their minimum level.
var filterKeys = map[string]log.Level{
	"d": log.LevelDebug,
	"i": log.LevelInfo,
	"w": log.LevelWarn,
	"e": log.LevelError,
}

// levelMarkers is ordered highest first so entryLevel can match ERROR
// before the broader markers.
var levelMarkers = []struct {
	marker string
	level  log.Level
}{
	{"[ERROR]", log.LevelError},
	{"[WARN]", log.LevelWarn},
	{"[INFO]", log.LevelInfo},
	{"[DEBUG]", log.LevelDebug},
}

// Model is the log overlay component state. It accumulates entries from
// the log broker into its own bounded buffer, so logs written while the
// overlay is hidden are still there when it opens.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model

	entries  []string
	listener *log.LogListener
	cancel   context.CancelFunc
}

// New creates a hidden log overlay showing all levels.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// NewWithSize creates a hidden log overlay with known viewport
// dimensions.
func NewWithSize(width, height int) Model {
	m := New()
	m.width = width
	m.height = height
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// StartListening subscribes the overlay to the log broker. The returned
// command must be dispatched for entries to start flowing. Returns nil
// when logging is not initialized or a listener is already running.
func (m *Model) StartListening() tea.Cmd {
	if m.listener != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	listener := log.NewListener(ctx)
	if listener == nil {
		cancel()
		return nil
	}
	m.listener = listener
	m.cancel = cancel
	return listener.Listen()
}

// StopListening unsubscribes the overlay from the log broker.
func (m *Model) StopListening() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		m.listener = nil
	}
}

// Update handles messages for the log overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	// Log events are accumulated even while the overlay is hidden.
	if ev, ok := msg.(log.LogEvent); ok {
		m.appendEntry(ev.Payload)
		if m.visible {
			m.refreshViewport()
		}
		if m.listener != nil {
			return m, m.listener.Listen()
		}
		return m, nil
	}

	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshViewport()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if level, ok := filterKeys[key]; ok {
		m.minLevel = level
		m.refreshViewport()
		return m, nil
	}

	switch key {
	case "c":
		m.entries = nil
		m.refreshViewport()

	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()

	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}

	return m, nil
}

// View renders the log overlay box: title, scrollable entries, and the
// filter hint footer.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render("Logs")

	sections := []string{
		title,
		divider,
		m.viewport.View(),
		divider,
		m.buildFilterHint(),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(strings.Join(sections, "\n"))
}

// appendEntry adds an entry to the buffer, dropping the oldest entries
// once the buffer is full.
func (m *Model) appendEntry(entry string) {
	m.entries = append(m.entries, strings.TrimSuffix(entry, "\n"))
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// buildLogContent renders the buffered entries that pass the level
// filter, one colorized line each.
func (m Model) buildLogContent(contentWidth int) string {
	var lines []string
	for _, entry := range m.entries {
		if m.matchesLevel(entry) {
			lines = append(lines, m.colorizeEntry(entry, contentWidth))
		}
	}

	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// refreshViewport rebuilds the viewport with the current content and
// dimensions. No-op until the overlay has seen a window size.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.contentWidth()
	viewportHeight := min(viewportMaxHeight, m.height-chromeHeight)
	viewportHeight = max(viewportHeight, viewportMinHeight)

	m.viewport = viewport.New(contentWidth, viewportHeight)
	m.viewport.SetContent(m.buildLogContent(contentWidth))
}

// Overlay renders the log overlay centered on the given background.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool {
	return m.visible
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2 // borders
}

// Toggle toggles the overlay visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Show makes the overlay visible.
func (m *Model) Show() {
	m.visible = true
	m.refreshViewport()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the overlay's knowledge of viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshViewport()
}

// entryLevel extracts the level marker from a formatted log entry.
// Entries without a recognizable marker report ok=false.
func entryLevel(entry string) (log.Level, bool) {
	for _, lm := range levelMarkers {
		if strings.Contains(entry, lm.marker) {
			return lm.level, true
		}
	}
	return 0, false
}

// matchesLevel reports whether an entry passes the current filter.
// Entries at or above minLevel pass; unrecognized entries always pass.
func (m Model) matchesLevel(entry string) bool {
	level, ok := entryLevel(entry)
	return !ok || level >= m.minLevel
}

// colorizeEntry styles an entry by its level and truncates it to
// maxWidth display columns.
func (m Model) colorizeEntry(entry string, maxWidth int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}

	color := styles.TextPrimaryColor
	if level, ok := entryLevel(entry); ok {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.ToastBorderInfoColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// buildFilterHint renders the footer hints with the active filter
// level bolded.
func (m Model) buildFilterHint() string {
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	activeStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{mutedStyle.Render("[c] Clear")}
	for _, opt := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		style := mutedStyle
		if m.minLevel == opt.level {
			style = activeStyle
		}
		hints = append(hints, style.Render(opt.label))
	}
	return strings.Join(hints, "  ")
}
