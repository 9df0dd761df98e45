// Package historypanel provides an overlay that lists the undo timeline:
// undone commands awaiting redo, the present command, and the applied
// commands beneath it. Selecting a note rewrite shows a word-level diff of
// the change.
package historypanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/shared/panes"
	"github.com/zjrosen/stint/internal/ui/styles"
	"github.com/zjrosen/stint/internal/undo"
)

const (
	boxMaxWidth = 80 // Maximum panel width in characters
	boxMinWidth = 44 // Minimum panel width for very small screens
	listMaxRows = 14 // Visible timeline rows before scrolling kicks in

	// diffSectionHeight is the total height of the note-change pane,
	// borders included.
	diffSectionHeight = 6
)

// CloseMsg is sent when the panel should be closed.
type CloseMsg struct{}

// section identifies where a row sits in the timeline.
type section int

const (
	sectionFuture  section = iota // Undone, awaiting redo
	sectionPresent                // The most recently applied command
	sectionPast                   // Applied commands beneath present
)

// row is one line of the timeline listing. cmd is nil only for the
// present marker when no present command exists.
type row struct {
	section section
	cmd     undo.Command
}

// noteChanger is implemented by commands that rewrite an entry's note.
type noteChanger interface {
	NoteChange() (old, new string, ok bool)
}

var (
	glyphFutureStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	glyphPresentStyle = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	glyphPastStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	labelFutureStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	labelPresentStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	labelPastStyle    = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	metaStyle        = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	placeholderStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true)

	noteTextStyle  = lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
	deletedSegment = lipgloss.NewStyle().Foreground(styles.DiffDeleteColor).Strikethrough(true)
	addedSegment   = lipgloss.NewStyle().Foreground(styles.DiffInsertColor)
	delPrefixStyle = lipgloss.NewStyle().Foreground(styles.DiffDeleteColor)
	addPrefixStyle = lipgloss.NewStyle().Foreground(styles.DiffInsertColor)
)

// Model is the history panel component state.
type Model struct {
	visible  bool
	rows     []row
	selected int
	clock    func() time.Time

	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden history panel. A nil clock defaults to time.Now;
// tests substitute a fixed one so relative times are stable.
func New(clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	return Model{clock: clock}
}

// SetTimeline replaces the panel's rows from a history snapshot: future
// soonest first, then the present marker, then past newest first. The
// selection is reset to the present row.
func (m *Model) SetTimeline(future []undo.Command, present undo.Command, past []undo.Command) {
	rows := make([]row, 0, len(future)+1+len(past))
	for _, cmd := range future {
		rows = append(rows, row{section: sectionFuture, cmd: cmd})
	}
	rows = append(rows, row{section: sectionPresent, cmd: present})
	for i := len(past) - 1; i >= 0; i-- {
		rows = append(rows, row{section: sectionPast, cmd: past[i]})
	}

	m.rows = rows
	m.selected = len(future)
	m.refreshViewport()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and close keys while the panel is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.moveSelection(1)
			return m, nil

		case "k", "up":
			m.moveSelection(-1)
			return m, nil

		case "g":
			m.setSelection(0)
			return m, nil

		case "G":
			m.setSelection(len(m.rows) - 1)
			return m, nil

		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+h", "esc":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshViewport()
	}

	return m, nil
}

// View renders the panel: the timeline list and, when the selected row is a
// note rewrite, a word-diff section below it.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()

	rightTitle := ""
	if len(m.rows) > 0 {
		rightTitle = fmt.Sprintf("%d/%d", m.selected+1, len(m.rows))
	}

	list := panes.ScrollablePane(boxWidth, m.listHeight(), panes.ScrollableConfig{
		Viewport:            &m.viewport,
		LeftTitle:           "History",
		RightTitle:          rightTitle,
		BottomLeft:          "j/k move · esc close",
		ShowScrollIndicator: true,
		TitleColor:          styles.OverlayTitleColor,
		BorderColor:         styles.OverlayBorderColor,
	}, m.renderRows)

	diff := m.selectedNoteDiff()
	if diff == nil {
		return list
	}

	return lipgloss.JoinVertical(lipgloss.Left, list, m.renderNoteDiff(*diff, boxWidth))
}

// Overlay renders the panel centered on the given background.
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

// Visible returns whether the panel is currently shown.
func (m Model) Visible() bool {
	return m.visible
}

// Selected returns the command under the selection cursor, or nil for the
// empty present marker.
func (m Model) Selected() undo.Command {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	return m.rows[m.selected].cmd
}

// Toggle flips the panel's visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Show makes the panel visible.
func (m *Model) Show() {
	m.visible = true
	m.refreshViewport()
}

// Hide makes the panel invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the panel's knowledge of the terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshViewport()
}

func (m *Model) moveSelection(delta int) {
	m.setSelection(m.selected + delta)
}

func (m *Model) setSelection(index int) {
	if len(m.rows) == 0 {
		return
	}
	m.selected = min(max(index, 0), len(m.rows)-1)
	m.refreshViewport()
}

// refreshViewport rebuilds the viewport for the current rows, selection,
// and dimensions, then scrolls the selection into view.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.contentWidth()
	m.viewport = viewport.New(contentWidth, m.listHeight()-2)
	m.viewport.SetContent(m.renderRows(contentWidth))
	m.scrollToSelection()
}

func (m *Model) scrollToSelection() {
	if m.selected < m.viewport.YOffset {
		m.viewport.SetYOffset(m.selected)
	} else if m.selected >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

func (m Model) boxWidth() int {
	return max(min(m.width-8, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// listHeight returns the height of the list pane, borders included. The
// list shrinks to leave room for the diff section and small screens.
func (m Model) listHeight() int {
	rows := min(len(m.rows), listMaxRows)

	avail := m.height - 4
	if m.selectedNoteDiff() != nil {
		avail -= diffSectionHeight
	}
	rows = min(rows, avail-2)

	return max(rows, 1) + 2
}

// renderRows renders every timeline row at the given width.
func (m Model) renderRows(wrapWidth int) string {
	if len(m.rows) == 0 {
		return placeholderStyle.Render("no history yet")
	}

	now := m.clock()
	lines := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		lines = append(lines, m.renderRow(r, i == m.selected, wrapWidth, now))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one timeline line: selection marker, section glyph,
// label, and right-aligned kind plus relative time.
func (m Model) renderRow(r row, selected bool, width int, now time.Time) string {
	prefix := "  "
	if selected {
		prefix = styles.SelectionIndicatorStyle.Render("> ")
	}

	var glyph, label string
	var glyphStyle, labelStyle lipgloss.Style
	switch r.section {
	case sectionFuture:
		glyph, glyphStyle = "↷", glyphFutureStyle
		labelStyle = labelFutureStyle
	case sectionPresent:
		glyph, glyphStyle = "●", glyphPresentStyle
		labelStyle = labelPresentStyle
	case sectionPast:
		glyph, glyphStyle = "↶", glyphPastStyle
		labelStyle = labelPastStyle
	}

	if r.cmd == nil {
		return prefix + glyphStyle.Render(glyph) + " " + placeholderStyle.Render("current state")
	}

	meta := fmt.Sprintf("%s · %s", r.cmd.Kind(), styles.FormatRelativeTime(r.cmd.CreatedAt(), now))

	// prefix(2) + glyph(1) + space(1), and at least two cells of gap
	labelRoom := width - 4 - lipgloss.Width(meta) - 2
	label = styles.TruncateString(undo.LabelOf(r.cmd), max(labelRoom, 8))

	gap := max(width-4-lipgloss.Width(label)-lipgloss.Width(meta), 1)

	return prefix + glyphStyle.Render(glyph) + " " + labelStyle.Render(label) +
		strings.Repeat(" ", gap) + metaStyle.Render(meta)
}

// selectedNoteDiff returns the word diff for the selected row when that
// command rewrites an entry note, nil otherwise.
func (m Model) selectedNoteDiff() *noteDiff {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	cmd := m.rows[m.selected].cmd
	if cmd == nil {
		return nil
	}

	nc, ok := cmd.(noteChanger)
	if !ok {
		return nil
	}
	oldNote, newNote, ok := nc.NoteChange()
	if !ok {
		return nil
	}

	d := computeNoteDiff(oldNote, newNote)
	return &d
}

// renderNoteDiff renders the before/after note lines with changed words
// highlighted. Long notes wrap inside the pane and clip at its height.
func (m Model) renderNoteDiff(d noteDiff, width int) string {
	oldLine := delPrefixStyle.Render("- ") + renderNoteSide(d.Old, deletedSegment)
	newLine := addPrefixStyle.Render("+ ") + renderNoteSide(d.New, addedSegment)

	return panes.BorderedPane(panes.BorderConfig{
		Content:     oldLine + "\n" + newLine,
		Width:       width,
		Height:      diffSectionHeight,
		TopLeft:     "Note change",
		TitleColor:  styles.OverlayTitleColor,
		BorderColor: styles.OverlayBorderColor,
	})
}

func renderNoteSide(segments []segment, changedStyle lipgloss.Style) string {
	if len(segments) == 0 {
		return placeholderStyle.Render("(no note)")
	}
	return renderSegments(segments, noteTextStyle, changedStyle)
}
