package table

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/stint/internal/ui/shared/panes"
)

// wheelDelta is the number of rows scrolled per mouse wheel tick.
const wheelDelta = 3

// Model is the table state. Rendering is driven entirely by the config and
// the data set via SetRows; selection state lives with the caller.
type Model[R any] struct {
	config TableConfig[R]
	rows   []R

	width  int
	height int

	// viewHeight is the number of data rows that fit in the content area.
	viewHeight int

	// targetYOffset is the index of the first visible row when scrolling.
	targetYOffset int
}

// New creates a table model with the given configuration.
// Panics if the config is invalid. Table configs are static column
// definitions, so an invalid one is a programming error caught at startup.
func New[R any](cfg TableConfig[R]) Model[R] {
	if err := ValidateConfig(cfg); err != nil {
		panic(err)
	}
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No data"
	}
	return Model[R]{config: cfg}
}

// SetRows replaces the table's row data. The scroll offset is re-clamped so a
// shrinking data set never leaves the viewport past the end.
func (m Model[R]) SetRows(rows []R) Model[R] {
	m.rows = rows
	m.targetYOffset = m.clampYOffset(m.targetYOffset)
	return m
}

// SetConfig replaces the table configuration, preserving rows and dimensions.
// Panics if the new config is invalid.
func (m Model[R]) SetConfig(cfg TableConfig[R]) Model[R] {
	if err := ValidateConfig(cfg); err != nil {
		panic(err)
	}
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No data"
	}
	m.config = cfg
	return m.SetSize(m.width, m.height)
}

// SetSize updates the table dimensions and recomputes how many rows fit.
func (m Model[R]) SetSize(width, height int) Model[R] {
	m.width = width
	m.height = height

	viewHeight := height
	if m.config.ShowBorder {
		viewHeight -= 2
	}
	if m.config.ShowHeader {
		viewHeight--
	}
	m.viewHeight = max(viewHeight, 0)
	m.targetYOffset = m.clampYOffset(m.targetYOffset)
	return m
}

// SetYOffset sets the index of the first visible row, clamped to the valid
// range.
func (m Model[R]) SetYOffset(offset int) Model[R] {
	m.targetYOffset = m.clampYOffset(offset)
	return m
}

// YOffset returns the index of the first visible row.
func (m Model[R]) YOffset() int {
	return m.targetYOffset
}

// RowCount returns the number of rows currently set.
func (m Model[R]) RowCount() int {
	return len(m.rows)
}

// EnsureVisible scrolls the minimum amount needed to bring the row at index
// into view. Used by callers after moving their selection cursor.
func (m Model[R]) EnsureVisible(index int) Model[R] {
	if !m.config.Scrollable || len(m.rows) == 0 {
		return m
	}
	index = min(max(index, 0), len(m.rows)-1)

	if index < m.targetYOffset {
		m.targetYOffset = index
	} else if m.viewHeight > 0 && index >= m.targetYOffset+m.viewHeight {
		m.targetYOffset = index - m.viewHeight + 1
	}
	m.targetYOffset = m.clampYOffset(m.targetYOffset)
	return m
}

// Update handles mouse wheel scrolling for scrollable tables. All other
// messages are ignored; key-driven navigation belongs to the caller.
func (m Model[R]) Update(msg tea.Msg) (Model[R], tea.Cmd) {
	if !m.config.Scrollable {
		return m, nil
	}

	if mouse, ok := msg.(tea.MouseMsg); ok {
		switch mouse.Button {
		case tea.MouseButtonWheelUp:
			m.targetYOffset = m.clampYOffset(m.targetYOffset - wheelDelta)
		case tea.MouseButtonWheelDown:
			m.targetYOffset = m.clampYOffset(m.targetYOffset + wheelDelta)
		}
	}

	return m, nil
}

// View renders the table with no row selected.
func (m Model[R]) View() string {
	return m.renderTable(-1)
}

// ViewWithSelection renders the table with the given row highlighted.
// Pass -1 to render without a selection.
func (m Model[R]) ViewWithSelection(selectedIndex int) string {
	return m.renderTable(selectedIndex)
}

func (m Model[R]) clampYOffset(offset int) int {
	maxOffset := max(len(m.rows)-m.viewHeight, 0)
	return min(max(offset, 0), maxOffset)
}

func (m Model[R]) renderTable(selectedIndex int) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	innerWidth := m.width
	innerHeight := m.height
	if m.config.ShowBorder {
		innerWidth = max(m.width-2, 1)
		innerHeight = max(m.height-2, 1)
	}

	// Responsive hiding keys off the total table width, not the inner
	// content width, so breakpoints line up with terminal size.
	visible := filterVisibleColumns(m.config.Columns, m.width)
	widths := calculateColumnWidths(visible, innerWidth)

	var content string
	switch {
	case len(m.rows) == 0:
		content = renderEmptyState(m.config.EmptyMessage, innerWidth, innerHeight)
	case m.config.Scrollable:
		content = m.renderScrollableContent(visible, widths, innerWidth, selectedIndex)
	default:
		content = m.renderStaticContent(visible, widths, innerWidth, selectedIndex)
	}

	if !m.config.ShowBorder {
		return content
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:            content,
		Width:              m.width,
		Height:             m.height,
		TopLeft:            m.config.Title,
		PreWrapped:         true,
		Focused:            m.config.Focused,
		BorderColor:        m.config.BorderColor,
		FocusedBorderColor: m.config.FocusedBorderColor,
	})
}

// renderStaticContent renders the header and every row.
func (m Model[R]) renderStaticContent(cols []ColumnConfig[R], widths []int, innerWidth, selectedIndex int) string {
	var lines []string

	if m.config.ShowHeader {
		lines = append(lines, renderHeader(cols, widths))
	}

	for i, row := range m.rows {
		lines = append(lines, m.renderMarkedRow(i, row, cols, widths, i == selectedIndex, innerWidth))
	}

	return strings.Join(lines, "\n")
}

// renderScrollableContent renders a sticky header and the window of rows
// starting at targetYOffset.
func (m Model[R]) renderScrollableContent(cols []ColumnConfig[R], widths []int, innerWidth, selectedIndex int) string {
	var lines []string

	if m.config.ShowHeader {
		lines = append(lines, renderHeader(cols, widths))
	}

	end := min(m.targetYOffset+m.viewHeight, len(m.rows))
	for i := m.targetYOffset; i < end; i++ {
		lines = append(lines, m.renderMarkedRow(i, m.rows[i], cols, widths, i == selectedIndex, innerWidth))
	}

	return strings.Join(lines, "\n")
}

func (m Model[R]) renderMarkedRow(index int, row R, cols []ColumnConfig[R], widths []int, selected bool, fullWidth int) string {
	line := renderRow(row, cols, widths, selected, fullWidth)
	if m.config.RowZoneID == nil {
		return line
	}
	return zone.Mark(m.config.RowZoneID(index, row), line)
}
