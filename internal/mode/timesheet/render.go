package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/shared/panes"
	"github.com/zjrosen/stint/internal/ui/shared/textwidth"
	"github.com/zjrosen/stint/internal/ui/styles"
)

// detailHeight is the bordered detail pane height, borders included.
const detailHeight = 7

func (m Model) renderGrid() string {
	detail := detailHeight
	if m.height < 18 {
		// Too short for the detail pane, give the grid everything
		detail = 0
	}
	gridHeight := m.height - 2 - detail
	if gridHeight < 3 {
		gridHeight = 3
	}

	widths := columnWidths(m.width, len(m.days))
	columns := make([]string, len(m.days))
	for i := range m.days {
		columns[i] = m.renderDayColumn(i, widths[i], gridHeight)
	}

	sections := []string{
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	}
	if detail > 0 {
		sections = append(sections, m.renderDetail(detail))
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	left := lipgloss.NewStyle().Bold(true).Render("Week of " + m.weekStart.String())
	right := lipgloss.NewStyle().Foreground(styles.TotalColor).Render(styles.FormatMinutes(m.weekTotal()))
	if m.loading {
		right = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("loading...")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderDayColumn(i, width, height int) string {
	day := m.days[i]
	entries := m.entries[day]
	inner := width - 2
	rows := height - 2
	focused := i == m.dayIdx

	// Scroll the window so the selection stays visible
	start := 0
	if focused && m.entryIdx >= rows {
		start = m.entryIdx - rows + 1
	}

	lines := make([]string, 0, rows)
	for idx := start; idx < len(entries) && len(lines) < rows; idx++ {
		e := entries[idx]
		text := textwidth.Truncate(entryLine(e, m.projectName(e.ProjectID), m.activityName(e.ActivityID)), inner)
		if focused && idx == m.entryIdx {
			text = lipgloss.NewStyle().
				Background(styles.SelectionBackgroundColor).
				Width(inner).
				Render(text)
		}
		lines = append(lines, text)
	}
	if len(entries) == 0 && focused {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("n to add"))
	}

	cfg := panes.BorderConfig{
		Content:            strings.Join(lines, "\n"),
		Width:              width,
		Height:             height,
		TopLeft:            dayTitle(day),
		PreWrapped:         true,
		Focused:            focused,
		TitleColor:         m.dayTitleColor(day),
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	}
	if total := dayTotal(entries); total > 0 {
		cfg.TopRight = styles.FormatMinutes(total)
	}
	if hidden := len(entries) - start - rows; hidden > 0 {
		cfg.BottomRight = fmt.Sprintf("+%d", hidden)
	}
	return panes.BorderedPane(cfg)
}

func (m Model) renderDetail(height int) string {
	inner := m.width - 2
	contentRows := height - 2

	cfg := panes.BorderConfig{
		Width:      m.width,
		Height:     height,
		TopLeft:    "Detail",
		PreWrapped: true,
	}

	var lines []string
	if entry := m.selectedEntry(); entry == nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No entry selected"))
	} else {
		meta := fmt.Sprintf("%s · %s · %s",
			m.projectName(entry.ProjectID), m.activityName(entry.ActivityID), styles.FormatMinutes(entry.Minutes))
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(textwidth.Truncate(meta, inner)))
		if entry.Note == "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor).Render("No note"))
		} else {
			noteStyle := lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
			for _, noteLine := range strings.Split(wordwrap.String(entry.Note, inner), "\n") {
				lines = append(lines, noteStyle.Render(noteLine))
			}
		}
		cfg.TopRight = "edited " + styles.FormatRelativeTime(entry.UpdatedAt, m.services.Clock.Now())
	}
	if len(lines) > contentRows {
		lines = lines[:contentRows]
	}
	cfg.Content = strings.Join(lines, "\n")
	return panes.BorderedPane(cfg)
}

func (m Model) renderFooter() string {
	if m.err != nil {
		msg := "Error"
		if m.errContext != "" {
			msg += " " + m.errContext
		}
		msg += ": " + m.err.Error() + "  [Press any key to dismiss]"
		return styles.ErrorStyle.Width(m.width).Render(msg)
	}
	hints := "n new · e edit · d delete · m move · y copy day · [ ] week"
	return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Width(m.width).Render(hints)
}

// daySummary renders a plain-text report of one day for the clipboard.
func (m Model) daySummary(day store.Day) string {
	var b strings.Builder
	total := 0
	fmt.Fprintf(&b, "%s\n", day)
	for _, e := range m.entries[day] {
		total += e.Minutes
		fmt.Fprintf(&b, "- %s · %s · %s",
			m.projectName(e.ProjectID), m.activityName(e.ActivityID), styles.FormatMinutes(e.Minutes))
		if e.Note != "" {
			fmt.Fprintf(&b, " (%s)", e.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total: %s\n", styles.FormatMinutes(total))
	return b.String()
}

func (m Model) dayTitleColor(day store.Day) lipgloss.TerminalColor {
	if day == store.DayOf(m.services.Clock.Now()) {
		return styles.DayTodayColor
	}
	if t, err := day.Time(); err == nil {
		switch t.Weekday() {
		case time.Saturday, time.Sunday:
			return styles.DayWeekendColor
		}
	}
	return nil
}

func dayTitle(day store.Day) string {
	t, err := day.Time()
	if err != nil {
		return day.String()
	}
	return fmt.Sprintf("%s %d", t.Format("Mon"), t.Day())
}

func entryLine(e *store.Entry, project, activity string) string {
	line := fmt.Sprintf("%s · %s · %s", project, activity, styles.FormatMinutes(e.Minutes))
	if e.Note != "" {
		line += " · " + e.Note
	}
	return line
}

func dayTotal(entries []*store.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Minutes
	}
	return total
}

func (m Model) weekTotal() int {
	total := 0
	for _, entries := range m.entries {
		total += dayTotal(entries)
	}
	return total
}

// columnWidths splits total evenly across cols, handing the remainder
// out one cell at a time from the left.
func columnWidths(total, cols int) []int {
	widths := make([]int, cols)
	base := total / cols
	extra := total % cols
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}
