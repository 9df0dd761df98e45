package reports

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/shared/markdown"
	"github.com/zjrosen/stint/internal/ui/shared/panes"
	"github.com/zjrosen/stint/internal/ui/shared/textwidth"
	"github.com/zjrosen/stint/internal/ui/styles"
)

// barWidth is the default width of a percentage bar.
const barWidth = 12

// View renders the period bar, both groupings, and the footer, with
// the markdown overlay on top when open.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	base := strings.Join([]string{
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	}, "\n")
	if m.view == ViewMarkdown {
		return m.overlayMarkdown(base)
	}
	return base
}

func (m Model) renderHeader() string {
	sep := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(" │ ")
	active := lipgloss.NewStyle().Bold(true).Foreground(styles.BorderHighlightFocusColor)
	inactive := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	labels := make([]string, 0, 3)
	for p := PeriodThisWeek; p <= PeriodThisMonth; p++ {
		style := inactive
		if p == m.period {
			style = active
		}
		labels = append(labels, zone.Mark(makePeriodZoneID(p), style.Render(p.String())))
	}
	line := strings.Join(labels, sep)
	span := inactive.Render(m.from.String() + " to " + m.to.String())
	if gap := m.width - lipgloss.Width(line) - lipgloss.Width(span); gap > 0 {
		line += strings.Repeat(" ", gap) + span
	}

	total := lipgloss.NewStyle().Bold(true).Foreground(styles.TotalColor).
		Render("Total: " + styles.FormatMinutes(m.totalMinutes()))
	if m.loading {
		total = inactive.Render("loading...")
	}
	return line + "\n" + total
}

func (m Model) renderBody() string {
	bodyHeight := max(m.height-3, 3)
	leftWidth := m.width / 2
	left := m.renderSection("By project", m.byProject, leftWidth, bodyHeight)
	right := m.renderSection("By activity", m.byActivity, m.width-leftWidth, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderSection(title string, rows []store.ReportRow, width, height int) string {
	inner := max(width-2, 1)
	contentRows := max(height-2, 1)

	var lines []string
	if len(rows) == 0 {
		empty := "No time booked"
		if m.loading {
			empty = "loading..."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(empty))
	} else {
		total := 0
		for _, r := range rows {
			total += r.Minutes
		}
		for _, r := range rows {
			lines = append(lines, renderBarLine(r, total, inner))
		}
	}

	hidden := 0
	if len(lines) > contentRows {
		hidden = len(lines) - contentRows
		lines = lines[:contentRows]
	}

	cfg := panes.BorderConfig{
		Content:    strings.Join(lines, "\n"),
		Width:      width,
		Height:     height,
		TopLeft:    title,
		PreWrapped: true,
	}
	if hidden > 0 {
		cfg.BottomRight = fmt.Sprintf("+%d", hidden)
	}
	return panes.BorderedPane(cfg)
}

// renderBarLine lays out one row as name, bar, time, and share. The
// bar gives way to the name on narrow panes.
func renderBarLine(row store.ReportRow, total, width int) string {
	const pctWidth = 4
	const timeWidth = 7

	barW := barWidth
	nameW := width - barW - timeWidth - pctWidth - 3
	if nameW < 8 {
		barW = max(width-8-timeWidth-pctWidth-3, 0)
		nameW = width - barW - timeWidth - pctWidth - 3
	}
	if nameW < 1 {
		return textwidth.Truncate(row.Name, width)
	}

	share := 0.0
	if total > 0 {
		share = float64(row.Minutes) / float64(total)
	}

	name := lipgloss.NewStyle().Width(nameW).Render(textwidth.Truncate(row.Name, nameW))
	timeCol := fmt.Sprintf("%*s", timeWidth, styles.FormatMinutes(row.Minutes))
	pct := fmt.Sprintf("%*d%%", pctWidth-1, int(share*100+0.5))
	return name + " " + renderBar(share, barW) + " " + timeCol + " " + pct
}

func renderBar(share float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := min(max(int(share*float64(width)+0.5), 0), width)
	fill := lipgloss.NewStyle().Foreground(styles.ReportBarColor).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(strings.Repeat("░", width-filled))
	return fill + rest
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
	hints := "h/l period · R markdown · y copy"
	return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Width(m.width).Render(hints)
}

func (m Model) overlayMarkdown(base string) string {
	w, h := m.overlaySize()
	box := panes.BorderedPane(panes.BorderConfig{
		Content:            m.viewport.View(),
		Width:              w,
		Height:             h,
		TopLeft:            "Report",
		TopRight:           "esc to close",
		PreWrapped:         true,
		Focused:            true,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, base)
}

func (m Model) overlaySize() (int, int) {
	w := min(m.width-6, 84)
	if w < 24 {
		w = max(m.width-2, 20)
	}
	h := min(m.height-4, 30)
	if h < 7 {
		h = max(m.height-2, 5)
	}
	return w, h
}

// renderMarkdown renders the report markdown at the overlay width,
// rebuilding the glamour renderer when the width changes.
func (m *Model) renderMarkdown() string {
	raw := m.buildMarkdown()
	width := max(m.viewport.Width, 1)
	if m.renderer == nil || m.renderer.Width() != width {
		r, err := markdown.New(width, "")
		if err != nil {
			return raw
		}
		m.renderer = r
	}
	rendered, err := m.renderer.Render(raw)
	if err != nil {
		return raw
	}
	return rendered
}

// buildMarkdown produces the plain markdown report used by the overlay
// and the clipboard export.
func (m Model) buildMarkdown() string {
	var b strings.Builder
	b.WriteString("# Time report\n\n")
	fmt.Fprintf(&b, "%s · %s to %s\n\n", m.period, m.from, m.to)
	fmt.Fprintf(&b, "Total: %s\n", styles.FormatMinutes(m.totalMinutes()))

	if len(m.byProject) == 0 {
		b.WriteString("\nNo time booked in this period.\n")
		return b.String()
	}

	writeSection(&b, "By project", m.byProject)
	writeSection(&b, "By activity", m.byActivity)
	return b.String()
}

func writeSection(b *strings.Builder, title string, rows []store.ReportRow) {
	total := 0
	for _, r := range rows {
		total += r.Minutes
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	b.WriteString("| Name | Time | Share |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	for _, r := range rows {
		share := 0
		if total > 0 {
			share = int(float64(r.Minutes)/float64(total)*100 + 0.5)
		}
		fmt.Fprintf(b, "| %s | %s | %d%% |\n", r.Name, styles.FormatMinutes(r.Minutes), share)
	}
}

func (m Model) totalMinutes() int {
	total := 0
	for _, r := range m.byProject {
		total += r.Minutes
	}
	return total
}
