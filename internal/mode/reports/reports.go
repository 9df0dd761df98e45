// Package reports implements the reporting mode: period presets over
// aggregated project and activity totals, rendered as percentage bars
// with a glamour markdown overlay and clipboard export.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/stint/internal/cachemanager"
	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/tracing"
	"github.com/zjrosen/stint/internal/ui/shared/markdown"
	"github.com/zjrosen/stint/internal/ui/toaster"
)

var tracer = otel.Tracer("stint/reports")

// ViewMode represents which surface currently has input focus.
type ViewMode int

const (
	// ViewReport is the bar-chart report view.
	ViewReport ViewMode = iota
	// ViewMarkdown is the rendered markdown overlay.
	ViewMarkdown
)

// Period is a preset reporting window.
type Period int

const (
	PeriodThisWeek Period = iota
	PeriodLastWeek
	PeriodThisMonth
)

// String returns the label shown in the period bar.
func (p Period) String() string {
	switch p {
	case PeriodLastWeek:
		return "Last week"
	case PeriodThisMonth:
		return "This month"
	default:
		return "This week"
	}
}

// periodRange resolves a preset to its inclusive day span.
func periodRange(p Period, now time.Time) (store.Day, store.Day) {
	switch p {
	case PeriodLastWeek:
		return store.WeekOf(now.AddDate(0, 0, -7))
	case PeriodThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return store.DayOf(first), store.DayOf(first.AddDate(0, 1, -1))
	default:
		return store.WeekOf(now)
	}
}

func makePeriodZoneID(p Period) string {
	return fmt.Sprintf("reports-period-%d", p)
}

// Model is the reports mode controller.
type Model struct {
	services mode.Services

	view   ViewMode
	period Period

	from store.Day
	to   store.Day

	byProject  []store.ReportRow
	byActivity []store.ReportRow

	viewport viewport.Model
	ready    bool
	renderer *markdown.Renderer

	width  int
	height int

	loading    bool
	err        error
	errContext string
}

// New creates the reports mode focused on the current week.
func New(services mode.Services) Model {
	from, to := periodRange(PeriodThisWeek, services.Clock.Now())
	return Model{
		services: services,
		from:     from,
		to:       to,
		loading:  true,
	}
}

// Init loads the initial report.
func (m Model) Init() tea.Cmd {
	return m.loadReportCmd(false)
}

// SetSize updates the terminal dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if m.ready {
		w, h := m.overlaySize()
		m.viewport.Width = w - 2
		m.viewport.Height = h - 2
		m.viewport.SetContent(m.renderMarkdown())
	}
	return m
}

// Refresh reloads the report, bypassing the cache. The app calls this
// after undo and redo so totals reflect the restored state.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.loading = true
	return m, m.loadReportCmd(true)
}

// HandleDBChanged reloads after the database changed underneath us.
// Deferred while the markdown overlay is open.
func (m Model) HandleDBChanged() (Model, tea.Cmd) {
	if m.loading || m.view != ViewReport {
		return m, nil
	}
	return m.Refresh()
}

// TextInputActive reports whether a free-text control is focused.
// Reports has none, so global key bindings always apply.
func (m Model) TextInputActive() bool {
	return false
}

// Update handles messages for the reports mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case reportLoadedMsg:
		return m.handleReportLoaded(msg)
	case copyDoneMsg:
		return m.handleCopyDone(msg)
	case clearErrorMsg:
		m.err = nil
		m.errContext = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.view == ViewMarkdown {
		switch msg.String() {
		case "esc", "R":
			m.view = ViewReport
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Dismiss error on any key press
	// Don't return early - let the key continue to be processed
	if m.err != nil {
		m.err = nil
		m.errContext = ""
	}

	switch msg.String() {
	case "h", "left", "shift+tab":
		return m.switchPeriod(-1)
	case "l", "right", "tab":
		return m.switchPeriod(1)
	case "R":
		return m.openMarkdown()
	case "y":
		return m, m.copyReportCmd()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.view == ViewMarkdown {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		for p := PeriodThisWeek; p <= PeriodThisMonth; p++ {
			if z := zone.Get(makePeriodZoneID(p)); z != nil && z.InBounds(msg) {
				if p == m.period {
					return m, nil
				}
				return m.setPeriod(p)
			}
		}
	}
	return m, nil
}

func (m Model) switchPeriod(delta int) (Model, tea.Cmd) {
	return m.setPeriod(Period((int(m.period) + delta + 3) % 3))
}

func (m Model) setPeriod(p Period) (Model, tea.Cmd) {
	m.period = p
	m.from, m.to = periodRange(p, m.services.Clock.Now())
	m.loading = true
	return m, m.loadReportCmd(false)
}

func (m Model) openMarkdown() (Model, tea.Cmd) {
	w, h := m.overlaySize()
	if !m.ready {
		m.viewport = viewport.New(w-2, h-2)
		m.ready = true
	} else {
		m.viewport.Width = w - 2
		m.viewport.Height = h - 2
	}
	m.viewport.SetContent(m.renderMarkdown())
	m.viewport.GotoTop()
	m.view = ViewMarkdown
	return m, nil
}

func (m Model) handleReportLoaded(msg reportLoadedMsg) (Model, tea.Cmd) {
	if msg.from != m.from || msg.to != m.to {
		// Stale load from a period the user already left
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		log.ErrorErr(log.CatReport, "report load failed", msg.err, "from", msg.from.String(), "to", msg.to.String())
		m.err = msg.err
		m.errContext = "loading report"
		return m, scheduleErrorClear()
	}
	m.byProject = msg.byProject
	m.byActivity = msg.byActivity
	return m, nil
}

func (m Model) handleCopyDone(msg copyDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatMode, "report copy failed", msg.err)
		m.err = msg.err
		m.errContext = "copying report"
		return m, scheduleErrorClear()
	}
	return m, func() tea.Msg {
		return mode.ShowToastMsg{Message: "Report copied as markdown", Style: toaster.StyleSuccess}
	}
}

// Message types

// reportLoadedMsg delivers both groupings for one period.
type reportLoadedMsg struct {
	from       store.Day
	to         store.Day
	byProject  []store.ReportRow
	byActivity []store.ReportRow
	cached     bool
	err        error
}

// copyDoneMsg reports the outcome of the clipboard export.
type copyDoneMsg struct {
	err error
}

// clearErrorMsg dismisses the error bar after a delay.
type clearErrorMsg struct{}

// Async commands

func (m Model) loadReportCmd(force bool) tea.Cmd {
	s := m.services.Store
	cache := m.services.ReportCache
	from, to := m.from, m.to
	return func() tea.Msg {
		ctx, span := tracer.Start(context.Background(), tracing.SpanPrefixReport+"load",
			trace.WithAttributes(
				attribute.String(tracing.AttrReportFrom, from.String()),
				attribute.String(tracing.AttrReportTo, to.String()),
			))
		defer span.End()

		projKey := cacheKey("project", from, to)
		actKey := cacheKey("activity", from, to)
		if !force {
			byProject, okP := cache.Get(ctx, projKey)
			byActivity, okA := cache.Get(ctx, actKey)
			if okP && okA {
				log.Debug(log.CatCache, "report served from cache", "from", from.String(), "to", to.String())
				return reportLoadedMsg{from: from, to: to, byProject: byProject, byActivity: byActivity, cached: true}
			}
		}

		byProject, err := s.Entries().SumByProject(ctx, from, to, "")
		if err != nil {
			span.RecordError(err)
			return reportLoadedMsg{from: from, to: to, err: err}
		}
		byActivity, err := s.Entries().SumByActivity(ctx, from, to, "")
		if err != nil {
			span.RecordError(err)
			return reportLoadedMsg{from: from, to: to, err: err}
		}
		cache.Set(ctx, projKey, byProject, cachemanager.DefaultExpiration)
		cache.Set(ctx, actKey, byActivity, cachemanager.DefaultExpiration)
		return reportLoadedMsg{from: from, to: to, byProject: byProject, byActivity: byActivity}
	}
}

func (m Model) copyReportCmd() tea.Cmd {
	clip := m.services.Clipboard
	content := m.buildMarkdown()
	return func() tea.Msg {
		return copyDoneMsg{err: clip.Copy(content)}
	}
}

func cacheKey(group string, from, to store.Day) string {
	return fmt.Sprintf("%s|%s|%s", group, from, to)
}

func scheduleErrorClear() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
