// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/stint/internal/keys"
	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/mode/admin"
	"github.com/zjrosen/stint/internal/mode/reports"
	"github.com/zjrosen/stint/internal/mode/timesheet"
	"github.com/zjrosen/stint/internal/pubsub"
	"github.com/zjrosen/stint/internal/ui/help"
	"github.com/zjrosen/stint/internal/ui/historypanel"
	"github.com/zjrosen/stint/internal/ui/logoverlay"
	"github.com/zjrosen/stint/internal/ui/styles"
	"github.com/zjrosen/stint/internal/ui/toaster"
	"github.com/zjrosen/stint/internal/undo"
	"github.com/zjrosen/stint/internal/watcher"
)

// echoWindow is how long after a coordinator event a file-watcher change
// is treated as the echo of our own write rather than an external edit.
// Twice the watcher debounce keeps a debounced echo inside the window.
const echoWindow = 2 * time.Second

// Model is the root application state.
type Model struct {
	// Mode management
	currentMode mode.AppMode
	timesheet   timesheet.Model
	admin       admin.Model
	reports     reports.Model

	// Shared services (passed to mode controllers)
	services mode.Services

	// Global state
	width  int
	height int

	// Centralized toaster - owned by app, not individual modes
	toaster toaster.Model

	// Overlays
	history  historypanel.Model
	help     help.Model
	showHelp bool

	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	// Coordinator event subscription (history panel, cache invalidation)
	undoCtx      context.Context
	undoCancel   context.CancelFunc
	undoListener *pubsub.ContinuousListener[undo.Event]

	// Most recent coordinator write, for watcher echo suppression
	lastMutation time.Time

	// File watcher for auto-refresh (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
}

// undoResultMsg carries the outcome of an asynchronous undo or redo.
type undoResultMsg struct {
	cmd  undo.Command
	err  error
	redo bool
}

// New creates the root application model. debugMode enables the log
// overlay (Ctrl+X toggle).
func New(services mode.Services, debugMode bool) Model {
	// Initialize file watcher if auto-refresh is enabled
	var (
		watcherHandle   *watcher.Watcher
		watcherCtx      context.Context
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
	)

	if services.Config.DB.AutoRefresh && services.DBPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(services.DBPath))
		if err == nil {
			if err := w.Start(); err == nil {
				watcherHandle = w
				watcherCtx, watcherCancel = context.WithCancel(context.Background())
				watcherListener = pubsub.NewContinuousListener(watcherCtx, w.Broker())
			} else {
				// Cleanup on start failure
				_ = w.Stop()
			}
		}
		// Silently ignore watcher init errors - app works fine without auto-refresh
	}

	// Subscribe to coordinator events so caches and the history panel
	// track every execute, undo, and redo
	undoCtx, undoCancel := context.WithCancel(context.Background())
	undoListener := pubsub.NewContinuousListener(undoCtx, services.Coordinator.Broker())

	// Create log overlay and start listening if debug mode is enabled
	overlay := logoverlay.New()
	var logListenCmd tea.Cmd
	if debugMode {
		logListenCmd = overlay.StartListening()
	}

	return Model{
		currentMode:     mode.ModeTimesheet,
		timesheet:       timesheet.New(services),
		admin:           admin.New(services),
		reports:         reports.New(services),
		services:        services,
		toaster:         toaster.New(),
		history:         historypanel.New(services.Clock.Now),
		help:            help.New(),
		debugMode:       debugMode,
		logOverlay:      overlay,
		logListenCmd:    logListenCmd,
		undoCtx:         undoCtx,
		undoCancel:      undoCancel,
		undoListener:    undoListener,
		watcherHandle:   watcherHandle,
		watcherCtx:      watcherCtx,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}
}

// Init implements tea.Model interface.
// Defaults the application to timesheet mode and starts the event
// listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.timesheet.Init(),
		m.undoListener.Listen(),
	}

	// Start watcher listener if available
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}

	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// The bottom row belongs to the status bar
		modeHeight := max(msg.Height-1, 0)
		m.timesheet = m.timesheet.SetSize(msg.Width, modeHeight)
		m.admin = m.admin.SetSize(msg.Width, modeHeight)
		m.reports = m.reports.SetSize(msg.Width, modeHeight)
		m.history.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.MouseMsg:
		// Route mouse events to log overlay when visible
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

		// The history panel and help overlay have no mouse interactions,
		// but clicks must not reach the mode underneath them
		if m.history.Visible() || m.showHelp {
			return m, nil
		}

		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			for _, md := range allModes() {
				if z := zone.Get(makeModeZoneID(md)); z != nil && z.InBounds(msg) {
					return m.switchTo(md)
				}
			}
		}

	case log.LogEvent:
		// Route to log overlay (handles accumulation and listening)
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Ctrl+C quits even while a text input is focused
		if key.Matches(msg, keys.Global.ForceQuit) {
			return m, tea.Quit
		}

		if m.debugMode && key.Matches(msg, keys.Global.Debug) {
			m.logOverlay.Toggle()
			return m, nil
		}

		// If the debug log overlay is visible it takes precedence for updates
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)

			return m, cmd
		}

		// The history panel handles its own navigation and close keys
		if m.history.Visible() {
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}

		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			}
			return m, nil
		}

		// While a mode overlay is capturing text every key belongs to
		// the mode; global bindings resume once it closes
		if !m.activeTextInput() {
			switch {
			case key.Matches(msg, keys.Global.Help):
				m.showHelp = true
				return m, nil

			case key.Matches(msg, keys.Global.Quit):
				return m, tea.Quit

			case key.Matches(msg, keys.Global.Timesheet):
				return m.switchTo(mode.ModeTimesheet)

			case key.Matches(msg, keys.Global.Admin):
				return m.switchTo(mode.ModeAdmin)

			case key.Matches(msg, keys.Global.Reports):
				return m.switchTo(mode.ModeReports)

			case key.Matches(msg, keys.Global.Undo):
				if m.services.Coordinator.CanUndo() {
					return m, m.undoCmd()
				}
				return m, nil

			case key.Matches(msg, keys.Global.Redo):
				if m.services.Coordinator.CanRedo() {
					return m, m.redoCmd()
				}
				return m, nil

			case key.Matches(msg, keys.Global.History):
				return m.openHistory()
			}
		}

	case undoResultMsg:
		return m.handleUndoResult(msg)

	case pubsub.Event[undo.Event]:
		return m.handleUndoEvent(msg)

	case pubsub.Event[watcher.WatcherEvent]:
		switch msg.Payload.Type {
		case watcher.DBChanged:
			return m.handleDBChanged()

		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Error)
			return m, m.watcherListener.Listen()
		}

		// Continue listening for unknown event types
		return m, m.watcherListener.Listen()

	case mode.ShowToastMsg:
		m.toaster = m.toaster.Show(msg.Message, msg.Style)

		return m, toaster.ScheduleDismiss(3 * time.Second)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()

		return m, nil

	case historypanel.CloseMsg:
		m.history.Hide()
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil
	}

	// Delegate all messages to active mode controller
	switch m.currentMode {
	case mode.ModeTimesheet:
		var cmd tea.Cmd
		m.timesheet, cmd = m.timesheet.Update(msg)

		return m, cmd

	case mode.ModeAdmin:
		var cmd tea.Cmd
		m.admin, cmd = m.admin.Update(msg)

		return m, cmd

	case mode.ModeReports:
		var cmd tea.Cmd
		m.reports, cmd = m.reports.Update(msg)

		return m, cmd
	}

	return m, nil
}

// switchTo activates the given mode and refreshes it so stale data from
// a previous visit is never shown.
func (m Model) switchTo(target mode.AppMode) (tea.Model, tea.Cmd) {
	if m.currentMode == target {
		return m, nil
	}
	log.Info(log.CatMode, "Switching mode", "from", m.currentMode.String(), "to", target.String())
	m.currentMode = target

	var cmd tea.Cmd
	switch target {
	case mode.ModeTimesheet:
		m.timesheet, cmd = m.timesheet.Refresh()
	case mode.ModeAdmin:
		m.admin, cmd = m.admin.Refresh()
	case mode.ModeReports:
		m.reports, cmd = m.reports.Refresh()
	}
	return m, cmd
}

// openHistory snapshots the coordinator timeline into the history panel
// and shows it. The panel closes itself on ctrl+h or esc.
func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.history.SetTimeline(m.services.Coordinator.Timeline())
	m.history.Show()
	return m, nil
}

// handleUndoResult reports the outcome of an undo or redo and refreshes
// the active mode so it shows the restored state.
func (m Model) handleUndoResult(msg undoResultMsg) (tea.Model, tea.Cmd) {
	verb := "Undo"
	if msg.redo {
		verb = "Redo"
	}

	if msg.err != nil {
		if errors.Is(msg.err, undo.ErrBusy) {
			m.toaster = m.toaster.Show("Another operation is still running", toaster.StyleWarn)
			return m, toaster.ScheduleDismiss(3 * time.Second)
		}
		log.ErrorErr(log.CatUndo, verb+" failed", msg.err)
		m.toaster = m.toaster.Show(verb+" failed: "+msg.err.Error(), toaster.StyleError)
		return m, toaster.ScheduleDismiss(3 * time.Second)
	}

	// Nothing left to undo or redo
	if msg.cmd == nil {
		return m, nil
	}

	past := "Undid: "
	if msg.redo {
		past = "Redid: "
	}
	m.toaster = m.toaster.Show(past+undo.LabelOf(msg.cmd), toaster.StyleSuccess)

	var modeCmd tea.Cmd
	switch m.currentMode {
	case mode.ModeTimesheet:
		m.timesheet, modeCmd = m.timesheet.Refresh()
	case mode.ModeAdmin:
		m.admin, modeCmd = m.admin.Refresh()
	case mode.ModeReports:
		m.reports, modeCmd = m.reports.Refresh()
	}
	return m, tea.Batch(modeCmd, toaster.ScheduleDismiss(3*time.Second))
}

// handleUndoEvent reacts to coordinator history changes: flush the
// aggregate caches, remember the write for watcher echo suppression,
// and keep the history panel current while it is open.
func (m Model) handleUndoEvent(msg pubsub.Event[undo.Event]) (tea.Model, tea.Cmd) {
	// A cleared history wrote nothing to the database
	if msg.Payload.Action != undo.ActionCleared {
		m.lastMutation = m.services.Clock.Now()
		m.flushCaches()
	}

	if m.history.Visible() {
		m.history.SetTimeline(m.services.Coordinator.Timeline())
	}

	return m, m.undoListener.Listen()
}

// handleDBChanged reloads after the database file changed on disk.
// Changes arriving shortly after our own write are the watcher echoing
// that write back and are ignored.
func (m Model) handleDBChanged() (tea.Model, tea.Cmd) {
	if !m.lastMutation.IsZero() && m.services.Clock.Now().Sub(m.lastMutation) < echoWindow {
		log.Debug(log.CatWatcher, "Ignoring own-write echo")
		return m, m.watcherListener.Listen()
	}

	log.Info(log.CatWatcher, "Database changed externally, reloading", "mode", m.currentMode)
	m.flushCaches()

	// Commands recorded against the old database contents can no longer
	// be trusted to invert cleanly
	m.services.Coordinator.ClearHistory()

	var modeCmd tea.Cmd
	switch m.currentMode {
	case mode.ModeTimesheet:
		m.timesheet, modeCmd = m.timesheet.HandleDBChanged()
	case mode.ModeAdmin:
		m.admin, modeCmd = m.admin.HandleDBChanged()
	case mode.ModeReports:
		m.reports, modeCmd = m.reports.HandleDBChanged()
	}

	m.toaster = m.toaster.Show("Database changed on disk, reloaded", toaster.StyleInfo)
	return m, tea.Batch(modeCmd, toaster.ScheduleDismiss(3*time.Second), m.watcherListener.Listen())
}

// flushCaches drops the lookup and report caches.
func (m Model) flushCaches() {
	if err := m.services.LookupCache.Flush(context.Background()); err != nil {
		log.Warn(log.CatCache, "Failed to flush lookup cache", "error", err)
	}
	if err := m.services.ReportCache.Flush(context.Background()); err != nil {
		log.Warn(log.CatCache, "Failed to flush report cache", "error", err)
	}
}

// activeTextInput reports whether the active mode has an overlay
// capturing keystrokes.
func (m Model) activeTextInput() bool {
	switch m.currentMode {
	case mode.ModeAdmin:
		return m.admin.TextInputActive()
	case mode.ModeReports:
		return m.reports.TextInputActive()
	default:
		return m.timesheet.TextInputActive()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.currentMode {
	case mode.ModeAdmin:
		view = m.admin.View()
	case mode.ModeReports:
		view = m.reports.View()
	default:
		view = m.timesheet.View()
	}

	view = view + "\n" + m.renderStatusBar()

	// Overlay toaster on top of active mode's view
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	if m.history.Visible() {
		view = m.history.Overlay(view)
	}

	if m.showHelp {
		view = m.help.Overlay(view)
	}

	// Overlay log viewer on top (only in debug mode when visible)
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	// Scan registers this frame's zone markers for mouse hit testing.
	// Must happen exactly once, at the outermost view.
	return zone.Scan(view)
}

// renderStatusBar draws the bottom row: clickable mode tabs on the
// left, undo and redo availability on the right.
func (m Model) renderStatusBar() string {
	if m.width == 0 {
		return ""
	}

	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.BorderHighlightFocusColor)
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	litStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	tabs := make([]string, 0, 3)
	for _, md := range allModes() {
		label := modeLabel(md)
		if md == m.currentMode {
			label = activeStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		tabs = append(tabs, zone.Mark(makeModeZoneID(md), label))
	}
	left := strings.Join(tabs, mutedStyle.Render(" │ "))

	undoHint := mutedStyle.Render("u ↶")
	if m.services.Coordinator.CanUndo() {
		undoHint = litStyle.Render("u ↶")
	}
	redoHint := mutedStyle.Render("ctrl+r ↷")
	if m.services.Coordinator.CanRedo() {
		redoHint = litStyle.Render("ctrl+r ↷")
	}
	right := strings.Join([]string{undoHint, redoHint, mutedStyle.Render("? help")}, mutedStyle.Render(" · "))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap > 0 {
		return left + strings.Repeat(" ", gap) + right
	}
	return left
}

// undoCmd asks the coordinator to undo the most recent command.
func (m Model) undoCmd() tea.Cmd {
	return func() tea.Msg {
		cmd, err := m.services.Coordinator.Undo(context.Background())
		return undoResultMsg{cmd: cmd, err: err, redo: false}
	}
}

// redoCmd asks the coordinator to redo the most recently undone command.
func (m Model) redoCmd() tea.Cmd {
	return func() tea.Msg {
		cmd, err := m.services.Coordinator.Redo(context.Background())
		return undoResultMsg{cmd: cmd, err: err, redo: true}
	}
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logOverlay.StopListening()

	// Cancel coordinator event subscription
	if m.undoCancel != nil {
		m.undoCancel()
	}

	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}

	// Close watcher if we own it
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	return nil
}

func allModes() []mode.AppMode {
	return []mode.AppMode{mode.ModeTimesheet, mode.ModeAdmin, mode.ModeReports}
}

func modeLabel(md mode.AppMode) string {
	switch md {
	case mode.ModeAdmin:
		return "2 Admin"
	case mode.ModeReports:
		return "3 Reports"
	default:
		return "1 Timesheet"
	}
}

func makeModeZoneID(md mode.AppMode) string {
	return fmt.Sprintf("app-mode-%d", int(md))
}
