// Package timesheet implements the week-grid mode: seven day columns of
// entries with a detail pane, plus the picker and form flows that add,
// edit, move, and delete entries through the undo coordinator.
package timesheet

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/modal"
	"github.com/zjrosen/stint/internal/ui/picker"
	"github.com/zjrosen/stint/internal/undo"
)

// ViewMode represents which surface currently has input focus.
type ViewMode int

const (
	// ViewGrid is the main week grid.
	ViewGrid ViewMode = iota
	// ViewProjectPicker selects a project while adding or moving an entry.
	ViewProjectPicker
	// ViewActivityPicker selects an activity while adding or moving an entry.
	ViewActivityPicker
	// ViewEntryForm collects minutes and note for a new or edited entry.
	ViewEntryForm
	// ViewDeleteConfirm asks before deleting the selected entry.
	ViewDeleteConfirm
)

// formMode distinguishes which flow the picker and form overlays serve.
type formMode int

const (
	formNone formMode = iota
	formNew
	formEdit
	formMove
)

// formState carries the partial input of a multi-step entry flow.
type formState struct {
	mode       formMode
	target     *store.Entry // entry being edited, moved, or deleted; nil for new
	projectID  string
	activityID string
}

// Model is the timesheet mode controller.
type Model struct {
	services mode.Services

	view ViewMode

	weekStart store.Day // Monday of the rendered week
	days      [7]store.Day
	entries   map[store.Day][]*store.Entry

	dayIdx   int // focused day column
	entryIdx int // selected entry within the focused day

	projects   []*store.Project // all projects, archived included, for name lookups
	activities []*store.Activity

	modal  modal.Model
	picker picker.Model
	form   formState

	width  int
	height int

	loading    bool
	err        error
	errContext string
}

// New creates the timesheet mode focused on today's column of the
// current week.
func New(services mode.Services) Model {
	now := services.Clock.Now()
	weekStart, _ := store.WeekOf(now)
	return Model{
		services:  services,
		weekStart: weekStart,
		days:      weekDays(weekStart),
		entries:   map[store.Day][]*store.Entry{},
		dayIdx:    (int(now.Weekday()) + 6) % 7,
		loading:   true,
	}
}

// Init loads the current week and the picker lookups.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadWeekCmd(), m.loadLookupsCmd())
}

// SetSize updates the terminal dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.modal.SetSize(width, height)
	m.picker = m.picker.SetSize(width, height)
	return m
}

// Refresh reloads the visible week and the lookups, keeping the cursor
// where it was. The app calls this after undo and redo.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.loadWeekCmd(), m.loadLookupsCmd())
}

// HandleDBChanged reloads after the database changed underneath us.
// Reloads are deferred while an overlay is open so in-progress input
// isn't discarded.
func (m Model) HandleDBChanged() (Model, tea.Cmd) {
	if m.loading || m.view != ViewGrid {
		return m, nil
	}
	return m.Refresh()
}

// TextInputActive reports whether an overlay is capturing keystrokes.
func (m Model) TextInputActive() bool {
	return m.view != ViewGrid
}

// Update handles messages for the timesheet mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case weekLoadedMsg:
		return m.handleWeekLoaded(msg)
	case lookupsLoadedMsg:
		return m.handleLookupsLoaded(msg)
	case entryMutatedMsg:
		return m.handleEntryMutated(msg)
	case copyDoneMsg:
		return m.handleCopyDone(msg)
	case modal.SubmitMsg:
		return m.handleModalSubmit(msg)
	case modal.CancelMsg:
		return m.handleModalCancel()
	case picker.SelectMsg:
		return m.handlePickerSelect(msg)
	case picker.CancelMsg:
		return m.handlePickerCancel()
	case clearErrorMsg:
		m.err = nil
		m.errContext = ""
		return m, nil
	}
	return m, nil
}

// View renders the week grid with any active overlay on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	base := m.renderGrid()
	switch m.view {
	case ViewProjectPicker, ViewActivityPicker:
		return m.picker.Overlay(base)
	case ViewEntryForm, ViewDeleteConfirm:
		return m.modal.Overlay(base)
	}
	return base
}

// Message types

// weekLoadedMsg delivers the entries for a requested week.
type weekLoadedMsg struct {
	weekStart store.Day
	entries   []*store.Entry
	err       error
}

// lookupsLoadedMsg delivers the projects and activities used by the
// pickers and for row rendering.
type lookupsLoadedMsg struct {
	projects   []*store.Project
	activities []*store.Activity
	err        error
}

// entryMutatedMsg reports the outcome of an edit command.
type entryMutatedMsg struct {
	toast  string
	action string
	err    error
}

// copyDoneMsg reports the outcome of a clipboard copy.
type copyDoneMsg struct {
	toast string
	err   error
}

// clearErrorMsg dismisses the error bar after a delay.
type clearErrorMsg struct{}

// Async commands

func (m Model) loadWeekCmd() tea.Cmd {
	repo := m.services.Store.Entries()
	weekStart := m.weekStart
	return func() tea.Msg {
		entries, err := repo.ListRange(context.Background(), weekStart, weekStart.AddDays(6))
		return weekLoadedMsg{weekStart: weekStart, entries: entries, err: err}
	}
}

func (m Model) loadLookupsCmd() tea.Cmd {
	s := m.services.Store
	return func() tea.Msg {
		projects, err := s.Projects().List(context.Background(), true)
		if err != nil {
			return lookupsLoadedMsg{err: err}
		}
		activities, err := s.Activities().List(context.Background(), true)
		if err != nil {
			return lookupsLoadedMsg{err: err}
		}
		return lookupsLoadedMsg{projects: projects, activities: activities}
	}
}

func (m Model) executeCmd(cmd undo.Command, toast, action string) tea.Cmd {
	coordinator := m.services.Coordinator
	return func() tea.Msg {
		err := coordinator.ExecuteCommand(context.Background(), cmd)
		return entryMutatedMsg{toast: toast, action: action, err: err}
	}
}

func (m Model) copyDayCmd(day store.Day) tea.Cmd {
	summary := m.daySummary(day)
	clipboard := m.services.Clipboard
	return func() tea.Msg {
		err := clipboard.Copy(summary)
		return copyDoneMsg{toast: fmt.Sprintf("Copied summary for %s", day), err: err}
	}
}

func scheduleErrorClear() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
