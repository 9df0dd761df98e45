// Package admin implements the administration mode: tabbed tables over
// customers, projects, and activities with create, rename, and archive
// flows running through the undo coordinator.
package admin

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/modal"
	"github.com/zjrosen/stint/internal/ui/picker"
	"github.com/zjrosen/stint/internal/ui/shared/table"
	"github.com/zjrosen/stint/internal/ui/styles"
	"github.com/zjrosen/stint/internal/undo"
)

// ViewMode represents which surface currently has input focus.
type ViewMode int

const (
	// ViewTable is the tabbed table view.
	ViewTable ViewMode = iota
	// ViewCustomerPicker selects the owner while creating a project.
	ViewCustomerPicker
	// ViewForm collects a name (and rate for projects) for create and
	// rename flows.
	ViewForm
)

// Tab identifies one of the admin tables.
type Tab int

const (
	TabCustomers Tab = iota
	TabProjects
	TabActivities
)

// String returns the tab label shown in the tab bar.
func (t Tab) String() string {
	switch t {
	case TabProjects:
		return "Projects"
	case TabActivities:
		return "Activities"
	default:
		return "Customers"
	}
}

// formAction distinguishes what the open form will do on submit.
type formAction int

const (
	actionNone formAction = iota
	actionCreate
	actionRename
)

// formState carries the pending input of a create or rename flow.
// Rename targets are snapshotted when the form opens; the table cannot
// change underneath an open overlay.
type formState struct {
	action     formAction
	customerID string // owner for a new project
	customer   *store.Customer
	project    *store.Project
	activity   *store.Activity
}

// Model is the admin mode controller.
type Model struct {
	services mode.Services

	view ViewMode
	tab  Tab

	customers   []*store.Customer
	projectRows []projectRow
	activities  []*store.Activity

	customerTable table.Model[*store.Customer]
	projectTable  table.Model[projectRow]
	activityTable table.Model[*store.Activity]

	selected [3]int // selection cursor per tab

	modal  modal.Model
	picker picker.Model
	form   formState

	width  int
	height int

	loading    bool
	err        error
	errContext string
}

// New creates the admin mode with the customers tab active.
func New(services mode.Services) Model {
	return Model{
		services:      services,
		customerTable: buildCustomerTable(services.Clock),
		projectTable:  buildProjectTable(),
		activityTable: buildActivityTable(services.Clock),
		loading:       true,
	}
}

// Init loads all three tables.
func (m Model) Init() tea.Cmd {
	return m.loadDataCmd()
}

// SetSize updates the terminal dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	tableHeight := max(height-2, 3)
	m.customerTable = m.customerTable.SetSize(width, tableHeight)
	m.projectTable = m.projectTable.SetSize(width, tableHeight)
	m.activityTable = m.activityTable.SetSize(width, tableHeight)
	m.modal.SetSize(width, height)
	m.picker = m.picker.SetSize(width, height)
	return m
}

// Refresh reloads all three tables, keeping cursors in place. The app
// calls this after undo and redo.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.loading = true
	return m, m.loadDataCmd()
}

// HandleDBChanged reloads after the database changed underneath us.
// Deferred while an overlay is open so in-progress input survives.
func (m Model) HandleDBChanged() (Model, tea.Cmd) {
	if m.loading || m.view != ViewTable {
		return m, nil
	}
	return m.Refresh()
}

// TextInputActive reports whether an overlay is capturing keystrokes.
func (m Model) TextInputActive() bool {
	return m.view != ViewTable
}

// Update handles messages for the admin mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case dataLoadedMsg:
		return m.handleDataLoaded(msg)
	case mutatedMsg:
		return m.handleMutated(msg)
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

// View renders the tab bar, the active table, and the footer, with any
// active overlay on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	base := strings.Join([]string{
		m.renderTabs(),
		m.activeTableView(),
		m.renderFooter(),
	}, "\n")
	switch m.view {
	case ViewCustomerPicker:
		return m.picker.Overlay(base)
	case ViewForm:
		return m.modal.Overlay(base)
	}
	return base
}

func (m Model) activeTableView() string {
	switch m.tab {
	case TabProjects:
		return m.projectTable.ViewWithSelection(m.selected[TabProjects])
	case TabActivities:
		return m.activityTable.ViewWithSelection(m.selected[TabActivities])
	default:
		return m.customerTable.ViewWithSelection(m.selected[TabCustomers])
	}
}

func (m Model) renderTabs() string {
	sep := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(" │ ")
	active := lipgloss.NewStyle().Bold(true).Foreground(styles.BorderHighlightFocusColor)
	inactive := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	labels := make([]string, 0, 3)
	for t := TabCustomers; t <= TabActivities; t++ {
		style := inactive
		if t == m.tab {
			style = active
		}
		labels = append(labels, zone.Mark(makeTabZoneID(t), style.Render(t.String())))
	}
	line := strings.Join(labels, sep)
	if m.loading {
		line += inactive.Render("  loading...")
	}
	return line
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
	hints := "n new · r rename · tab switch"
	if m.tab == TabProjects {
		hints = "n new · r rename · a archive · tab switch"
	}
	return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Width(m.width).Render(hints)
}

// Message types

// dataLoadedMsg delivers all three admin tables in one load.
type dataLoadedMsg struct {
	customers  []*store.Customer
	projects   []*store.Project
	activities []*store.Activity
	err        error
}

// mutatedMsg reports the outcome of an edit command.
type mutatedMsg struct {
	toast  string
	action string
	err    error
}

// clearErrorMsg dismisses the error bar after a delay.
type clearErrorMsg struct{}

// Async commands

func (m Model) loadDataCmd() tea.Cmd {
	s := m.services.Store
	return func() tea.Msg {
		customers, err := s.Customers().List(context.Background(), true)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		projects, err := s.Projects().List(context.Background(), true)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		activities, err := s.Activities().List(context.Background(), true)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{customers: customers, projects: projects, activities: activities}
	}
}

func (m Model) executeCmd(cmd undo.Command, toast, action string) tea.Cmd {
	coordinator := m.services.Coordinator
	return func() tea.Msg {
		err := coordinator.ExecuteCommand(context.Background(), cmd)
		return mutatedMsg{toast: toast, action: action, err: err}
	}
}

func scheduleErrorClear() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
