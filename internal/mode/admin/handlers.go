package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/modal"
	"github.com/zjrosen/stint/internal/ui/picker"
	"github.com/zjrosen/stint/internal/ui/toaster"
)

// handleKey routes key messages based on the current view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case ViewTable:
		return m.handleTableKey(msg)
	case ViewCustomerPicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case ViewForm:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTableKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Dismiss error on any key press
	// Don't return early - let the key continue to be processed
	if m.err != nil {
		m.err = nil
		m.errContext = ""
	}

	switch msg.String() {
	case "tab":
		m.tab = Tab((int(m.tab) + 1) % 3)
		return m, nil

	case "shift+tab":
		m.tab = Tab((int(m.tab) + 2) % 3)
		return m, nil

	case "j", "down":
		return m.moveSelection(1), nil

	case "k", "up":
		return m.moveSelection(-1), nil

	case "g":
		m.selected[m.tab] = 0
		return m.ensureSelectionVisible(), nil

	case "G":
		if count := m.activeRowCount(); count > 0 {
			m.selected[m.tab] = count - 1
		}
		return m.ensureSelectionVisible(), nil

	case "n":
		return m.startCreate()

	case "r":
		return m.startRename()

	case "a":
		return m.toggleArchive()
	}
	return m, nil
}

// handleMouse handles zone clicks and wheel scrolling.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.view != ViewTable {
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		for t := TabCustomers; t <= TabActivities; t++ {
			if z := zone.Get(makeTabZoneID(t)); z != nil && z.InBounds(msg) {
				m.tab = t
				return m, nil
			}
		}
		for i := range m.activeRowCount() {
			if z := zone.Get(makeRowZoneID(m.tab, i)); z != nil && z.InBounds(msg) {
				m.selected[m.tab] = i
				return m.ensureSelectionVisible(), nil
			}
		}
		return m, nil
	}

	// Wheel events scroll the active table
	var cmd tea.Cmd
	switch m.tab {
	case TabProjects:
		m.projectTable, cmd = m.projectTable.Update(msg)
	case TabActivities:
		m.activityTable, cmd = m.activityTable.Update(msg)
	default:
		m.customerTable, cmd = m.customerTable.Update(msg)
	}
	return m, cmd
}

// Flow starters

func (m Model) startCreate() (Model, tea.Cmd) {
	switch m.tab {
	case TabProjects:
		active := m.activeCustomers()
		if len(active) == 0 {
			m.err = errors.New("create a customer first")
			m.errContext = "creating project"
			return m, scheduleErrorClear()
		}
		options := make([]picker.Option, len(active))
		for i, c := range active {
			options[i] = picker.Option{Label: c.Name, Value: c.ID}
		}
		m.form = formState{action: actionCreate}
		m.picker = picker.New("Customer", options).SetSize(m.width, m.height)
		m.view = ViewCustomerPicker
		return m, nil

	case TabActivities:
		m.form = formState{action: actionCreate}
		return m.openForm("New activity", "", false), nil

	default:
		m.form = formState{action: actionCreate}
		return m.openForm("New customer", "", false), nil
	}
}

func (m Model) startRename() (Model, tea.Cmd) {
	switch m.tab {
	case TabProjects:
		row := m.selectedProject()
		if row == nil {
			return m, nil
		}
		m.form = formState{action: actionRename, project: row}
		return m.openForm("Rename project", row.Name, false), nil

	case TabActivities:
		row := m.selectedActivity()
		if row == nil {
			return m, nil
		}
		m.form = formState{action: actionRename, activity: row}
		return m.openForm("Rename activity", row.Name, false), nil

	default:
		row := m.selectedCustomer()
		if row == nil {
			return m, nil
		}
		m.form = formState{action: actionRename, customer: row}
		return m.openForm("Rename customer", row.Name, false), nil
	}
}

// toggleArchive archives or restores the selected project. Archiving is
// a projects-only operation; entries keep their history either way.
func (m Model) toggleArchive() (Model, tea.Cmd) {
	if m.tab != TabProjects {
		m.err = errors.New("only projects can be archived")
		m.errContext = "archiving"
		return m, scheduleErrorClear()
	}
	row := m.selectedProject()
	if row == nil {
		return m, nil
	}
	toast := "Project archived"
	if row.Archived {
		toast = "Project restored"
	}
	return m, m.executeCmd(m.services.Edits.ArchiveProject(*row), toast, "archiving project")
}

// openForm shows the name form, optionally with an hourly rate field.
func (m Model) openForm(title, name string, withRate bool) Model {
	inputs := []modal.InputConfig{
		{Key: "name", Label: "Name", Placeholder: "name", Value: name, MaxLength: 60},
	}
	if withRate {
		inputs = append(inputs, modal.InputConfig{
			Key: "rate", Label: "Hourly rate", Placeholder: "125.00", MaxLength: 10, Optional: true,
		})
	}
	md := modal.New(modal.Config{Title: title, Inputs: inputs})
	md.SetSize(m.width, m.height)
	m.modal = md
	m.view = ViewForm
	return m
}

// Picker and modal results

func (m Model) handlePickerSelect(msg picker.SelectMsg) (Model, tea.Cmd) {
	if m.view != ViewCustomerPicker {
		return m, nil
	}
	m.form.customerID = msg.Option.Value
	return m.openForm("New project", "", true), nil
}

func (m Model) handlePickerCancel() (Model, tea.Cmd) {
	m.view = ViewTable
	m.form = formState{}
	return m, nil
}

func (m Model) handleModalSubmit(msg modal.SubmitMsg) (Model, tea.Cmd) {
	if m.view != ViewForm {
		return m, nil
	}
	return m.submitForm(msg.Values)
}

func (m Model) handleModalCancel() (Model, tea.Cmd) {
	m.view = ViewTable
	m.form = formState{}
	return m, nil
}

// submitForm validates the form and emits the matching edit command. A
// validation failure keeps the form open.
func (m Model) submitForm(values map[string]string) (Model, tea.Cmd) {
	name := strings.TrimSpace(values["name"])
	if name == "" {
		m.err = errors.New("name is required")
		m.errContext = "saving name"
		return m, scheduleErrorClear()
	}

	form := m.form
	if form.action == actionCreate && m.tab == TabProjects {
		rate, err := parseRateCents(values["rate"])
		if err != nil {
			m.err = err
			m.errContext = "reading rate"
			return m, scheduleErrorClear()
		}
		m.view = ViewTable
		m.form = formState{}
		cmd := m.services.Edits.CreateProject(form.customerID, name, rate)
		return m, m.executeCmd(cmd, "Project created", "creating project")
	}

	m.view = ViewTable
	m.form = formState{}

	switch {
	case form.action == actionCreate && m.tab == TabCustomers:
		return m, m.executeCmd(m.services.Edits.CreateCustomer(name), "Customer created", "creating customer")
	case form.action == actionCreate && m.tab == TabActivities:
		return m, m.executeCmd(m.services.Edits.CreateActivity(name), "Activity created", "creating activity")
	case form.action == actionRename && form.customer != nil:
		return m, m.executeCmd(m.services.Edits.RenameCustomer(*form.customer, name), "Customer renamed", "renaming customer")
	case form.action == actionRename && form.project != nil:
		return m, m.executeCmd(m.services.Edits.RenameProject(*form.project, name), "Project renamed", "renaming project")
	case form.action == actionRename && form.activity != nil:
		return m, m.executeCmd(m.services.Edits.RenameActivity(*form.activity, name), "Activity renamed", "renaming activity")
	}
	return m, nil
}

// Async results

func (m Model) handleDataLoaded(msg dataLoadedMsg) (Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		log.ErrorErr(log.CatMode, "admin load failed", msg.err)
		m.err = msg.err
		m.errContext = "loading data"
		return m, scheduleErrorClear()
	}
	m.customers = msg.customers
	m.activities = msg.activities

	names := make(map[string]string, len(msg.customers))
	for _, c := range msg.customers {
		names[c.ID] = c.Name
	}
	rows := make([]projectRow, len(msg.projects))
	for i, p := range msg.projects {
		name, ok := names[p.CustomerID]
		if !ok {
			name = "?"
		}
		rows[i] = projectRow{Project: p, customerName: name}
	}
	m.projectRows = rows

	m.customerTable = m.customerTable.SetRows(m.customers)
	m.projectTable = m.projectTable.SetRows(m.projectRows)
	m.activityTable = m.activityTable.SetRows(m.activities)

	return m.clampSelections(), nil
}

func (m Model) handleMutated(msg mutatedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatMode, "admin edit failed", msg.err, "action", msg.action)
		m.err = msg.err
		m.errContext = msg.action
		return m, scheduleErrorClear()
	}
	m.loading = true
	toast := msg.toast
	return m, tea.Batch(
		m.loadDataCmd(),
		func() tea.Msg {
			return mode.ShowToastMsg{Message: toast, Style: toaster.StyleSuccess}
		},
	)
}

// Selection helpers

func (m Model) activeRowCount() int {
	switch m.tab {
	case TabProjects:
		return len(m.projectRows)
	case TabActivities:
		return len(m.activities)
	default:
		return len(m.customers)
	}
}

func (m Model) moveSelection(delta int) Model {
	count := m.activeRowCount()
	if count == 0 {
		return m
	}
	m.selected[m.tab] = min(max(m.selected[m.tab]+delta, 0), count-1)
	return m.ensureSelectionVisible()
}

func (m Model) ensureSelectionVisible() Model {
	idx := m.selected[m.tab]
	switch m.tab {
	case TabProjects:
		m.projectTable = m.projectTable.EnsureVisible(idx)
	case TabActivities:
		m.activityTable = m.activityTable.EnsureVisible(idx)
	default:
		m.customerTable = m.customerTable.EnsureVisible(idx)
	}
	return m
}

func (m Model) clampSelections() Model {
	counts := [3]int{len(m.customers), len(m.projectRows), len(m.activities)}
	for i := range m.selected {
		if m.selected[i] >= counts[i] {
			m.selected[i] = counts[i] - 1
		}
		if m.selected[i] < 0 {
			m.selected[i] = 0
		}
	}
	return m
}

func (m Model) selectedCustomer() *store.Customer {
	idx := m.selected[TabCustomers]
	if idx < 0 || idx >= len(m.customers) {
		return nil
	}
	return m.customers[idx]
}

func (m Model) selectedProject() *store.Project {
	idx := m.selected[TabProjects]
	if idx < 0 || idx >= len(m.projectRows) {
		return nil
	}
	return m.projectRows[idx].Project
}

func (m Model) selectedActivity() *store.Activity {
	idx := m.selected[TabActivities]
	if idx < 0 || idx >= len(m.activities) {
		return nil
	}
	return m.activities[idx]
}

func (m Model) activeCustomers() []*store.Customer {
	var active []*store.Customer
	for _, c := range m.customers {
		if !c.Archived {
			active = append(active, c)
		}
	}
	return active
}

// parseRateCents reads a decimal hourly rate ("125" or "125.50") into
// cents. Empty input means no rate.
func parseRateCents(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, nil
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("cannot read %q as a rate", input)
	}
	// ParseUint rejects sign characters, so "1.-5" and "+1" fail here.
	var cents int64
	if whole != "" {
		n, err := strconv.ParseUint(whole, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("cannot read %q as a rate", input)
		}
		cents = int64(n) * 100
	}
	switch len(frac) {
	case 0:
	case 1:
		d, err := strconv.ParseUint(frac, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("cannot read %q as a rate", input)
		}
		cents += int64(d) * 10
	case 2:
		d, err := strconv.ParseUint(frac, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("cannot read %q as a rate", input)
		}
		cents += int64(d)
	default:
		return 0, fmt.Errorf("rate %q has more than two decimal places", input)
	}
	return cents, nil
}
