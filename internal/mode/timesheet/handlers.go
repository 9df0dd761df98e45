package timesheet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/stint/internal/cachemanager"
	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/modal"
	"github.com/zjrosen/stint/internal/ui/picker"
	"github.com/zjrosen/stint/internal/ui/styles"
	"github.com/zjrosen/stint/internal/ui/toaster"
)

// handleKey routes key messages based on the current view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case ViewGrid:
		return m.handleGridKey(msg)
	case ViewProjectPicker, ViewActivityPicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case ViewEntryForm, ViewDeleteConfirm:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Dismiss error on any key press
	// Don't return early - let the key continue to be processed
	if m.err != nil {
		m.err = nil
		m.errContext = ""
	}

	switch msg.String() {
	case "h", "left":
		if m.dayIdx > 0 {
			m.dayIdx--
			m = m.clampEntry()
		}
		return m, nil

	case "l", "right":
		if m.dayIdx < len(m.days)-1 {
			m.dayIdx++
			m = m.clampEntry()
		}
		return m, nil

	case "j", "down":
		if m.entryIdx < len(m.dayEntries())-1 {
			m.entryIdx++
		}
		return m, nil

	case "k", "up":
		if m.entryIdx > 0 {
			m.entryIdx--
		}
		return m, nil

	case "[":
		return m.shiftWeek(-7)

	case "]":
		return m.shiftWeek(7)

	case "n":
		return m.startNewEntry()

	case "e":
		return m.startEditEntry()

	case "d":
		return m.startDeleteEntry()

	case "m":
		return m.startMoveEntry()

	case "y":
		return m, m.copyDayCmd(m.days[m.dayIdx])
	}
	return m, nil
}

// Flow starters

func (m Model) startNewEntry() (Model, tea.Cmd) {
	if len(m.activeProjects()) == 0 || len(m.activeActivities()) == 0 {
		m.err = errors.New("create a project and an activity in admin mode first")
		m.errContext = "adding entry"
		return m, scheduleErrorClear()
	}
	m.form = formState{mode: formNew}
	return m.openProjectPicker(""), nil
}

func (m Model) startEditEntry() (Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		return m, nil
	}
	m.form = formState{mode: formEdit, target: entry}
	return m.openEntryForm(entry), nil
}

func (m Model) startDeleteEntry() (Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		return m, nil
	}
	m.form = formState{target: entry}
	md := modal.New(modal.Config{
		Title: "Delete entry",
		Message: fmt.Sprintf("Delete %s of %s on %s?",
			styles.FormatMinutes(entry.Minutes), m.projectName(entry.ProjectID), entry.Day),
		ConfirmVariant: modal.ButtonDanger,
	})
	md.SetSize(m.width, m.height)
	m.modal = md
	m.view = ViewDeleteConfirm
	return m, nil
}

func (m Model) startMoveEntry() (Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		return m, nil
	}
	if len(m.activeProjects()) == 0 || len(m.activeActivities()) == 0 {
		m.err = errors.New("no active projects or activities to move to")
		m.errContext = "moving entry"
		return m, scheduleErrorClear()
	}
	m.form = formState{mode: formMove, target: entry}
	return m.openProjectPicker(entry.ProjectID), nil
}

// Overlay builders

func (m Model) openProjectPicker(selectedID string) Model {
	projects := m.activeProjects()
	options := make([]picker.Option, len(projects))
	for i, p := range projects {
		options[i] = picker.Option{Label: p.Name, Value: p.ID}
	}
	pk := picker.New("Project", options)
	pk = pk.SetSelected(picker.FindIndexByValue(options, selectedID))
	m.picker = pk.SetSize(m.width, m.height)
	m.view = ViewProjectPicker
	return m
}

func (m Model) openActivityPicker(selectedID string) Model {
	activities := m.activeActivities()
	options := make([]picker.Option, len(activities))
	for i, a := range activities {
		options[i] = picker.Option{Label: a.Name, Value: a.ID}
	}
	pk := picker.New("Activity", options)
	pk = pk.SetSelected(picker.FindIndexByValue(options, selectedID))
	m.picker = pk.SetSize(m.width, m.height)
	m.view = ViewActivityPicker
	return m
}

// openEntryForm shows the minutes and note form. A nil entry opens a
// blank form for the focused day; otherwise the fields are prefilled.
func (m Model) openEntryForm(entry *store.Entry) Model {
	cfg := modal.Config{
		Title: fmt.Sprintf("New entry · %s", m.days[m.dayIdx]),
		Inputs: []modal.InputConfig{
			{Key: "minutes", Label: "Minutes", Placeholder: "90 or 1h 30m", MaxLength: 8},
			{Key: "note", Label: "Note", Placeholder: "what was done", Optional: true},
		},
	}
	if entry != nil {
		cfg.Title = "Edit entry"
		cfg.Inputs[0].Value = strconv.Itoa(entry.Minutes)
		cfg.Inputs[1].Value = entry.Note
	}
	md := modal.New(cfg)
	md.SetSize(m.width, m.height)
	m.modal = md
	m.view = ViewEntryForm
	return m
}

// Picker and modal results

func (m Model) handlePickerSelect(msg picker.SelectMsg) (Model, tea.Cmd) {
	switch m.view {
	case ViewProjectPicker:
		m.form.projectID = msg.Option.Value
		selected := ""
		if m.form.target != nil {
			selected = m.form.target.ActivityID
		}
		return m.openActivityPicker(selected), nil

	case ViewActivityPicker:
		m.form.activityID = msg.Option.Value
		if m.form.mode == formMove {
			cmd := m.services.Edits.MoveEntry(*m.form.target, m.form.projectID, m.form.activityID)
			m.view = ViewGrid
			m.form = formState{}
			return m, m.executeCmd(cmd, "Entry moved", "moving entry")
		}
		return m.openEntryForm(nil), nil
	}
	return m, nil
}

func (m Model) handlePickerCancel() (Model, tea.Cmd) {
	m.view = ViewGrid
	m.form = formState{}
	return m, nil
}

func (m Model) handleModalSubmit(msg modal.SubmitMsg) (Model, tea.Cmd) {
	switch m.view {
	case ViewEntryForm:
		return m.submitEntryForm(msg.Values)

	case ViewDeleteConfirm:
		entry := m.form.target
		m.view = ViewGrid
		m.form = formState{}
		if entry == nil {
			return m, nil
		}
		cmd := m.services.Edits.DeleteEntry(*entry)
		return m, m.executeCmd(cmd, "Entry deleted", "deleting entry")
	}
	return m, nil
}

func (m Model) handleModalCancel() (Model, tea.Cmd) {
	m.view = ViewGrid
	m.form = formState{}
	return m, nil
}

// submitEntryForm validates the form and emits the create or update
// command. A parse failure keeps the form open.
func (m Model) submitEntryForm(values map[string]string) (Model, tea.Cmd) {
	minutes, err := parseMinutes(values["minutes"])
	if err != nil {
		m.err = err
		m.errContext = "reading minutes"
		return m, scheduleErrorClear()
	}
	note := strings.TrimSpace(values["note"])

	form := m.form
	m.view = ViewGrid
	m.form = formState{}

	switch form.mode {
	case formNew:
		entry := store.Entry{
			Day:        m.days[m.dayIdx],
			ProjectID:  form.projectID,
			ActivityID: form.activityID,
			Minutes:    minutes,
			Note:       note,
		}
		cmd := m.services.Edits.CreateEntry(entry)
		return m, m.executeCmd(cmd, "Entry added", "adding entry")

	case formEdit:
		if form.target == nil {
			return m, nil
		}
		after := *form.target
		after.Minutes = minutes
		after.Note = note
		if after == *form.target {
			// Unchanged, nothing to record
			return m, nil
		}
		cmd := m.services.Edits.UpdateEntry(*form.target, after)
		return m, m.executeCmd(cmd, "Entry updated", "updating entry")
	}
	return m, nil
}

// Async results

func (m Model) handleWeekLoaded(msg weekLoadedMsg) (Model, tea.Cmd) {
	if msg.weekStart != m.weekStart {
		// Stale load from a week the user already left
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		log.ErrorErr(log.CatMode, "timesheet week load failed", msg.err, "week", msg.weekStart.String())
		m.err = msg.err
		m.errContext = "loading week"
		return m, scheduleErrorClear()
	}
	m.entries = groupByDay(msg.entries)
	return m.clampEntry(), nil
}

func (m Model) handleLookupsLoaded(msg lookupsLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatMode, "timesheet lookup load failed", msg.err)
		m.err = msg.err
		m.errContext = "loading projects"
		return m, scheduleErrorClear()
	}
	m.projects = msg.projects
	m.activities = msg.activities
	m.warmLookupCache()
	return m, nil
}

func (m Model) handleEntryMutated(msg entryMutatedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatMode, "timesheet edit failed", msg.err, "action", msg.action)
		m.err = msg.err
		m.errContext = msg.action
		return m, scheduleErrorClear()
	}
	m.loading = true
	toast := msg.toast
	return m, tea.Batch(
		m.loadWeekCmd(),
		func() tea.Msg {
			return mode.ShowToastMsg{Message: toast, Style: toaster.StyleSuccess}
		},
	)
}

func (m Model) handleCopyDone(msg copyDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.errContext = "copying summary"
		return m, scheduleErrorClear()
	}
	toast := msg.toast
	return m, func() tea.Msg {
		return mode.ShowToastMsg{Message: toast, Style: toaster.StyleSuccess}
	}
}

// Navigation helpers

func (m Model) shiftWeek(days int) (Model, tea.Cmd) {
	m.weekStart = m.weekStart.AddDays(days)
	m.days = weekDays(m.weekStart)
	m.entryIdx = 0
	m.loading = true
	return m, m.loadWeekCmd()
}

func (m Model) dayEntries() []*store.Entry {
	return m.entries[m.days[m.dayIdx]]
}

func (m Model) selectedEntry() *store.Entry {
	entries := m.dayEntries()
	if m.entryIdx < 0 || m.entryIdx >= len(entries) {
		return nil
	}
	return entries[m.entryIdx]
}

// clampEntry keeps the entry cursor inside the focused day.
func (m Model) clampEntry() Model {
	if n := len(m.dayEntries()); m.entryIdx >= n {
		m.entryIdx = n - 1
	}
	if m.entryIdx < 0 {
		m.entryIdx = 0
	}
	return m
}

// Lookups

func (m Model) activeProjects() []*store.Project {
	var active []*store.Project
	for _, p := range m.projects {
		if !p.Archived {
			active = append(active, p)
		}
	}
	return active
}

func (m Model) activeActivities() []*store.Activity {
	var active []*store.Activity
	for _, a := range m.activities {
		if !a.Archived {
			active = append(active, a)
		}
	}
	return active
}

// projectName resolves a project name through the lookup cache, falling
// back to the loaded list. Unknown ids render as "?" so one stale row
// never hides the rest of the grid.
func (m Model) projectName(id string) string {
	if m.services.LookupCache != nil {
		if name, ok := m.services.LookupCache.Get(context.Background(), "project:"+id); ok {
			return name
		}
	}
	for _, p := range m.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return "?"
}

func (m Model) activityName(id string) string {
	if m.services.LookupCache != nil {
		if name, ok := m.services.LookupCache.Get(context.Background(), "activity:"+id); ok {
			return name
		}
	}
	for _, a := range m.activities {
		if a.ID == id {
			return a.Name
		}
	}
	return "?"
}

// warmLookupCache seeds the shared lookup cache from the loaded lists
// so row rendering stays off the database.
func (m Model) warmLookupCache() {
	cache := m.services.LookupCache
	if cache == nil {
		return
	}
	ctx := context.Background()
	for _, p := range m.projects {
		cache.Set(ctx, "project:"+p.ID, p.Name, cachemanager.DefaultExpiration)
	}
	for _, a := range m.activities {
		cache.Set(ctx, "activity:"+a.ID, a.Name, cachemanager.DefaultExpiration)
	}
}

func weekDays(start store.Day) [7]store.Day {
	var days [7]store.Day
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

func groupByDay(entries []*store.Entry) map[store.Day][]*store.Entry {
	grouped := make(map[store.Day][]*store.Entry, len(entries))
	for _, e := range entries {
		grouped[e.Day] = append(grouped[e.Day], e)
	}
	return grouped
}

// parseMinutes accepts a bare minute count ("90") or a duration in hour
// and minute units ("1h 30m", "2h", "45m").
func parseMinutes(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, errors.New("minutes are required")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, errors.New("minutes must be positive")
		}
		return n, nil
	}
	d, err := time.ParseDuration(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0, fmt.Errorf("cannot read %q as minutes", input)
	}
	minutes := int(d.Minutes())
	if minutes <= 0 {
		return 0, errors.New("minutes must be positive")
	}
	return minutes, nil
}
