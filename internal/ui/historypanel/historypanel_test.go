package historypanel

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stint/internal/undo"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

// stubCommand is a no-op command carrying just the identity the panel
// renders.
type stubCommand struct {
	id    string
	kind  undo.Kind
	label string
	at    time.Time
}

func (c stubCommand) ID() string                    { return c.id }
func (c stubCommand) Kind() undo.Kind               { return c.kind }
func (c stubCommand) CreatedAt() time.Time          { return c.at }
func (c stubCommand) Execute(context.Context) error { return nil }
func (c stubCommand) Undo(context.Context) error    { return nil }
func (c stubCommand) Label() string                 { return c.label }

// stubNoteCommand additionally reports a note rewrite.
type stubNoteCommand struct {
	stubCommand
	oldNote string
	newNote string
}

func (c stubNoteCommand) NoteChange() (string, string, bool) {
	return c.oldNote, c.newNote, true
}

func newStub(id, label string, age time.Duration) stubCommand {
	return stubCommand{
		id:    id,
		kind:  "entry.create",
		label: label,
		at:    testNow.Add(-age),
	}
}

// newTestPanel builds a visible panel with one future command, a present
// command, and two past commands (oldest first, as History returns them).
func newTestPanel() Model {
	m := New(testClock)
	m.SetSize(100, 30)
	m.SetTimeline(
		[]undo.Command{newStub("f1", "redo-entry", time.Minute)},
		newStub("pr", "present-entry", 5*time.Minute),
		[]undo.Command{
			newStub("p0", "past-old", 2*time.Hour),
			newStub("p1", "past-new", 10*time.Minute),
		},
	)
	m.Show()
	return m
}

func TestNew_StartsHidden(t *testing.T) {
	m := New(nil)

	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, "background", m.Overlay("background"))
}

func TestToggle(t *testing.T) {
	m := New(testClock)
	m.SetSize(100, 30)

	m.Toggle()
	require.True(t, m.Visible())

	m.Toggle()
	require.False(t, m.Visible())
}

func TestShowHide(t *testing.T) {
	m := New(testClock)
	m.SetSize(100, 30)

	m.Show()
	require.True(t, m.Visible())

	m.Hide()
	require.False(t, m.Visible())
}

func TestView_ListsTimelineSections(t *testing.T) {
	m := newTestPanel()

	view := m.View()

	require.Contains(t, view, "History")
	require.Contains(t, view, "redo-entry")
	require.Contains(t, view, "present-entry")
	require.Contains(t, view, "past-new")
	require.Contains(t, view, "past-old")
	require.Contains(t, view, "↷")
	require.Contains(t, view, "●")
	require.Contains(t, view, "↶")
}

func TestView_OrdersFutureThenPresentThenPastNewestFirst(t *testing.T) {
	m := newTestPanel()

	view := m.View()

	future := strings.Index(view, "redo-entry")
	present := strings.Index(view, "present-entry")
	pastNew := strings.Index(view, "past-new")
	pastOld := strings.Index(view, "past-old")

	require.True(t, future < present, "future rows render above the present")
	require.True(t, present < pastNew, "present renders above past")
	require.True(t, pastNew < pastOld, "past renders newest first")
}

func TestView_RelativeTimes(t *testing.T) {
	m := newTestPanel()

	view := m.View()

	require.Contains(t, view, "1m ago")
	require.Contains(t, view, "5m ago")
	require.Contains(t, view, "10m ago")
	require.Contains(t, view, "2h ago")
}

func TestView_ShowsCommandKinds(t *testing.T) {
	m := newTestPanel()

	require.Contains(t, m.View(), "entry.create")
}

func TestView_NilPresentShowsMarker(t *testing.T) {
	m := New(testClock)
	m.SetSize(100, 30)
	m.SetTimeline(nil, nil, []undo.Command{newStub("p0", "past-old", time.Hour)})
	m.Show()

	view := m.View()

	require.Contains(t, view, "current state")
	require.Contains(t, view, "●")
	require.Contains(t, view, "past-old")
}

func TestView_SelectionCounterInTitle(t *testing.T) {
	m := newTestPanel()

	// Selection starts on the present row: second of four
	require.Contains(t, m.View(), "2/4")
}

func TestSelection_StartsOnPresent(t *testing.T) {
	m := newTestPanel()

	selected := m.Selected()

	require.NotNil(t, selected)
	require.Equal(t, "pr", selected.ID())
}

func TestUpdate_Navigation(t *testing.T) {
	m := newTestPanel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.Equal(t, "p1", m.Selected().ID(), "j moves down into the past")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.Equal(t, "pr", m.Selected().ID(), "k moves back up")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.Equal(t, "f1", m.Selected().ID(), "k moves into the future")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	require.Equal(t, "p0", m.Selected().ID(), "G jumps to the oldest row")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	require.Equal(t, "f1", m.Selected().ID(), "g jumps to the first row")
}

func TestUpdate_SelectionClamps(t *testing.T) {
	m := newTestPanel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.Equal(t, "f1", m.Selected().ID(), "k at the top stays put")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.Equal(t, "p0", m.Selected().ID(), "j at the bottom stays put")
}

func TestUpdate_EscCloses(t *testing.T) {
	m := newTestPanel()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.IsType(t, CloseMsg{}, cmd())
}

func TestUpdate_CtrlHCloses(t *testing.T) {
	m := newTestPanel()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})

	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.IsType(t, CloseMsg{}, cmd())
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := newTestPanel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := newTestPanel()
	m.Hide()
	before := m.Selected().ID()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	require.Nil(t, cmd)
	require.Equal(t, before, m.Selected().ID())
}

func TestView_NoteDiffForSelectedRewrite(t *testing.T) {
	noteCmd := stubNoteCommand{
		stubCommand: newStub("n1", "edit note on Tue", time.Minute),
		oldNote:     "weekly standup",
		newNote:     "weekly retro",
	}
	m := New(testClock)
	m.SetSize(100, 30)
	m.SetTimeline(nil, noteCmd, nil)
	m.Show()

	view := m.View()

	require.Contains(t, view, "Note change")
	require.Contains(t, view, "standup")
	require.Contains(t, view, "retro")
}

func TestView_NoDiffForPlainCommands(t *testing.T) {
	m := newTestPanel()

	require.NotContains(t, m.View(), "Note change")
}

func TestView_NoteDiff_EmptyOldNote(t *testing.T) {
	noteCmd := stubNoteCommand{
		stubCommand: newStub("n1", "add note", time.Minute),
		oldNote:     "",
		newNote:     "wrote the report",
	}
	m := New(testClock)
	m.SetSize(100, 30)
	m.SetTimeline(nil, noteCmd, nil)
	m.Show()

	view := m.View()

	require.Contains(t, view, "(no note)")
	require.Contains(t, view, "wrote the report")
}

func TestView_PanelWidthTracksTerminal(t *testing.T) {
	m := newTestPanel()

	lines := strings.Split(m.View(), "\n")

	require.NotEmpty(t, lines)
	require.Equal(t, 80, lipgloss.Width(lines[0]), "panel caps at its maximum width")
}

func TestView_NarrowTerminalUsesMinimumWidth(t *testing.T) {
	m := New(testClock)
	m.SetSize(40, 20)
	m.SetTimeline(nil, newStub("pr", "present-entry", time.Minute), nil)
	m.Show()

	lines := strings.Split(m.View(), "\n")

	require.Equal(t, boxMinWidth, lipgloss.Width(lines[0]))
}

func TestScrolling_KeepsSelectionVisible(t *testing.T) {
	past := make([]undo.Command, 20)
	for i := range past {
		past[i] = newStub(
			"p"+strings.Repeat("x", i+1),
			"past-"+strings.Repeat("z", i+1),
			time.Duration(20-i)*time.Minute,
		)
	}
	m := New(testClock)
	m.SetSize(100, 40)
	m.SetTimeline(nil, newStub("pr", "present-entry", time.Minute), past)
	m.Show()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})

	view := m.View()

	// The oldest row (past[0], rendered last) is scrolled into view and the
	// present row has scrolled out.
	require.Contains(t, view, "past-z ")
	require.NotContains(t, view, "present-entry")
}

func TestOverlay_CentersPanelOnBackground(t *testing.T) {
	m := newTestPanel()

	bgLines := make([]string, 30)
	for i := range bgLines {
		bgLines[i] = strings.Repeat("#", 100)
	}
	bg := strings.Join(bgLines, "\n")

	out := m.Overlay(bg)

	require.Contains(t, out, "History")
	require.Contains(t, out, "#")
}
