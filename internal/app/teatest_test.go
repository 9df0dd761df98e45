package app

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"

	"github.com/zjrosen/stint/internal/mode"
)

// TestProgram_ModeSwitching drives the full program through teatest:
// the timesheet renders on startup, 2 and 3 switch modes, and ctrl+c
// exits. This is the one end-to-end test over a running tea.Program;
// everything finer-grained goes through Update directly in app_test.go.
func TestProgram_ModeSwitching(t *testing.T) {
	m, _ := newTestApp(t)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	// testNow is a Wednesday; the timesheet opens on its Monday.
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Week of 2026-03-09"))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(25*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Customers"))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(25*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("This week"))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(25*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	assert.True(t, ok)
	assert.Equal(t, mode.ModeReports, final.currentMode)
}
