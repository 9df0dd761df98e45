// Package mode defines the mode controller contract and the shared
// services injected into every mode.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/stint/internal/cachemanager"
	"github.com/zjrosen/stint/internal/config"
	"github.com/zjrosen/stint/internal/edits"
	"github.com/zjrosen/stint/internal/mode/shared"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/toaster"
	"github.com/zjrosen/stint/internal/undo"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeTimesheet AppMode = iota
	ModeAdmin
	ModeReports
)

// String returns the mode name used in logs and the status bar.
func (m AppMode) String() string {
	switch m {
	case ModeTimesheet:
		return "timesheet"
	case ModeAdmin:
		return "admin"
	case ModeReports:
		return "reports"
	default:
		return "unknown"
	}
}

// Controller is the surface the app shell drives every mode through.
// Message delivery and resizing stay on the concrete mode models, which
// return their own types; the shell reaches for this interface where it
// only needs rendering and key-routing answers from whichever mode is
// active.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// View renders the mode's UI.
	View() string

	// TextInputActive reports whether a free-text control is focused.
	// While true the app shell passes keystrokes straight to the mode
	// instead of intercepting global bindings, so typing "u" into a
	// note field edits the note rather than undoing.
	TextInputActive() bool
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Store       *store.Store
	Coordinator *undo.Coordinator
	Edits       *edits.Factory
	Config      *config.Config
	ConfigPath  string
	DBPath      string

	// LookupCache maps entity ids to display names for row rendering.
	LookupCache cachemanager.CacheManager[string, string]

	// ReportCache holds report aggregates keyed by period and grouping.
	ReportCache cachemanager.CacheManager[string, []store.ReportRow]

	Clipboard shared.Clipboard
	Clock     shared.Clock
}

// ShowToastMsg asks the app shell to show a toast notification.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}
