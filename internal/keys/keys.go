// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap defines the keybindings handled by the root application
// model regardless of which mode is active. Mode-local bindings live in
// the mode controllers.
type GlobalKeyMap struct {
	// Mode switching
	Timesheet key.Binding
	Admin     key.Binding
	Reports   key.Binding

	// History
	Undo    key.Binding
	Redo    key.Binding
	History key.Binding

	// General
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Debug     key.Binding
}

// DefaultGlobalKeyMap returns the default global keybindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		// Mode switching
		Timesheet: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "timesheet"),
		),
		Admin: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "admin"),
		),
		Reports: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "reports"),
		),

		// History
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "history"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Debug: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "log overlay"),
		),
	}
}

// Global holds the application-wide keybindings.
var Global = DefaultGlobalKeyMap()
