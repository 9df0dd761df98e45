// Package modal implements the prompt dialogs used for entry and record
// edits: a titled box with zero or more text fields followed by a
// Save/Confirm button and a Cancel button.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/ui/overlay"
	"github.com/zjrosen/stint/internal/ui/styles"
)

const defaultMinWidth = 40

// ButtonVariant controls the styling of the confirm/save button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota // Blue (default)
	ButtonDanger                       // Red (for destructive actions)
)

// InputConfig defines a single input field.
type InputConfig struct {
	Key         string // Identifier for this input (used in SubmitMsg.Values)
	Label       string // Label displayed in the field frame
	Placeholder string // Placeholder text shown when empty
	Value       string // Initial value (optional)
	MaxLength   int    // Character limit (0 = unlimited)
	Optional    bool   // When true, the field may be left empty on submit
}

// Config controls modal appearance and behavior.
type Config struct {
	Title          string        // Modal title (e.g., "New Entry", "Confirm Delete")
	Message        string        // Optional message/prompt text
	Inputs         []InputConfig // Input fields; if empty, modal is in confirmation mode
	ConfirmVariant ButtonVariant // Style for confirm button (default: ButtonPrimary)
	MinWidth       int           // Minimum width (0 = default 40)
}

// SubmitMsg is sent when the user confirms the modal (Enter on Save).
// Values contains input values keyed by InputConfig.Key.
type SubmitMsg struct {
	Values map[string]string
}

// CancelMsg is sent when the user cancels the modal (Esc or the Cancel
// button).
type CancelMsg struct{}

// Field identifies which button is focused.
type Field int

const (
	FieldSave Field = iota
	FieldCancel
)

// Model is the modal component state.
//
// Focus is a single cursor over a flat list of stops: each input in
// order, then Save, then Cancel. Tab and shift+tab walk the list with
// wraparound; the cursor arithmetic replaces separate input/button
// focus bookkeeping.
type Model struct {
	config Config
	inputs []textinput.Model
	keys   []string // input index -> SubmitMsg key
	cursor int
	width  int
	height int
}

// New creates a modal from cfg. With Inputs set the modal collects text
// fields; without them it is a plain confirm/cancel prompt and the
// cursor starts on Save.
func New(cfg Config) Model {
	m := Model{config: cfg}
	if len(cfg.Inputs) == 0 {
		return m
	}

	m.inputs = make([]textinput.Model, len(cfg.Inputs))
	m.keys = make([]string, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		ti := textinput.New()
		ti.Placeholder = in.Placeholder
		ti.Prompt = ""
		ti.Width = defaultMinWidth - 4 // inside the field frame
		if in.MaxLength > 0 {
			ti.CharLimit = in.MaxLength
		}
		ti.SetValue(in.Value)
		m.inputs[i] = ti
		m.keys[i] = in.Key
	}
	m.inputs[0].Focus()
	return m
}

// saveStop and cancelStop are the cursor positions of the two buttons.
func (m Model) saveStop() int   { return len(m.inputs) }
func (m Model) cancelStop() int { return len(m.inputs) + 1 }

// FocusedInput returns the focused input index, or -1 when a button
// has focus.
func (m Model) FocusedInput() int {
	if m.cursor < len(m.inputs) {
		return m.cursor
	}
	return -1
}

// FocusedField returns which button is focused. While an input has
// focus this reports FieldSave, the button Enter will land on next.
func (m Model) FocusedField() Field {
	if m.cursor == m.cancelStop() {
		return FieldCancel
	}
	return FieldSave
}

// Init starts the cursor blink when the modal has text fields.
func (m Model) Init() tea.Cmd {
	if len(m.inputs) > 0 {
		return textinput.Blink
	}
	return nil
}

// Update handles key and resize messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "ctrl+n":
			return m.moveCursor(1), nil

		case "shift+tab", "up", "ctrl+p":
			return m.moveCursor(-1), nil

		case "left", "h":
			if m.cursor == m.cancelStop() {
				m.cursor = m.saveStop()
				return m, nil
			}

		case "right", "l":
			if m.cursor == m.saveStop() {
				m.cursor = m.cancelStop()
				return m, nil
			}

		case "enter":
			switch m.cursor {
			case m.saveStop():
				return m, m.submit()
			case m.cancelStop():
				return m, cancel
			default:
				// Enter on an input advances, it never submits.
				return m.moveCursor(1), nil
			}

		case "esc":
			return m, cancel
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	if i := m.FocusedInput(); i >= 0 {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		return m, cmd
	}
	return m, nil
}

// moveCursor shifts focus by delta stops, wrapping at either end, and
// keeps textinput focus in sync.
func (m Model) moveCursor(delta int) Model {
	if i := m.FocusedInput(); i >= 0 {
		m.inputs[i].Blur()
	}
	stops := len(m.inputs) + 2
	m.cursor = (m.cursor + delta + stops) % stops
	if i := m.FocusedInput(); i >= 0 {
		m.inputs[i].Focus()
	}
	return m
}

// submit builds the SubmitMsg command, or nil while a required field
// is still empty.
func (m Model) submit() tea.Cmd {
	values := make(map[string]string)
	for i, in := range m.inputs {
		v := in.Value()
		if v == "" && !m.config.Inputs[i].Optional {
			return nil
		}
		values[m.keys[i]] = v
	}
	return func() tea.Msg { return SubmitMsg{Values: values} }
}

func cancel() tea.Msg { return CancelMsg{} }

// View renders the modal box: bold title, divider, message and field
// frames, then the button row.
func (m Model) View() string {
	contentWidth := max(m.config.MinWidth, defaultMinWidth)
	contentWidth = max(contentWidth, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2 // content padding

	var sections []string
	if m.config.Message != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth).
			Render(m.config.Message))
	}
	for i := range m.config.Inputs {
		sections = append(sections, m.renderField(i, contentWidth))
	}
	sections = append(sections, m.renderButtons())

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render(m.config.Title)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))
	body := lipgloss.NewStyle().
		Padding(1, 1).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(title + "\n" + divider + "\n" + body)
}

// renderField draws input index inside its labeled frame.
func (m Model) renderField(index, width int) string {
	cfg := m.config.Inputs[index]
	label := cfg.Label
	if label == "" {
		label = "Input"
	}
	hint := ""
	if cfg.Optional {
		hint = "optional"
	}
	return styles.RenderFieldFrame(
		m.inputs[index].View(), label, hint, width,
		m.cursor == index, styles.BorderHighlightFocusColor)
}

// renderButtons draws the Save/Confirm and Cancel pair.
func (m Model) renderButtons() string {
	saveLabel := "Confirm"
	if len(m.inputs) > 0 {
		saveLabel = "Save"
	}

	saveStyle, saveFocused := styles.PrimaryButtonStyle, styles.PrimaryButtonFocusedStyle
	if m.config.ConfirmVariant == ButtonDanger {
		saveStyle, saveFocused = styles.DangerButtonStyle, styles.DangerButtonFocusedStyle
	}
	if m.cursor == m.saveStop() {
		saveStyle = saveFocused
	}

	cancelStyle := styles.SecondaryButtonStyle
	if m.cursor == m.cancelStop() {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	return saveStyle.Render(saveLabel) + "  " + cancelStyle.Render("Cancel")
}

// Overlay renders the modal centered on the given background.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize records the viewport size used for overlay centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
