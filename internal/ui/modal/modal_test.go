package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNew_InputMode(t *testing.T) {
	cfg := Config{
		Title: "New Entry",
		Inputs: []InputConfig{
			{Key: "minutes", Label: "Minutes", Placeholder: "e.g. 90"},
		},
	}

	m := New(cfg)

	if len(m.inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(m.inputs))
	}
	if m.inputs[0].Placeholder != cfg.Inputs[0].Placeholder {
		t.Errorf("expected placeholder %q, got %q", cfg.Inputs[0].Placeholder, m.inputs[0].Placeholder)
	}
	if m.FocusedInput() != 0 {
		t.Errorf("expected first input focused, got %d", m.FocusedInput())
	}
}

func TestNew_ConfirmMode(t *testing.T) {
	cfg := Config{
		Title:   "Confirm Delete",
		Message: "Delete this entry?",
		// No Inputs = confirmation mode
	}

	m := New(cfg)

	if len(m.inputs) != 0 {
		t.Errorf("expected no inputs, got %d", len(m.inputs))
	}
	if m.FocusedInput() != -1 {
		t.Errorf("expected no focused input for confirm mode, got %d", m.FocusedInput())
	}
	if m.FocusedField() != FieldSave {
		t.Errorf("expected FieldSave for confirm mode, got %d", m.FocusedField())
	}
}

func TestNew_WithInitialValue(t *testing.T) {
	cfg := Config{
		Title: "Rename Project",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter name...", Value: "Acme Corp"},
		},
	}

	m := New(cfg)

	if m.inputs[0].Value() != cfg.Inputs[0].Value {
		t.Errorf("expected initial value %q, got %q", cfg.Inputs[0].Value, m.inputs[0].Value())
	}
}

func TestNew_WithMaxLength(t *testing.T) {
	cfg := Config{
		Title: "Short Input",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter...", MaxLength: 10},
		},
	}

	m := New(cfg)

	if m.inputs[0].CharLimit != cfg.Inputs[0].MaxLength {
		t.Errorf("expected CharLimit %d, got %d", cfg.Inputs[0].MaxLength, m.inputs[0].CharLimit)
	}
}

func TestNew_MultipleInputs(t *testing.T) {
	cfg := Config{
		Title: "New Entry",
		Inputs: []InputConfig{
			{Key: "minutes", Label: "Minutes", Placeholder: "e.g. 90"},
			{Key: "note", Label: "Note", Placeholder: "What did you do?", Optional: true},
		},
	}

	m := New(cfg)

	if len(m.inputs) != 2 {
		t.Errorf("expected 2 inputs, got %d", len(m.inputs))
	}
	if m.keys[0] != "minutes" || m.keys[1] != "note" {
		t.Errorf("input keys not set correctly: %v", m.keys)
	}
}

func TestInit_InputMode(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter..."},
		},
	})

	cmd := m.Init()
	if cmd == nil {
		t.Error("expected Init() to return textinput.Blink command for input mode")
	}
}

func TestInit_ConfirmMode(t *testing.T) {
	m := New(Config{
		Title: "Confirm",
	})

	cmd := m.Init()
	if cmd != nil {
		t.Error("expected Init() to return nil for confirmation mode")
	}
}

func TestUpdate_Submit(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter...", Value: "my value"},
		},
	})

	// Navigate to Save button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedInput() != -1 || m.FocusedField() != FieldSave {
		t.Fatalf("expected focus on Save button, got input=%d field=%d", m.FocusedInput(), m.FocusedField())
	}

	// Press enter on Save
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command from Enter key on Save")
	}

	msg := cmd()
	submitMsg, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
	if submitMsg.Values["name"] != "my value" {
		t.Errorf("expected value %q, got %q", "my value", submitMsg.Values["name"])
	}
}

func TestUpdate_Cancel(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter..."},
		},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	if cmd == nil {
		t.Fatal("expected command from Esc key")
	}

	msg := cmd()
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", msg)
	}
}

func TestUpdate_CancelButton(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter..."},
		},
	})

	// Navigate to Cancel button (tab to Save, then right to Cancel)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	if m.FocusedField() != FieldCancel {
		t.Fatalf("expected focus on Cancel, got %d", m.FocusedField())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command from Enter on Cancel")
	}

	msg := cmd()
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", msg)
	}
}

func TestUpdate_EmptySubmit(t *testing.T) {
	// In input mode, Save with empty required input should NOT submit
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter..."},
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		msg := cmd()
		if _, ok := msg.(SubmitMsg); ok {
			t.Error("expected no SubmitMsg when required input is empty")
		}
	}
}

func TestUpdate_OptionalInputMaySubmitEmpty(t *testing.T) {
	m := New(Config{
		Title: "New Entry",
		Inputs: []InputConfig{
			{Key: "minutes", Label: "Minutes", Placeholder: "e.g. 90", Value: "45"},
			{Key: "note", Label: "Note", Placeholder: "What did you do?", Optional: true},
		},
	})

	// Navigate past both inputs to the Save button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedInput() != -1 || m.FocusedField() != FieldSave {
		t.Fatalf("expected focus on Save button, got input=%d field=%d", m.FocusedInput(), m.FocusedField())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected SubmitMsg command with empty optional input")
	}

	msg := cmd()
	submitMsg, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
	if submitMsg.Values["minutes"] != "45" {
		t.Errorf("expected minutes %q, got %q", "45", submitMsg.Values["minutes"])
	}
	if submitMsg.Values["note"] != "" {
		t.Errorf("expected empty note, got %q", submitMsg.Values["note"])
	}
}

func TestUpdate_OptionalDoesNotRelaxRequired(t *testing.T) {
	m := New(Config{
		Title: "New Entry",
		Inputs: []InputConfig{
			{Key: "minutes", Label: "Minutes", Placeholder: "e.g. 90"},
			{Key: "note", Label: "Note", Placeholder: "What did you do?", Optional: true},
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		msg := cmd()
		if _, ok := msg.(SubmitMsg); ok {
			t.Error("expected no SubmitMsg while required input is empty")
		}
	}
}

func TestUpdate_ConfirmSubmit(t *testing.T) {
	// In confirmation mode, Enter submits immediately (no input required)
	m := New(Config{
		Title:   "Confirm Delete",
		Message: "Delete this entry?",
	})

	if m.FocusedInput() != -1 || m.FocusedField() != FieldSave {
		t.Fatalf("expected focus on Save, got input=%d field=%d", m.FocusedInput(), m.FocusedField())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command from Enter key in confirmation mode")
	}

	msg := cmd()
	submitMsg, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
	if len(submitMsg.Values) != 0 {
		t.Errorf("expected empty values for confirmation mode, got %v", submitMsg.Values)
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := New(Config{
		Title: "Test",
	})

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_Navigation(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "first", Label: "First", Placeholder: "First..."},
			{Key: "second", Label: "Second", Placeholder: "Second..."},
		},
	})

	if m.FocusedInput() != 0 {
		t.Errorf("expected focused input 0, got %d", m.FocusedInput())
	}

	// Tab to second input
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedInput() != 1 {
		t.Errorf("expected focused input 1 after tab, got %d", m.FocusedInput())
	}

	// Tab to Save button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedInput() != -1 || m.FocusedField() != FieldSave {
		t.Errorf("expected Save button focus, got input=%d field=%d", m.FocusedInput(), m.FocusedField())
	}

	// Tab to Cancel button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedField() != FieldCancel {
		t.Errorf("expected Cancel button focus, got %d", m.FocusedField())
	}

	// Tab wraps to first input
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedInput() != 0 {
		t.Errorf("expected wrap to first input, got %d", m.FocusedInput())
	}
}

func TestUpdate_NavigationReverse(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Name..."},
		},
	})

	// Start on input, shift+tab should go to Cancel
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedField() != FieldCancel {
		t.Errorf("expected Cancel from shift+tab, got %d", m.FocusedField())
	}

	// Shift+tab to Save
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedField() != FieldSave || m.FocusedInput() != -1 {
		t.Errorf("expected Save from shift+tab, got field=%d input=%d", m.FocusedField(), m.FocusedInput())
	}

	// Shift+tab wraps to input
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedInput() != 0 {
		t.Errorf("expected wrap to input, got %d", m.FocusedInput())
	}
}

func TestUpdate_HorizontalNavigation(t *testing.T) {
	m := New(Config{
		Title: "Test",
	})

	if m.FocusedField() != FieldSave {
		t.Fatalf("expected Save focus, got %d", m.FocusedField())
	}

	// Right to Cancel
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.FocusedField() != FieldCancel {
		t.Errorf("expected Cancel after right, got %d", m.FocusedField())
	}

	// Left back to Save
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.FocusedField() != FieldSave {
		t.Errorf("expected Save after left, got %d", m.FocusedField())
	}
}

func TestView_InputMode(t *testing.T) {
	m := New(Config{
		Title: "New Entry",
		Inputs: []InputConfig{
			{Key: "minutes", Label: "Minutes", Placeholder: "e.g. 90"},
			{Key: "note", Label: "Note", Placeholder: "What did you do?", Optional: true},
		},
	})

	view := m.View()

	if !strings.Contains(view, "New Entry") {
		t.Error("expected view to contain title")
	}
	if !strings.Contains(view, "Minutes") {
		t.Error("expected view to contain input label")
	}
	if !strings.Contains(view, "(optional)") {
		t.Error("expected view to mark optional input")
	}
	if !strings.Contains(view, "Save") {
		t.Error("expected view to contain Save button")
	}
	if !strings.Contains(view, "Cancel") {
		t.Error("expected view to contain Cancel button")
	}
}

func TestView_ConfirmMode(t *testing.T) {
	m := New(Config{
		Title:   "Confirm Delete",
		Message: "Delete entry for Mon 2026-08-17?",
	})

	view := m.View()

	if !strings.Contains(view, "Confirm Delete") {
		t.Error("expected view to contain title")
	}
	if !strings.Contains(view, "Delete entry for Mon 2026-08-17?") {
		t.Error("expected view to contain message")
	}
	if !strings.Contains(view, "Confirm") {
		t.Error("expected view to contain Confirm button")
	}
	if !strings.Contains(view, "Cancel") {
		t.Error("expected view to contain Cancel button")
	}
}

func TestView_NoOptionalHintForRequired(t *testing.T) {
	m := New(Config{
		Title: "Rename",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter name..."},
		},
	})

	if strings.Contains(m.View(), "(optional)") {
		t.Error("required input should not be marked optional")
	}
}

func TestSetSize(t *testing.T) {
	m := New(Config{Title: "Test"})
	m.SetSize(120, 40)

	if m.width != 120 || m.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", m.width, m.height)
	}
}
