// Package table provides a config-driven shared table component for rendering
// consistent, styled tables across the application.
//
// The table is a pure render component with external state management. Callers
// pass column configurations (with required Render callbacks), row data, and
// dimensions. The component handles bordered pane wrapping, header rendering,
// cell truncation, responsive column hiding, and selection highlighting.
//
// Quick Start:
//
//	cfg := table.TableConfig[*ProjectRow]{
//	    Columns: []table.ColumnConfig[*ProjectRow]{
//	        {Key: "name", Header: "Name", MinWidth: 10, Render: func(row *ProjectRow, _ string, w int, _ bool) string {
//	            return styles.TruncateString(row.Name, w)
//	        }},
//	        {Key: "rate", Header: "Rate", Width: 8, Align: lipgloss.Right, Render: func(row *ProjectRow, _ string, w int, _ bool) string {
//	            return styles.FormatRateCents(row.RateCents)
//	        }},
//	    },
//	    ShowHeader: true,
//	    ShowBorder: true,
//	}
//	tbl := table.New(cfg).SetRows(rows).SetSize(80, 20)
//	view := tbl.ViewWithSelection(selectedIndex)
//
// Selection:
//
// The table does not manage selection state internally. Use View() for
// rendering without selection, or ViewWithSelection(index) for highlighting a
// specific row. This keeps integration with existing selection logic simple.
package table

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColumnConfig defines a single table column.
//
// Width configuration:
//   - Width: Fixed width in characters (0 = flex/auto)
//   - MinWidth: Minimum width for flex columns (0 = no minimum beyond 3)
//   - MaxWidth: Maximum width for flex columns (0 = no limit)
//
// The Render callback receives the row data, the column key (useful for
// generic render functions), the resolved cell width, and whether the row is
// currently selected.
type ColumnConfig[R any] struct {
	Key      string // Unique identifier passed back to the Render callback
	Header   string // Column header text
	Width    int    // Fixed width (0 = flex/auto)
	MinWidth int    // Minimum width for flex columns
	MaxWidth int    // Maximum width (0 = no limit)
	Align    lipgloss.Position

	// HideBelow hides this column when total table width falls below this
	// threshold. Set to 0 to always show the column.
	HideBelow int

	// Render provides cell content rendering. Required for all columns.
	Render func(row R, key string, width int, selected bool) string
}

// TableConfig defines the complete table configuration.
type TableConfig[R any] struct {
	Columns      []ColumnConfig[R] // Column definitions (required, at least one)
	ShowHeader   bool              // Show header row
	ShowBorder   bool              // Wrap in bordered pane
	Title        string            // Optional title for bordered pane
	EmptyMessage string            // Message when no rows (default: "No data")

	// Scrollable enables scrolling with a sticky header. Scroll position is
	// driven by SetYOffset/EnsureVisible and mouse wheel events via Update().
	Scrollable bool

	// RowZoneID returns a bubblezone zone ID for a row (optional).
	// When set, each row is wrapped with zone.Mark() for mouse click detection.
	RowZoneID func(index int, row R) string

	BorderColor        lipgloss.TerminalColor // Border color override
	Focused            bool                   // Whether the table has focus (affects border color)
	FocusedBorderColor lipgloss.TerminalColor // Border color when focused
}

// ValidateConfig validates the table configuration.
// Returns an error if Columns is empty or any column has a nil Render callback.
func ValidateConfig[R any](cfg TableConfig[R]) error {
	if len(cfg.Columns) == 0 {
		return errors.New("table config: at least one column is required")
	}

	for i, col := range cfg.Columns {
		if col.Render == nil {
			if col.Key != "" {
				return fmt.Errorf("table config: column %q has nil Render callback", col.Key)
			}
			return fmt.Errorf("table config: column %d has nil Render callback", i)
		}
	}

	return nil
}
