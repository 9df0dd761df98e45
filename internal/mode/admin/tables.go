package admin

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stint/internal/mode/shared"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/shared/table"
	"github.com/zjrosen/stint/internal/ui/styles"
)

// projectRow pairs a project with its resolved customer name so the
// table render callbacks stay lookup-free.
type projectRow struct {
	*store.Project
	customerName string
}

func makeTabZoneID(tab Tab) string {
	return fmt.Sprintf("admin-tab-%d", tab)
}

func makeRowZoneID(tab Tab, index int) string {
	return fmt.Sprintf("admin-%d-row-%d", tab, index)
}

var archivedStyle = lipgloss.NewStyle().Foreground(styles.ArchivedColor)

// renderName dims archived rows so active ones stand out.
func renderName(name string, archived bool, width int) string {
	if archived {
		return archivedStyle.Render(styles.TruncateString(name, width))
	}
	return styles.TruncateString(name, width)
}

func renderStatus(archived bool) string {
	if archived {
		return archivedStyle.Render("archived")
	}
	return "active"
}

func buildCustomerTable(clock shared.Clock) table.Model[*store.Customer] {
	return table.New(table.TableConfig[*store.Customer]{
		Columns: []table.ColumnConfig[*store.Customer]{
			{Key: "name", Header: "Name", MinWidth: 12, Render: func(row *store.Customer, _ string, w int, _ bool) string {
				return renderName(row.Name, row.Archived, w)
			}},
			{Key: "created", Header: "Created", Width: 14, HideBelow: 60, Render: func(row *store.Customer, _ string, w int, _ bool) string {
				return styles.TruncateString(styles.FormatRelativeTime(row.CreatedAt, clock.Now()), w)
			}},
			{Key: "status", Header: "Status", Width: 10, HideBelow: 44, Render: func(row *store.Customer, _ string, _ int, _ bool) string {
				return renderStatus(row.Archived)
			}},
		},
		ShowHeader:         true,
		ShowBorder:         true,
		Scrollable:         true,
		EmptyMessage:       "No customers yet. Press n to add one.",
		Focused:            true,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
		RowZoneID: func(index int, _ *store.Customer) string {
			return makeRowZoneID(TabCustomers, index)
		},
	})
}

func buildProjectTable() table.Model[projectRow] {
	return table.New(table.TableConfig[projectRow]{
		Columns: []table.ColumnConfig[projectRow]{
			{Key: "name", Header: "Name", MinWidth: 12, Render: func(row projectRow, _ string, w int, _ bool) string {
				return renderName(row.Name, row.Archived, w)
			}},
			{Key: "customer", Header: "Customer", MinWidth: 10, HideBelow: 56, Render: func(row projectRow, _ string, w int, _ bool) string {
				return styles.TruncateString(row.customerName, w)
			}},
			{Key: "rate", Header: "Rate", Width: 10, Align: lipgloss.Right, HideBelow: 44, Render: func(row projectRow, _ string, _ int, _ bool) string {
				return styles.FormatRateCents(row.RateCents)
			}},
			{Key: "status", Header: "Status", Width: 10, HideBelow: 66, Render: func(row projectRow, _ string, _ int, _ bool) string {
				return renderStatus(row.Archived)
			}},
		},
		ShowHeader:         true,
		ShowBorder:         true,
		Scrollable:         true,
		EmptyMessage:       "No projects yet. Press n to add one.",
		Focused:            true,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
		RowZoneID: func(index int, _ projectRow) string {
			return makeRowZoneID(TabProjects, index)
		},
	})
}

func buildActivityTable(clock shared.Clock) table.Model[*store.Activity] {
	return table.New(table.TableConfig[*store.Activity]{
		Columns: []table.ColumnConfig[*store.Activity]{
			{Key: "name", Header: "Name", MinWidth: 12, Render: func(row *store.Activity, _ string, w int, _ bool) string {
				return renderName(row.Name, row.Archived, w)
			}},
			{Key: "created", Header: "Created", Width: 14, HideBelow: 60, Render: func(row *store.Activity, _ string, w int, _ bool) string {
				return styles.TruncateString(styles.FormatRelativeTime(row.CreatedAt, clock.Now()), w)
			}},
			{Key: "status", Header: "Status", Width: 10, HideBelow: 44, Render: func(row *store.Activity, _ string, _ int, _ bool) string {
				return renderStatus(row.Archived)
			}},
		},
		ShowHeader:         true,
		ShowBorder:         true,
		Scrollable:         true,
		EmptyMessage:       "No activities yet. Press n to add one.",
		Focused:            true,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
		RowZoneID: func(index int, _ *store.Activity) string {
			return makeRowZoneID(TabActivities, index)
		},
	})
}
