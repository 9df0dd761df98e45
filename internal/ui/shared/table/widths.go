package table

// flexMinimum is the smallest width a flex column can be assigned.
const flexMinimum = 3

// filterVisibleColumns drops columns whose HideBelow threshold exceeds the
// total table width. Used for responsive layouts where less important columns
// disappear on narrow terminals.
func filterVisibleColumns[R any](cols []ColumnConfig[R], totalWidth int) []ColumnConfig[R] {
	visible := make([]ColumnConfig[R], 0, len(cols))
	for _, col := range cols {
		if col.HideBelow > 0 && totalWidth < col.HideBelow {
			continue
		}
		visible = append(visible, col)
	}
	return visible
}

// calculateColumnWidths resolves the rendered width of each column.
// Fixed-width columns claim their width first; flex columns split the
// remainder evenly, respecting MinWidth floors and MaxWidth caps. Columns are
// separated by a single space, which is accounted for here.
func calculateColumnWidths[R any](cols []ColumnConfig[R], availableWidth int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}

	remaining := availableWidth - (len(cols) - 1)

	var flex []int
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			remaining -= col.Width
		} else {
			flex = append(flex, i)
		}
	}

	if len(flex) == 0 {
		return widths
	}

	// Every flex column gets its floor even when space is short; overflowing
	// rows are truncated at render time.
	for _, i := range flex {
		widths[i] = flexFloor(cols[i])
		remaining -= widths[i]
	}

	// Distribute the rest one cell at a time, skipping capped columns.
	for remaining > 0 {
		progress := false
		for _, i := range flex {
			if remaining == 0 {
				break
			}
			if maxW := cols[i].MaxWidth; maxW > 0 && widths[i] >= maxW {
				continue
			}
			widths[i]++
			remaining--
			progress = true
		}
		if !progress {
			break // every flex column is at its MaxWidth
		}
	}

	return widths
}

func flexFloor[R any](col ColumnConfig[R]) int {
	if col.MinWidth > flexMinimum {
		return col.MinWidth
	}
	return flexMinimum
}
