package ui

import (
	"fmt"

	"github.com/xlttj/whitelist/pkg/store"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
)

// generateRows converts entries to table rows
func generateRows(entries []store.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		checkbox := CheckboxOff
		if e.Enabled {
			checkbox = CheckboxOn
		}
		rows = append(rows, table.Row{checkbox, e.Hostname, humanize.Time(e.CreatedAt)})
	}
	return rows
}

// refreshTable redraws every row from the list's current snapshot
func (m *Model) refreshTable() {
	m.rowEntries = m.applyFilter(m.list.Entries())
	rows := generateRows(m.rowEntries)
	m.entriesTable.SetRows(rows)

	if len(rows) > 0 && m.entriesTable.Cursor() >= len(rows) {
		m.entriesTable.SetCursor(len(rows) - 1)
	}
}

// selectedEntry returns the entry behind the highlighted row
func (m *Model) selectedEntry() (store.Entry, error) {
	idx := m.entriesTable.Cursor()
	if idx < 0 || idx >= len(m.rowEntries) {
		return store.Entry{}, fmt.Errorf("no entry at row %d", idx)
	}
	return m.rowEntries[idx], nil
}
