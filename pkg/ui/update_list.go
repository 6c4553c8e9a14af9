package ui

import (
	"errors"
	"fmt"

	"github.com/xlttj/whitelist/pkg/logging"
	"github.com/xlttj/whitelist/pkg/whitelist"

	tea "github.com/charmbracelet/bubbletea"
)

// updateList handles updates for StateList
func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.filterMode {
		switch msg.String() {
		case "esc":
			// Exit filter mode and drop the filter
			m.filterMode = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.refreshTable()
			m.entriesTable.Focus()
			return m, nil
		case "enter":
			// Exit filter mode but keep filter applied
			m.filterMode = false
			m.filterInput.Blur()
			m.entriesTable.Focus()
			return m, nil
		default:
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.refreshTable()
			return m, cmd
		}
	}

	if msg.Type == tea.KeySpace {
		return m.toggleSelected()
	}

	switch msg.String() {
	case ShortcutFilter:
		m.errorMsg = ""
		m.statusMsg = ""
		m.filterMode = true
		m.filterInput.Focus()
		m.entriesTable.Blur()
		return m, nil
	case ShortcutQuit:
		return m, tea.Quit
	case "esc":
		// Clear an applied filter
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.refreshTable()
		}
		return m, nil
	case "enter":
		return m.openContextMenu()
	case ShortcutAdd:
		return m.openAddDialog()
	case ShortcutEdit:
		return m.openEditDialog()
	case ShortcutDelete:
		return m.deleteSelected()
	case ShortcutRefresh:
		return m.handleRefresh()
	default:
		m.entriesTable, cmd = m.entriesTable.Update(msg)
		return m, cmd
	}
}

// toggleSelected flips the checkbox of the highlighted entry
func (m *Model) toggleSelected() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""

	entry, err := m.selectedEntry()
	if err != nil {
		logging.LogError("Checkbox could not be found: %v", err)
		return m, nil
	}

	enabled, err := m.list.Toggle(entry.ID)
	if err != nil {
		if !errors.Is(err, whitelist.ErrEntryNotFound) {
			m.errorMsg = fmt.Sprintf("Cannot toggle %s: %v", entry.Hostname, err)
		}
		// The snapshot is authoritative for the checkbox either way
		m.refreshTable()
		return m, nil
	}

	// Redraw from the optimistically updated snapshot, no store round trip
	m.refreshTable()
	if enabled {
		m.statusMsg = fmt.Sprintf("Enabled %s", entry.Hostname)
	} else {
		m.statusMsg = fmt.Sprintf("Disabled %s", entry.Hostname)
	}
	return m, nil
}

// deleteSelected removes the highlighted entry without confirmation
func (m *Model) deleteSelected() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""

	entry, err := m.selectedEntry()
	if err != nil {
		m.errorMsg = fmt.Sprintf("Cannot delete: %v", err)
		return m, nil
	}
	return m.deleteEntry(entry.ID, entry.Hostname)
}

func (m *Model) deleteEntry(id int64, hostname string) (tea.Model, tea.Cmd) {
	if err := m.list.Delete(id); err != nil {
		m.errorMsg = fmt.Sprintf("Error deleting %s: %v", hostname, err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Deleted %s", hostname)
	return m, nil
}
