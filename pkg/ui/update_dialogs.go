package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xlttj/whitelist/pkg/logging"
	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/whitelist"

	tea "github.com/charmbracelet/bubbletea"
)

// openContextMenu shows Edit/Delete for the highlighted entry
func (m *Model) openContextMenu() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""

	entry, err := m.selectedEntry()
	if err != nil {
		m.errorMsg = fmt.Sprintf("Cannot open menu: %v", err)
		return m, nil
	}

	m.uiState = StateContextMenu
	m.currentID = entry.ID
	m.menuCursor = 0
	return m, nil
}

// updateContextMenu handles updates in the context menu
func (m *Model) updateContextMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeToList()
		return m, nil
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down", "j":
		if m.menuCursor < len(contextMenuActions)-1 {
			m.menuCursor++
		}
		return m, nil
	case "enter":
		return m.handleMenuAction(contextMenuActions[m.menuCursor])
	case ShortcutEdit:
		return m.handleMenuAction(MenuEdit)
	case ShortcutDelete:
		return m.handleMenuAction(MenuDelete)
	}
	return m, nil
}

// handleMenuAction runs the chosen context menu item on the current entry
func (m *Model) handleMenuAction(action MenuAction) (tea.Model, tea.Cmd) {
	entry, ok := m.list.Get(m.currentID)
	if !ok {
		m.closeToList()
		m.errorMsg = "Entry no longer exists"
		return m, nil
	}

	switch action {
	case MenuEdit:
		return m.startEdit(entry)
	case MenuDelete:
		m.closeToList()
		return m.deleteEntry(entry.ID, entry.Hostname)
	}
	return m, nil
}

// openAddDialog switches to the empty hostname dialog
func (m *Model) openAddDialog() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""
	m.uiState = StateAddDialog
	m.hostnameInput.SetValue("")
	m.entriesTable.Blur()
	return m, m.hostnameInput.Focus()
}

// openEditDialog edits the highlighted entry directly, skipping the menu
func (m *Model) openEditDialog() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""

	entry, err := m.selectedEntry()
	if err != nil {
		m.errorMsg = fmt.Sprintf("Cannot edit: %v", err)
		return m, nil
	}
	return m.startEdit(entry)
}

func (m *Model) startEdit(entry store.Entry) (tea.Model, tea.Cmd) {
	m.uiState = StateEditDialog
	m.currentID = entry.ID
	m.hostnameInput.SetValue(entry.Hostname)
	m.hostnameInput.CursorEnd()
	m.entriesTable.Blur()
	return m, m.hostnameInput.Focus()
}

// updateHostnameDialog handles the add and edit dialogs
func (m *Model) updateHostnameDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.closeToList()
		return m, nil
	case "enter":
		return m.commitHostnameDialog()
	default:
		m.hostnameInput, cmd = m.hostnameInput.Update(msg)
		return m, cmd
	}
}

// commitHostnameDialog closes the dialog and applies the input
func (m *Model) commitHostnameDialog() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.hostnameInput.Value())
	editing := m.uiState == StateEditDialog
	id := m.currentID
	m.closeToList()

	var err error
	if editing {
		err = m.list.Edit(id, input)
	} else {
		err = m.list.Add(input)
	}

	switch {
	case err == nil:
		if editing {
			m.statusMsg = fmt.Sprintf("Updated entry to %s", input)
		} else {
			m.statusMsg = fmt.Sprintf("Added %s", input)
		}
	case errors.Is(err, whitelist.ErrInvalidHostname):
		logging.LogDebug("Rejected hostname input %q", input)
		m.showAlert(TitleInvalidAlert, MessageInvalidAlert)
	case errors.Is(err, store.ErrHostnameExists):
		m.errorMsg = fmt.Sprintf("%s is already whitelisted", input)
	default:
		m.errorMsg = fmt.Sprintf("Failed to save %s: %v", input, err)
	}
	return m, nil
}

// showAlert opens a modal notice
func (m *Model) showAlert(title, message string) {
	m.uiState = StateAlert
	m.alertTitle = title
	m.alertMessage = message
	m.entriesTable.Blur()
}

// updateAlert closes the modal notice on enter or esc
func (m *Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.alertTitle = ""
		m.alertMessage = ""
		m.closeToList()
	}
	return m, nil
}

// closeToList returns to the list with the table focused
func (m *Model) closeToList() {
	m.uiState = StateList
	m.hostnameInput.Blur()
	m.hostnameInput.SetValue("")
	m.entriesTable.Focus()
}
