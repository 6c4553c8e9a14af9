package ui

import (
	"fmt"
	"strings"

	"github.com/xlttj/whitelist/pkg/logging"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m *Model) View() string {
	logging.LogDebug("View called with uiState = %d", m.uiState)

	switch m.uiState {
	case StateList:
		return m.viewList()
	case StateContextMenu:
		return m.overlay(m.renderContextMenu())
	case StateAddDialog:
		return m.overlay(m.renderHostnameDialog(TitleAddDialog, "Add"))
	case StateEditDialog:
		return m.overlay(m.renderHostnameDialog(TitleEditDialog, "Save"))
	case StateAlert:
		return m.overlay(m.renderAlert())
	}
	return "Unknown state"
}

// viewList renders the whitelist checkbox list
func (m *Model) viewList() string {
	enabled := 0
	entries := m.list.Entries()
	for _, e := range entries {
		if e.Enabled {
			enabled++
		}
	}
	titleText := fmt.Sprintf("Whitelist - %d entries, %d enabled", len(entries), enabled)
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true).Render(titleText)

	help := ActionListNav
	if m.width < 120 {
		help = ActionListNavShort
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))

	var tableView string
	if len(m.rowEntries) == 0 {
		empty := "No whitelisted hostnames. Press a to add one."
		if m.filterInput.Value() != "" {
			empty = "No entries match the filter."
		}
		tableView = helpStyle.Render(empty)
	} else {
		tableView = lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.entriesTable.View())
	}

	// Always reserve space for the filter input to prevent layout shift
	var filterView string
	if m.filterMode {
		filterStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)
		filterView = filterStyle.Render("Filter: " + m.filterInput.View())
	} else if m.filterInput.Value() != "" {
		filterStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorDisabled)).
			Foreground(lipgloss.Color(ColorDisabled)).
			Padding(0, 1)
		filterView = filterStyle.Render(fmt.Sprintf("Filter: %s (Press / to edit, Esc to clear)", m.filterInput.Value()))
	} else {
		placeholderStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Foreground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)
		filterView = placeholderStyle.Render("Press / to filter...")
	}

	parts := []string{title, "", filterView, tableView}
	if msg := m.renderMessage(); msg != "" {
		parts = append(parts, msg)
	}
	parts = append(parts, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderMessage renders the error or status line, error first
func (m *Model) renderMessage() string {
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		return errorStyle.Render(fmt.Sprintf("ERROR: %s", m.errorMsg))
	}
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStatus))
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}

// overlay draws a modal box centered on the screen
func (m *Model) overlay(box string) string {
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
