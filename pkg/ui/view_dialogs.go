package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorTitle)).
			Padding(1, 2)
	alertStyle = dialogStyle.
			BorderForeground(lipgloss.Color(ColorError))
	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorTitle)).
				Bold(true)
	dialogHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelp))
)

// renderContextMenu renders the Edit/Delete menu for the current entry
func (m *Model) renderContextMenu() string {
	hostname := "(unknown)"
	if entry, ok := m.list.Get(m.currentID); ok {
		hostname = entry.Hostname
	}

	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSelectedFg)).
		Background(lipgloss.Color(ColorSelectedBg))

	lines := []string{
		dialogTitleStyle.Render(TitleContextMenu),
		hostname,
		"",
	}
	for i, action := range contextMenuActions {
		item := "  " + action.String() + "  "
		if i == m.menuCursor {
			item = selected.Render(item)
		}
		lines = append(lines, item)
	}
	lines = append(lines, "", dialogHelpStyle.Render(ActionContextMenu))

	return dialogStyle.Render(joinLines(lines...))
}

// renderHostnameDialog renders the add or edit input dialog
func (m *Model) renderHostnameDialog(title, confirm string) string {
	lines := []string{
		dialogTitleStyle.Render(title),
		"",
		"Hostname: " + m.hostnameInput.View(),
		"",
		dialogHelpStyle.Render(fmt.Sprintf("enter: %s | esc: Cancel", confirm)),
	}
	return dialogStyle.Render(joinLines(lines...))
}

// renderAlert renders the blocking notice
func (m *Model) renderAlert() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorError)).
		Bold(true)

	lines := []string{
		titleStyle.Render("⚠ " + m.alertTitle),
		"",
		lipgloss.NewStyle().Width(50).Render(m.alertMessage),
		"",
		dialogHelpStyle.Render(ActionAlert),
	}
	return alertStyle.Render(joinLines(lines...))
}
