package ui

import (
	"fmt"
	"strings"

	"github.com/xlttj/whitelist/pkg/logging"
	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/validation"
	"github.com/xlttj/whitelist/pkg/whitelist"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the state of the whitelist screen
type Model struct {
	uiState UIState

	// Core components
	store  store.WhitelistStore
	list   *whitelist.List
	width  int
	height int

	// Central error message
	errorMsg string
	// Status/info message (non-error feedback)
	statusMsg string

	// Whitelist table and the entries behind its rows, in row order
	entriesTable table.Model
	rowEntries   []store.Entry

	// Filter state
	filterMode  bool
	filterInput textinput.Model

	// Context menu and dialogs
	menuCursor    int
	hostnameInput textinput.Model
	currentID     int64 // Row id the open menu or edit dialog acts on
	alertTitle    string
	alertMessage  string
}

// NewModel builds the screen over s. The store is closed by Cleanup.
func NewModel(s store.WhitelistStore, valid validation.Validator) (*Model, error) {
	l, err := whitelist.New(s, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to load whitelist: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 253
	ti.Width = 20

	hi := textinput.New()
	hi.Placeholder = "ads.example.com"
	hi.CharLimit = 253
	hi.Width = 40

	m := &Model{
		uiState:       StateList,
		store:         s,
		list:          l,
		width:         80, // Updated on first WindowSizeMsg
		height:        24,
		filterInput:   ti,
		hostnameInput: hi,
	}

	m.entriesTable = table.New(
		table.WithColumns(m.calculateColumnWidths()),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(tableStyles()),
	)

	// Every refresh of the list redraws all rows
	l.OnRefresh(func([]store.Entry) { m.refreshTable() })
	m.refreshTable()

	logging.LogDebug("NewModel: loaded %d whitelist entries", len(l.Entries()))
	return m, nil
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorSelectedFg)).
		Background(lipgloss.Color(ColorSelectedBg)).
		Bold(false)
	return s
}

// calculateColumnWidths gives the hostname column all space not used by the fixed columns
func (m *Model) calculateColumnWidths() []table.Column {
	const statusWidth = 3
	const addedWidth = 16

	availableWidth := max(m.width-10, MinWidth)
	hostWidth := availableWidth - statusWidth - addedWidth

	return []table.Column{
		{Title: ColStatus, Width: statusWidth},
		{Title: ColHostname, Width: hostWidth},
		{Title: ColAdded, Width: addedWidth},
	}
}

// Cleanup releases the database handle
func (m *Model) Cleanup() {
	if m.store == nil {
		return
	}
	if err := m.store.Close(); err != nil {
		logging.LogError("Failed to close whitelist store: %v", err)
	}
	m.store = nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.entriesTable.SetHeight(max(m.height-ListViewOffset, MinTableHeight))
		m.entriesTable.SetColumns(m.calculateColumnWidths())
		m.filterInput.Width = max(m.width-4, 20)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.uiState {
		case StateList:
			return m.updateList(msg)
		case StateContextMenu:
			return m.updateContextMenu(msg)
		case StateAddDialog, StateEditDialog:
			return m.updateHostnameDialog(msg)
		case StateAlert:
			return m.updateAlert(msg)
		}
	}

	return m, nil
}

// applyFilter returns the snapshot entries whose hostname contains the filter text
func (m *Model) applyFilter(entries []store.Entry) []store.Entry {
	filterText := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if filterText == "" {
		return entries
	}

	filtered := []store.Entry{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Hostname), filterText) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// handleRefresh re-reads the store on ctrl+r
func (m *Model) handleRefresh() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""

	if err := m.list.Refresh(); err != nil {
		m.errorMsg = fmt.Sprintf("Refresh failed: %v", err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Reloaded %d entries", len(m.list.Entries()))
	return m, nil
}
