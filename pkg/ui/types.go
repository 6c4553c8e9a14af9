package ui

// UIState represents the different views/states of the UI
type UIState int

const (
	StateList        UIState = iota // Checkbox list of whitelist entries
	StateContextMenu                // Edit/Delete menu for the selected entry
	StateAddDialog                  // Hostname input for a new entry
	StateEditDialog                 // Hostname input prefilled with the selected entry
	StateAlert                      // Modal notice, closes back to the list
)

// MenuAction is an item of the entry context menu
type MenuAction int

const (
	MenuEdit MenuAction = iota
	MenuDelete
)

func (a MenuAction) String() string {
	switch a {
	case MenuEdit:
		return "Edit"
	case MenuDelete:
		return "Delete"
	}
	return "Unknown"
}

// contextMenuActions lists the menu items in display order
var contextMenuActions = []MenuAction{MenuEdit, MenuDelete}
