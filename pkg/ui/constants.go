package ui

// Table Column Titles
const (
	ColStatus   = "ON"
	ColHostname = "HOSTNAME"
	ColAdded    = "ADDED"
)

// Checkbox glyphs for the status column
const (
	CheckboxOn  = "☑"
	CheckboxOff = "☐"
)

// Action Lines / Key Hints
const (
	ActionListNav      = "↑/↓: Navigate | space: Toggle | enter: Menu | a: Add | e: Edit | d: Delete | /: Filter | ctrl+r: Refresh | q: Quit"
	ActionListNavShort = "space:Toggle | enter:Menu | a:Add | /:Filter | q:Quit"
	ActionContextMenu  = "↑/↓: Navigate | enter: Select | esc: Close"
	ActionAlert        = "enter: Close"
)

// Keyboard shortcuts
const (
	ShortcutAdd     = "a"
	ShortcutEdit    = "e"
	ShortcutDelete  = "d"
	ShortcutFilter  = "/"
	ShortcutRefresh = "ctrl+r"
	ShortcutQuit    = "q"
)

// Dialog texts
const (
	TitleAddDialog      = "Add hostname to whitelist"
	TitleEditDialog     = "Edit whitelist entry"
	TitleContextMenu    = "Whitelist entry"
	TitleInvalidAlert   = "Invalid hostname"
	MessageInvalidAlert = "The input is not a valid hostname. Use letters, digits, hyphens and dots, e.g. ads.example.com."
)

// Numeric Constants for Layout
const (
	MinTableHeight = 4 // Minimum height for the list table
	ListViewOffset = 8 // Estimated non-table lines in the list view (title, filter box, messages)
	MinWidth       = 60
)

// Lipgloss Colors
const (
	ColorBorder     = "240"
	ColorSelectedFg = "229"
	ColorSelectedBg = "57"
	ColorTitle      = "14"  // Cyan for titles
	ColorHelp       = "245" // Grey for help text
	ColorError      = "9"   // Red for errors
	ColorStatus     = "10"  // Green for status messages
	ColorDisabled   = "8"
)
