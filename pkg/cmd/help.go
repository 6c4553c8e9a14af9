package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func programName() string {
	return filepath.Base(os.Args[0])
}

// HandleHelpCommand displays help information for the application
func HandleHelpCommand(w io.Writer) {
	showMainHelp(w)
}

// showMainHelp displays the main application help
func showMainHelp(w io.Writer) {
	programName := programName()
	fmt.Fprintf(w, `%s - Whitelist Manager

A terminal-based UI application for managing the hostname whitelist
of an ad blocker.

Usage:
  %s [command]

Available Commands:
  ls       List whitelist entries
  add      Whitelist one or more hostnames
  edit     Change the hostname of an entry
  rm       Delete entries
  toggle   Enable or disable entries
  prune    Remove disabled entries
  import   Add entries from a YAML file
  export   Write the whitelist as YAML
  serve    Serve the whitelist over a local JSON API
  help     Show help information

Options:
  -h, --help  Show help information

Interactive Mode:
  Run without any command to start the interactive TUI where you can:
  - Enable or disable entries with Space
  - Press Enter for the Edit/Delete menu
  - Use 'a' to add, 'e' to edit and 'd' to delete
  - Use '/' to filter and Ctrl+R to reload

Environment:
  WHITELIST_DIR        Data directory (default ~/.whitelist)
  WHITELIST_DB_PATH    Database file (default $WHITELIST_DIR/whitelist.db)
  WHITELIST_LOG_FILE   Log file (default $WHITELIST_DIR/whitelist.log)
  WHITELIST_LOG_LEVEL  debug, info, warn or error (default debug)
  WHITELIST_LISTEN     Address for serve (default 127.0.0.1:8080)

Examples:
  %s                      Start interactive TUI
  %s add example.com      Whitelist example.com
  %s export -o wl.yaml    Save the whitelist to a file
  %s help                 Show this help message

For more information about a specific command, use:
  %s <command> --help
`, programName, programName, programName, programName, programName, programName, programName)
}

// ShowMainHelpAndExit displays help and exits with code 0
func ShowMainHelpAndExit() {
	showMainHelp(os.Stdout)
	os.Exit(0)
}
