package main

import (
	"fmt"
	"os"

	"github.com/xlttj/whitelist/pkg/cmd"
	"github.com/xlttj/whitelist/pkg/config"
	"github.com/xlttj/whitelist/pkg/logging"
	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/ui"
	"github.com/xlttj/whitelist/pkg/validation"
	"github.com/xlttj/whitelist/pkg/whitelist"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "help", "-h", "--help":
			cmd.ShowMainHelpAndExit()
		}
		if !cmd.IsCommand(os.Args[1]) {
			fmt.Fprintf(os.Stderr, "Unknown command %q. Run '%s help' for usage.\n", os.Args[1], os.Args[0])
			os.Exit(1)
		}
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(settings.LogFile, settings.LogLevel); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()
	logging.LogDebug("main started, database %s", settings.DBPath)

	s, err := store.NewSQLiteStore(settings.DBPath)
	if err != nil {
		fmt.Printf("Error opening whitelist database: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		code := runCommand(settings, s, os.Args[1], os.Args[2:])
		logging.Close()
		os.Exit(code)
	}

	// Default behavior - start TUI
	model, err := ui.NewModel(s, validation.Default)
	if err != nil {
		s.Close()
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		model.Cleanup()
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	model.Cleanup()
}

// runCommand runs one subcommand and returns the process exit code
func runCommand(settings *config.Settings, s *store.SQLiteStore, name string, args []string) int {
	defer s.Close()

	l, err := whitelist.New(s, validation.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := cmd.Run(cmd.NewEnv(settings, l), name, args); err != nil {
		logging.LogError("%s failed: %v", name, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
