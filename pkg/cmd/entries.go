package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/whitelist"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// HandleListCommand prints the whitelist as a table
func HandleListCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "ls", showListHelp)
	enabledOnly := fs.Bool("enabled", false, "Only show enabled entries")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	rows := [][]string{}
	for _, e := range env.List.Entries() {
		if *enabledOnly && !e.Enabled {
			continue
		}
		status := "off"
		if e.Enabled {
			status = "on"
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			status,
			e.Hostname,
			humanize.Time(e.CreatedAt),
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(env.Out, "No whitelist entries.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "ON", "HOSTNAME", "ADDED").
		Rows(rows...)
	fmt.Fprintln(env.Out, t.String())
	return nil
}

// HandleAddCommand adds each hostname argument as an enabled entry
func HandleAddCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "add", showAddHelp)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		showAddHelp(env.Err)
		return errors.New("add needs at least one hostname")
	}

	failed := 0
	for _, hostname := range fs.Args() {
		if err := env.List.Add(hostname); err != nil {
			fmt.Fprintf(env.Err, "Cannot add %s: %v\n", hostname, describe(err))
			failed++
			continue
		}
		fmt.Fprintf(env.Out, "Added %s\n", hostname)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hostname(s) not added", failed, fs.NArg())
	}
	return nil
}

// HandleEditCommand replaces the hostname of one entry
func HandleEditCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "edit", showEditHelp)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 2 {
		showEditHelp(env.Err)
		return errors.New("edit needs an id and a hostname")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}
	old, ok := env.List.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", whitelist.ErrEntryNotFound, id)
	}
	if err := env.List.Edit(id, fs.Arg(1)); err != nil {
		return fmt.Errorf("cannot edit %s: %s", old.Hostname, describe(err))
	}
	fmt.Fprintf(env.Out, "Updated %s to %s\n", old.Hostname, fs.Arg(1))
	return nil
}

// HandleRemoveCommand deletes entries by id. Unknown ids are skipped.
func HandleRemoveCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "rm", showRemoveHelp)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		showRemoveHelp(env.Err)
		return errors.New("rm needs at least one id")
	}

	ids, err := parseIDs(fs.Args())
	if err != nil {
		return err
	}
	for _, id := range ids {
		e, ok := env.List.Get(id)
		if !ok {
			fmt.Fprintf(env.Out, "No entry %d, skipping\n", id)
			continue
		}
		if err := env.List.Delete(id); err != nil {
			return fmt.Errorf("error deleting %s: %w", e.Hostname, err)
		}
		fmt.Fprintf(env.Out, "Deleted %s\n", e.Hostname)
	}
	return nil
}

// HandleToggleCommand flips the status of entries by id
func HandleToggleCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "toggle", showToggleHelp)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		showToggleHelp(env.Err)
		return errors.New("toggle needs at least one id")
	}

	ids, err := parseIDs(fs.Args())
	if err != nil {
		return err
	}
	for _, id := range ids {
		enabled, err := env.List.Toggle(id)
		if err != nil {
			return fmt.Errorf("cannot toggle %d: %w", id, err)
		}
		e, _ := env.List.Get(id)
		if enabled {
			fmt.Fprintf(env.Out, "Enabled %s\n", e.Hostname)
		} else {
			fmt.Fprintf(env.Out, "Disabled %s\n", e.Hostname)
		}
	}
	return nil
}

// describe turns controller errors into short user messages
func describe(err error) string {
	switch {
	case errors.Is(err, whitelist.ErrInvalidHostname):
		return "not a valid hostname"
	case errors.Is(err, store.ErrHostnameExists):
		return "already whitelisted"
	default:
		return err.Error()
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func showListHelp(w io.Writer) {
	fmt.Fprintf(w, `%s ls - List whitelist entries

Usage:
  %s ls [options]

Options:
  -enabled    Only show enabled entries
  -h, --help  Show this help message
`, programName(), programName())
}

func showAddHelp(w io.Writer) {
	fmt.Fprintf(w, `%s add - Whitelist one or more hostnames

Usage:
  %s add <hostname>...

New entries are enabled. Invalid or duplicate hostnames are reported and skipped.

Examples:
  %s add example.com ads.example.org
`, programName(), programName(), programName())
}

func showEditHelp(w io.Writer) {
	fmt.Fprintf(w, `%s edit - Change the hostname of an entry

Usage:
  %s edit <id> <hostname>

The entry keeps its enabled state. Use '%s ls' to see ids.
`, programName(), programName(), programName())
}

func showRemoveHelp(w io.Writer) {
	fmt.Fprintf(w, `%s rm - Delete entries

Usage:
  %s rm <id>...
`, programName(), programName())
}

func showToggleHelp(w io.Writer) {
	fmt.Fprintf(w, `%s toggle - Enable or disable entries

Usage:
  %s toggle <id>...
`, programName(), programName())
}
