package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// HandlePruneCommand deletes every disabled entry after confirmation
func HandlePruneCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "prune", showPruneHelp)
	acceptAll := fs.Bool("y", false, "Delete without prompting")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	var disabled []string
	for _, e := range env.List.Entries() {
		if !e.Enabled {
			disabled = append(disabled, e.Hostname)
		}
	}
	if len(disabled) == 0 {
		fmt.Fprintln(env.Out, "✅ No disabled entries to remove.")
		return nil
	}

	fmt.Fprintf(env.Out, "Found %d disabled entr%s:\n", len(disabled), plural(len(disabled)))
	for _, hostname := range disabled {
		fmt.Fprintf(env.Out, "  - %s\n", hostname)
	}

	if !*acceptAll {
		fmt.Fprint(env.Out, "Delete these entries from the whitelist? [y/N]: ")
		reader := bufio.NewReader(env.In)
		resp, _ := reader.ReadString('\n')
		resp = strings.TrimSpace(strings.ToLower(resp))
		if resp != "y" && resp != "yes" {
			fmt.Fprintln(env.Out, "Aborted.")
			return nil
		}
	}

	removed, err := env.List.Prune()
	if err != nil {
		return fmt.Errorf("prune stopped after %d entries: %w", removed, err)
	}
	fmt.Fprintf(env.Out, "🧹 Removed %d disabled entr%s.\n", removed, plural(removed))
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func showPruneHelp(w io.Writer) {
	fmt.Fprintf(w, `%s prune - Remove disabled whitelist entries

Usage:
  %s prune [options]

Options:
  -y          Delete without prompting for confirmation
  -h, --help  Show this help message

How it works:
  1. Lists every entry whose checkbox is off
  2. Prompts for confirmation before removal (unless -y is used)
  3. Deletes them from the whitelist database
`, programName(), programName())
}
