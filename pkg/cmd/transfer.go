package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xlttj/whitelist/pkg/store"
)

// HandleImportCommand adds the entries of a YAML file, keeping their status
func HandleImportCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "import", showImportHelp)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		showImportHelp(env.Err)
		return errors.New("import needs exactly one file")
	}

	entries, err := store.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	result, err := env.List.Import(entries)
	if err != nil {
		return fmt.Errorf("import stopped after %d entries: %w", result.Imported, err)
	}
	fmt.Fprintf(env.Out, "Imported %d entr%s\n", result.Imported, plural(result.Imported))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(env.Out, "Skipped %d invalid or existing: %s\n", len(result.Skipped), strings.Join(result.Skipped, ", "))
	}
	return nil
}

// HandleExportCommand writes the whitelist as YAML
func HandleExportCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "export", showExportHelp)
	output := fs.String("o", "", "Output file (defaults to stdout)")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	entries := env.List.Entries()
	if *output == "" || *output == "-" {
		return store.Encode(env.Out, entries)
	}
	if err := store.WriteFile(*output, entries); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Exported %d entr%s to %s\n", len(entries), plural(len(entries)), *output)
	return nil
}

func showImportHelp(w io.Writer) {
	fmt.Fprintf(w, `%s import - Add entries from a YAML file

Usage:
  %s import <file.yaml>

File format:
  whitelist:
    - hostname: example.com
    - hostname: ads.example.org
      enabled: false

Entries default to enabled. Invalid and already whitelisted hostnames are skipped.
`, programName(), programName())
}

func showExportHelp(w io.Writer) {
	fmt.Fprintf(w, `%s export - Write the whitelist as YAML

Usage:
  %s export [options]

Options:
  -o string   Output file (defaults to stdout)
  -h, --help  Show this help message
`, programName(), programName())
}
