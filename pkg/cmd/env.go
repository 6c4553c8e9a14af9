package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/xlttj/whitelist/pkg/config"
	"github.com/xlttj/whitelist/pkg/whitelist"
)

// Env carries what every subcommand works on
type Env struct {
	Settings *config.Settings
	List     *whitelist.List
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
}

// NewEnv wires a subcommand environment to the process streams
func NewEnv(settings *config.Settings, l *whitelist.List) *Env {
	return &Env{Settings: settings, List: l, In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type handler func(env *Env, args []string) error

var commands = map[string]handler{
	"ls":     HandleListCommand,
	"add":    HandleAddCommand,
	"edit":   HandleEditCommand,
	"rm":     HandleRemoveCommand,
	"toggle": HandleToggleCommand,
	"prune":  HandlePruneCommand,
	"import": HandleImportCommand,
	"export": HandleExportCommand,
	"serve":  HandleServeCommand,
}

// IsCommand reports whether name is a subcommand that needs the store
func IsCommand(name string) bool {
	_, ok := commands[name]
	return ok
}

// Commands returns the subcommand names in sorted order
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes subcommand name with its arguments
func Run(env *Env, name string, args []string) error {
	h, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return h(env, args)
}

// newFlagSet builds a flag set that prints usage to env.Err instead of exiting
func newFlagSet(env *Env, name string, usage func(w io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Err)
	fs.Usage = func() { usage(env.Err) }
	return fs
}

// parse reports help=true when -h or --help was given
func parse(fs *flag.FlagSet, args []string) (help bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
