package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/xlttj/whitelist/pkg/server"
)

// HandleServeCommand runs the HTTP API until interrupted
func HandleServeCommand(env *Env, args []string) error {
	fs := newFlagSet(env, "serve", showServeHelp)
	listen := fs.String("listen", env.Settings.Listen, "Address to listen on")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(env.Out, "Serving whitelist API on http://%s (Ctrl+C to stop)\n", *listen)
	return server.New(env.List).Run(ctx, *listen)
}

func showServeHelp(w io.Writer) {
	fmt.Fprintf(w, `%s serve - Serve the whitelist over a local JSON API

Usage:
  %s serve [options]

Options:
  -listen string  Address to listen on (default from WHITELIST_LISTEN, 127.0.0.1:8080)
  -h, --help      Show this help message

Endpoints:
  GET    /entries             List entries
  POST   /entries             Add {"hostname": "..."}
  PUT    /entries/:id         Change hostname {"hostname": "..."}
  POST   /entries/:id/toggle  Enable or disable
  DELETE /entries/:id         Delete
  GET    /hosts               Enabled hostnames, one per line
  GET    /info                Entry counts
`, programName(), programName())
}
