// Command rentctl exercises the rentdata services from a terminal.
//
// Usage:
//
//	rentctl [-env file] <command> [flags]
//
// Commands:
//
//	property   resolve a property through the tier chain
//	geocode    resolve coordinates for a location
//	locations  list or search the location directory
//	query      run a cached API query or a mutation
//	cache      clear cached queries and locations
//	health     check dependencies, optionally serving /health and /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonwraymond/rentdata/config"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, config.LoadOptions{})
	stop()
	os.Exit(code)
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string, out io.Writer) error
}

var commands = map[string]command{
	"property":  {"resolve a property through the tier chain", runProperty},
	"geocode":   {"resolve coordinates for a location", runGeocode},
	"locations": {"list or search the location directory", runLocations},
	"query":     {"run a cached API query or a mutation", runQuery},
	"cache":     {"clear cached queries and locations", runCache},
	"health":    {"check dependencies", runHealth},
}

var commandOrder = []string{"property", "geocode", "locations", "query", "cache", "health"}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts config.LoadOptions) int {
	fs := flag.NewFlagSet("rentctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env", "", "dotenv file to load (default .env when present)")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "rentctl: unknown command %q\n", name)
		usage(stderr)
		return 2
	}

	if *envFile != "" {
		opts.EnvFiles = []string{*envFile}
	}
	cfg, err := config.Load(ctx, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	a, err := newApp(ctx, cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	err = cmd.run(ctx, a, fs.Args()[1:], stdout)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if cerr := a.close(closeCtx); cerr != nil {
		fmt.Fprintln(stderr, "rentctl: shutdown:", cerr)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return 2
	default:
		fmt.Fprintln(stderr, err)
		return 1
	}
}

var errUsage = errors.New("rentctl: bad usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: rentctl [-env file] <command> [flags]")
	fmt.Fprintln(w)
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
}
