// Command inspect browses the descriptors registered with registry.Default.
//
// On a terminal it opens an interactive browser; otherwise, or with -list,
// it prints every descriptor with its WIT record layout.
//
// As built here it is an example binary: the only descriptors it links are
// those of examples/cats, imported in linked.go. To browse another program's
// types, copy the command and replace that import with the packages holding
// their generated descriptors (built with introspectgen --register).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/introspect/registry"
	"github.com/wippyai/introspect/wasmview"
)

func main() {
	var (
		list        = flag.Bool("list", false, "Print every descriptor and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI (default on a terminal)")
		filter      = flag.String("filter", "", "Only show descriptors whose name contains this")
		variants    = flag.Bool("variants", true, "Describe sum enum variant types by reflection")
		logFile     = flag.String("log", "", "Write debug logs to this file")
	)
	flag.Parse()

	if *logFile != "" {
		logger, err := newFileLogger(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		registry.SetLogger(logger)
		wasmview.SetLogger(logger)
	}

	r := registry.Default()
	if *variants {
		describeVariants(r)
	}

	if *interactive || (!*list && term.IsTerminal(int(os.Stdout.Fd()))) {
		if err := runInteractive(r, *filter); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, r, *filter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// run prints the description of every entry whose name contains filter.
func run(w io.Writer, r *registry.Registry, filter string) error {
	entries := matching(r.Entries(), filter)
	if _, err := fmt.Fprintf(w, "Descriptors: %d\n", len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "\n%s", describe(e)); err != nil {
			return err
		}
	}
	return nil
}

func matching(entries []registry.Entry, filter string) []registry.Entry {
	if filter == "" {
		return entries
	}
	var out []registry.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter)) {
			out = append(out, e)
		}
	}
	return out
}
