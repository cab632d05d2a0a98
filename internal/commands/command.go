// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/service"
	"netlist/internal/view"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes tasks.
	// Commands like help, version and config return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, storage and view settings).
	// svc is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// viewFlags are the --filter/--sort flags shared by commands that show or
// reference tasks by number.
type viewFlags struct {
	filter string
	sort   string
}

func (v *viewFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&v.filter, "filter", "", "")
	fs.StringVar(&v.filter, "f", "", "")
	fs.StringVar(&v.sort, "sort", "", "")
	fs.StringVar(&v.sort, "s", "", "")
}

// resolve returns the selection, falling back to configured defaults.
func (v *viewFlags) resolve(cfg *config.Config) (view.Selection, error) {
	fs, ss := v.filter, v.sort
	if fs == "" {
		fs = cfg.View.Filter
	}
	if ss == "" {
		ss = cfg.View.Sort
	}
	f, err := view.ParseFilter(fs)
	if err != nil {
		return view.Selection{}, err
	}
	s, err := view.ParseSort(ss)
	if err != nil {
		return view.Selection{}, err
	}
	return view.Selection{Filter: f, Sort: s}, nil
}

// storageFailure reports a failed commit.
func storageFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
