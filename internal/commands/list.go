package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/output"
	"netlist/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `netlist` (no args) and `netlist list`.
type ListCmd struct {
	view viewFlags
}

// SetFilter sets the filter flag (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.view.filter = f
}

// SetSort sets the sort flag (for testing).
func (c *ListCmd) SetSort(s string) {
	c.view.sort = s
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "netlist list [--filter all|pending|completed] [--sort priority|date-added]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.view.register(fs)
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	sel, err := c.view.resolve(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	p := svc.Project(sel.Filter, sel.Sort)
	output.FormatList(out, p, cfg.Quiet)
	output.FormatStats(out, p.Stats)
	return exitcode.Success
}
