package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	view viewFlags
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed, or pending again" }
func (c *ToggleCmd) Usage() string     { return "netlist toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	c.view.register(fs)
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sel, err := c.view.resolve(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	current, rest, code := lookupTask(svc, args, sel, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	t, ok, err := svc.Toggle(ctx, current.ID)
	if err != nil {
		return storageFailure(errOut, err)
	}
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", current.ID)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s\n", t.Status())
	}
	return exitcode.Success
}
