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
	Register(&ShowCmd{})
}

// ShowCmd implements the show command (task detail view).
type ShowCmd struct {
	view viewFlags
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show task details" }
func (c *ShowCmd) Usage() string     { return "netlist show <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	c.view.register(fs)
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sel, err := c.view.resolve(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	t, rest, code := lookupTask(svc, args, sel, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	output.FormatDetail(out, t)
	return exitcode.Success
}
