package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/service"
	"netlist/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// DefaultPriority is the priority preselected for new tasks.
const DefaultPriority = task.PriorityHigh

// AddCmd implements the add command.
type AddCmd struct {
	priority string
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "netlist add [-p high|medium|low] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", string(DefaultPriority), "")
	fs.StringVar(&c.priority, "p", string(DefaultPriority), "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	p, code := parsePriorityFlag(c.priority, errOut)
	if code != exitcode.Success {
		return code
	}

	t, ok, err := svc.Add(ctx, text, p)
	if err != nil {
		return storageFailure(errOut, err)
	}
	if !ok {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s\n", t.ID)
	}
	return exitcode.Success
}

// parsePriorityFlag parses a --priority value; empty means DefaultPriority.
func parsePriorityFlag(s string, errOut io.Writer) (task.Priority, int) {
	if s == "" {
		return DefaultPriority, exitcode.Success
	}
	p, err := task.ParsePriority(s)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", exitcode.UserError
	}
	return p, exitcode.Success
}
