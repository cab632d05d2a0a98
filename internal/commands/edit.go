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
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// Text is replaced; priority is kept unless --priority is given.
type EditCmd struct {
	priority string
	view     viewFlags
}

// SetPriority sets the priority flag (for testing).
func (c *EditCmd) SetPriority(p string) {
	c.priority = p
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's text and priority" }
func (c *EditCmd) Usage() string     { return "netlist edit [-p high|medium|low] <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	c.view.register(fs)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sel, err := c.view.resolve(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	current, rest, code := lookupTask(svc, args, sel, errOut)
	if code != exitcode.Success {
		return code
	}

	text := strings.Join(rest, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	p := current.Priority
	if c.priority != "" {
		if p, code = parsePriorityFlag(c.priority, errOut); code != exitcode.Success {
			return code
		}
	}

	// Edit goes through the same edit-mode a form would use.
	if _, ok := svc.BeginEdit(current.ID); !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", current.ID)
		return exitcode.UserError
	}
	_, ok, err := svc.Submit(ctx, text, p)
	if err != nil {
		svc.CancelEdit()
		return storageFailure(errOut, err)
	}
	if !ok {
		svc.CancelEdit()
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	printOK(cfg, out)
	return exitcode.Success
}
