package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
// It requests the delete, asks for confirmation unless --yes is given, then
// resolves the request with the answer.
type RmCmd struct {
	yes  bool
	in   io.Reader
	view viewFlags
}

// SetYes sets the yes flag (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

// SetInput sets where the confirmation is read from (for testing).
func (c *RmCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "netlist rm [--yes] <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
	c.view.register(fs)
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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

	req, ok := svc.RequestDelete(current.ID)
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", current.ID)
		return exitcode.UserError
	}

	confirmed := c.yes
	if !confirmed {
		fmt.Fprintf(out, "delete %q? [y/N] ", req.Task.Text)
		confirmed = readConfirmation(c.input())
	}

	deleted, err := svc.ResolveDelete(ctx, req.Token, confirmed)
	if err != nil {
		return storageFailure(errOut, err)
	}
	if !confirmed {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}
	if !deleted {
		fmt.Fprintf(errOut, "error: task not found: %s\n", current.ID)
		return exitcode.UserError
	}

	printOK(cfg, out)
	return exitcode.Success
}

func (c *RmCmd) input() io.Reader {
	if c.in != nil {
		return c.in
	}
	return os.Stdin
}

// readConfirmation reads one line and accepts "y" or "yes" in any case.
// EOF or anything else declines.
func readConfirmation(in io.Reader) bool {
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
