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

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task statistics" }
func (c *StatsCmd) Usage() string     { return "netlist stats" }
func (c *StatsCmd) NeedsStore() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	s := view.Compute(svc.Tasks())
	fmt.Fprintf(out, "total:      %d\n", s.Total)
	fmt.Fprintf(out, "pending:    %d\n", s.Pending)
	fmt.Fprintf(out, "completed:  %d\n", s.Completed)
	fmt.Fprintf(out, "completion: %d%%\n", s.CompletionRate)
	return exitcode.Success
}
