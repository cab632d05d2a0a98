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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "netlist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  netlist                                  List tasks
  netlist list [common flags] [view flags]
  netlist add [common flags] [-p high|medium|low] <text...>
  netlist create [common flags] [-p high|medium|low] <text...>
  netlist edit [common flags] [view flags] [-p high|medium|low] <ref> <text...>
  netlist toggle [common flags] [view flags] <ref>
  netlist done [common flags] [view flags] <ref>
  netlist rm [common flags] [view flags] [--yes] <ref>
  netlist show [common flags] [view flags] <ref>
  netlist stats [common flags]
  netlist export [common flags] [view flags] [--format json|csv|pdf] [--out <file>]
                 [--font <ttf>]
  netlist serve [common flags] [--addr <host:port>]
  netlist config [common flags]
  netlist help
  netlist version

A <ref> is a task number from the list view or a task id (unique prefix of at
least 4 characters). A number past the end of the list is tried as an id.

Common flags:
  --config <dir>     Override config directory
  --backend <name>   Storage backend: file, memory, postgres, mysql, sqlite
  --dsn <dsn>        Connection string for postgres or mysql
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

View flags:
  --filter, -f <all|pending|completed>
  --sort, -s <priority|date-added>
`
