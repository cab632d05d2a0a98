package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration as YAML.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Print effective configuration" }
func (c *ConfigCmd) Usage() string     { return "netlist config" }
func (c *ConfigCmd) NeedsStore() bool  { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	fmt.Fprintf(out, "# %s\n", cfg.FilePath())
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.InternalError
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.InternalError
	}
	return exitcode.Success
}
