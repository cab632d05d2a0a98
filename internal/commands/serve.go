package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/logging"
	"netlist/internal/server"
	"netlist/internal/service"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
// It runs the HTTP API until the context is cancelled (SIGINT/SIGTERM).
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the HTTP API" }
func (c *ServeCmd) Usage() string     { return "netlist serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", addr)
	}
	s := server.New(svc, logging.New(errOut, cfg.Debug))
	if err := s.Run(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: server: %v\n", err)
		return exitcode.InternalError
	}
	return exitcode.Success
}
