package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"netlist/internal/config"
	"netlist/internal/exitcode"
	"netlist/internal/export"
	"netlist/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	path   string
	font   string
	view   viewFlags
}

// SetFormat sets the format flag (for testing).
func (c *ExportCmd) SetFormat(f string) {
	c.format = f
}

// SetFont sets the PDF font flag (for testing).
func (c *ExportCmd) SetFont(path string) {
	c.font = path
}

// SetOut sets the output path (for testing).
func (c *ExportCmd) SetOut(path string) {
	c.path = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as JSON, CSV or PDF" }
func (c *ExportCmd) Usage() string {
	return "netlist export [--format json|csv|pdf] [--out <file>] [--font <ttf>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVar(&c.path, "out", "", "")
	fs.StringVar(&c.path, "o", "", "")
	fs.StringVar(&c.font, "font", "", "")
	c.view.register(fs)
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	sel, err := c.view.resolve(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	format := c.format
	if format == "" {
		format = "json"
	}
	exp := export.New()
	exp.FontPath = c.font
	if exp.FontPath == "" {
		exp.FontPath = cfg.Export.Font
	}
	data, err := exp.Export(svc.Project(sel.Filter, sel.Sort), format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.path == "" || c.path == "-" {
		if _, err := out.Write(data); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.InternalError
		}
		return exitcode.Success
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		fmt.Fprintf(errOut, "error: write %s: %v\n", c.path, err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s\n", c.path)
	}
	return exitcode.Success
}
