// Package main is the entry point for the netlist CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"netlist/internal/app"
	"netlist/internal/backend"
	"netlist/internal/cli"
	"netlist/internal/commands"
	"netlist/internal/config"
	"netlist/internal/service"
	"netlist/internal/storage"
	"netlist/internal/view"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.Service, error) {
		slot, err := backend.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		sel, err := selection(cfg)
		if err != nil {
			_ = slot.Close()
			return nil, err
		}
		return app.Open(ctx, storage.NewPersister(slot, log),
			app.WithLogger(log),
			app.WithSelection(sel),
			app.WithNotifier(app.LogNotifier{Log: log}),
		), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// selection returns the configured initial filter and sort.
func selection(cfg *config.Config) (view.Selection, error) {
	f, err := view.ParseFilter(cfg.View.Filter)
	if err != nil {
		return view.Selection{}, err
	}
	s, err := view.ParseSort(cfg.View.Sort)
	if err != nil {
		return view.Selection{}, err
	}
	return view.Selection{Filter: f, Sort: s}, nil
}
