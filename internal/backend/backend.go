// Package backend opens the storage slot selected by configuration.
package backend

import (
	"context"
	"fmt"

	"netlist/internal/backend/fileslot"
	"netlist/internal/backend/memslot"
	"netlist/internal/backend/pgslot"
	"netlist/internal/backend/sqlslot"
	"netlist/internal/config"
	"netlist/internal/storage"
)

// Open returns the slot for cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (storage.Slot, error) {
	sc := cfg.Storage
	switch sc.Backend {
	case config.BackendFile, "":
		return fileslot.New(cfg.Dir, sc.Slot), nil
	case config.BackendMemory:
		return memslot.New(), nil
	case config.BackendPostgres:
		s, err := pgslot.Open(ctx, sc.DSN, sc.Slot)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return s, nil
	case config.BackendMySQL:
		s, err := sqlslot.Open(ctx, sqlslot.MySQL, sc.DSN, sc.Slot)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		if err := cfg.EnsureDir(); err != nil {
			return nil, err
		}
		s, err := sqlslot.Open(ctx, sqlslot.SQLite, cfg.SQLitePath(), sc.Slot)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", config.ErrUnknownBackend, sc.Backend)
}
