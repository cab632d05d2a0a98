// Package pgslot stores the slot in a PostgreSQL table.
package pgslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"netlist/internal/storage"
)

// Slot is a PostgreSQL-backed storage slot.
type Slot struct {
	pool *pgxpool.Pool
	name string
}

// Open connects to dsn, ensures the table exists and returns the named slot.
func Open(ctx context.Context, dsn, name string) (*Slot, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s := New(pool, name)
	if err := s.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure slot table: %w", err)
	}
	return s, nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, name string) *Slot {
	return &Slot{pool: pool, name: name}
}

// EnsureTable creates the slots table if it doesn't exist.
func (s *Slot) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS netlist_slots (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// Read implements storage.Slot.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM netlist_slots WHERE name = $1`, s.name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrEmptySlot
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return []byte(value), nil
}

// Write implements storage.Slot.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO netlist_slots (name, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.name, string(data))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	return nil
}

// Close implements storage.Slot.
func (s *Slot) Close() error {
	s.pool.Close()
	return nil
}
