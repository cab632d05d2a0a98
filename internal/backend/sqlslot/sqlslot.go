// Package sqlslot stores the slot in a MySQL or SQLite table through database/sql.
package sqlslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"netlist/internal/storage"
)

// Dialect holds the driver name and the statements that differ per database.
type Dialect struct {
	Driver      string
	CreateTable string
	Upsert      string
}

var (
	// MySQL uses go-sql-driver/mysql.
	MySQL = Dialect{
		Driver: "mysql",
		CreateTable: `CREATE TABLE IF NOT EXISTS netlist_slots (
    name VARCHAR(191) PRIMARY KEY,
    value LONGTEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`,
		Upsert: `INSERT INTO netlist_slots (name, value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE value = VALUES(value)`,
	}

	// SQLite uses mattn/go-sqlite3.
	SQLite = Dialect{
		Driver: "sqlite3",
		CreateTable: `CREATE TABLE IF NOT EXISTS netlist_slots (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
		Upsert: `INSERT INTO netlist_slots (name, value) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	}
)

// Slot is a database/sql storage slot.
type Slot struct {
	db      *sql.DB
	dialect Dialect
	name    string
}

// Open opens the database, runs the migration and returns the named slot.
func Open(ctx context.Context, d Dialect, dsn, name string) (*Slot, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", d.Driver, err)
	}
	s := &Slot{db: db, dialect: d, name: name}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", d.Driver, err)
	}
	return s, nil
}

func (s *Slot) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.dialect.CreateTable)
	return err
}

// Read implements storage.Slot.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM netlist_slots WHERE name = ?`, s.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrEmptySlot
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return []byte(value), nil
}

// Write implements storage.Slot.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, s.name, string(data)); err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	return nil
}

// Close implements storage.Slot.
func (s *Slot) Close() error { return s.db.Close() }
