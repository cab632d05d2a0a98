package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"netlist/internal/logging"
	"netlist/internal/task"
)

// Persister moves the task collection in and out of a Slot.
type Persister struct {
	slot Slot
	log  *slog.Logger
}

// NewPersister creates a Persister. A nil logger discards.
func NewPersister(slot Slot, log *slog.Logger) *Persister {
	if log == nil {
		log = logging.Discard()
	}
	return &Persister{slot: slot, log: log}
}

// Load reads the collection once.
// It never fails: an absent, unreadable or corrupt slot yields an empty collection.
func (p *Persister) Load(ctx context.Context) []task.Task {
	data, err := p.slot.Read(ctx)
	if errors.Is(err, ErrEmptySlot) {
		p.log.Debug("storage slot empty")
		return nil
	}
	if err != nil {
		p.log.Warn("storage unavailable, starting empty", "error", err)
		return nil
	}

	tasks, skipped, err := Decode(data)
	if err != nil {
		p.log.Warn("storage corrupt, starting empty", "error", err)
		return nil
	}
	for _, e := range skipped {
		p.log.Warn("skipping stored task", "error", e)
	}
	p.log.Debug("storage loaded", "tasks", len(tasks))
	return tasks
}

// Commit overwrites the slot with snapshot.
func (p *Persister) Commit(ctx context.Context, snapshot []task.Task) error {
	data, err := Encode(snapshot)
	if err != nil {
		return err
	}
	if err := p.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("write storage slot: %w", err)
	}
	p.log.Debug("storage committed", "tasks", len(snapshot), "bytes", len(data))
	return nil
}

// Close closes the underlying slot.
func (p *Persister) Close() error {
	return p.slot.Close()
}
