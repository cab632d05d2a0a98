// Package storage persists the task collection to a single named slot.
package storage

import (
	"context"
	"errors"
)

// DefaultSlotName is the slot name used when none is configured.
const DefaultSlotName = "netlist-tasks"

// ErrEmptySlot is returned by Slot.Read when nothing has been written yet.
var ErrEmptySlot = errors.New("slot is empty")

// Slot is one named durable value.
// Writes always replace the whole value.
type Slot interface {
	// Read returns the stored value, or ErrEmptySlot if there is none.
	Read(ctx context.Context) ([]byte, error)

	// Write overwrites the stored value.
	Write(ctx context.Context, data []byte) error

	// Close releases backend resources.
	Close() error
}
