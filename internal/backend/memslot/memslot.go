// Package memslot is an in-process storage slot.
package memslot

import (
	"context"
	"slices"
	"sync"

	"netlist/internal/storage"
)

// Slot keeps the value in memory. The zero value is an empty slot.
type Slot struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// New creates an empty slot.
func New() *Slot { return &Slot{} }

// NewWith creates a slot already holding data.
func NewWith(data []byte) *Slot {
	return &Slot{data: slices.Clone(data), set: true}
}

// Read implements storage.Slot.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return nil, storage.ErrEmptySlot
	}
	return slices.Clone(s.data), nil
}

// Write implements storage.Slot.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = slices.Clone(data)
	s.set = true
	return nil
}

// Close implements storage.Slot.
func (s *Slot) Close() error { return nil }

// Bytes returns the current value.
func (s *Slot) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data)
}
