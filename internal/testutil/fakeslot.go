// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"netlist/internal/app"
	"netlist/internal/storage"
	"netlist/internal/task"
)

// BaseTime is the clock origin used by NewService.
var BaseTime = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// FakeSlot is an in-memory storage.Slot with error injection.
type FakeSlot struct {
	mu     sync.Mutex
	data   []byte
	set    bool
	writes int

	// Error injection for testing
	ReadErr  error
	WriteErr error
	CloseErr error
}

// NewFakeSlot creates an empty FakeSlot.
func NewFakeSlot() *FakeSlot {
	return &FakeSlot{}
}

// Read implements storage.Slot.
func (f *FakeSlot) Read(ctx context.Context) ([]byte, error) {
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.set {
		return nil, storage.ErrEmptySlot
	}
	return slices.Clone(f.data), nil
}

// Write implements storage.Slot.
func (f *FakeSlot) Write(ctx context.Context, data []byte) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = slices.Clone(data)
	f.set = true
	f.writes++
	return nil
}

// Close implements storage.Slot.
func (f *FakeSlot) Close() error { return f.CloseErr }

// Writes returns how many successful writes happened.
func (f *FakeSlot) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Stored decodes the slot content.
func (f *FakeSlot) Stored() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.set {
		return nil
	}
	tasks, _, err := storage.Decode(f.data)
	if err != nil {
		panic(err)
	}
	return tasks
}

// NewService creates a controller over slot with deterministic ids ("t1", "t2", ...)
// and a clock that advances one minute per task.
// A nil slot gets a fresh FakeSlot.
func NewService(slot storage.Slot, opts ...app.Option) *app.Controller {
	if slot == nil {
		slot = NewFakeSlot()
	}
	n := 0
	storeOpts := app.WithStoreOptions(
		task.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("t%d", n)
		}),
		task.WithClock(func() time.Time {
			return BaseTime.Add(time.Duration(n) * time.Minute)
		}),
	)
	tok := 0
	tokens := app.WithTokenFunc(func() string {
		tok++
		return fmt.Sprintf("del-%d", tok)
	})
	p := storage.NewPersister(slot, nil)
	return app.Open(context.Background(), p, append([]app.Option{storeOpts, tokens}, opts...)...)
}

// AddTasks adds tasks in order, so the last one ends up first.
// It panics on refusal.
func AddTasks(svc *app.Controller, fixtures ...TaskFixture) []task.Task {
	var out []task.Task
	for _, s := range fixtures {
		t, ok, err := svc.Add(context.Background(), s.Text, s.Priority)
		if err != nil || !ok {
			panic(fmt.Sprintf("add %q: ok=%v err=%v", s.Text, ok, err))
		}
		if s.Completed {
			if _, _, err := svc.Toggle(context.Background(), t.ID); err != nil {
				panic(err)
			}
			t.Completed = true
		}
		out = append(out, t)
	}
	return out
}

// TaskFixture describes a task for AddTasks.
type TaskFixture struct {
	Text      string
	Priority  task.Priority
	Completed bool
}
