// Package service defines what rendering layers need from the task controller.
package service

import (
	"context"

	"netlist/internal/task"
	"netlist/internal/view"
)

// Service defines the interface for task operations.
// The CLI commands and the HTTP API go through this interface and never touch
// the store or the storage slot directly.
//
// Mutations report a refused intent (blank text, invalid priority, unknown id)
// as ok=false with a nil error. A non-nil error means the change could not be
// persisted and was rolled back.
type Service interface {
	// Add creates a task at the front of the collection.
	Add(ctx context.Context, text string, p task.Priority) (t task.Task, ok bool, err error)

	// Edit changes text and priority of an existing task.
	Edit(ctx context.Context, id, text string, p task.Priority) (t task.Task, ok bool, err error)

	// Toggle flips the completed flag.
	Toggle(ctx context.Context, id string) (t task.Task, ok bool, err error)

	// BeginEdit puts the controller in edit-mode for id and returns the task
	// so a form can be pre-filled.
	BeginEdit(id string) (task.Task, bool)

	// CancelEdit leaves edit-mode.
	CancelEdit()

	// Submit edits the task in edit-mode, or adds a new task otherwise.
	Submit(ctx context.Context, text string, p task.Priority) (t task.Task, ok bool, err error)

	// RequestDelete starts the two-step delete for id.
	RequestDelete(id string) (DeleteRequest, bool)

	// ResolveDelete finishes a delete request. Only confirmed requests remove the task.
	ResolveDelete(ctx context.Context, token string, confirmed bool) (deleted bool, err error)

	// Get returns a task by id.
	Get(id string) (task.Task, bool)

	// Tasks returns the collection in stored order.
	Tasks() []task.Task

	// View projects the collection with the current selection.
	View() view.Projection

	// Project projects the collection with an explicit selection.
	Project(f view.Filter, s view.SortMode) view.Projection

	// Selection returns the current filter and sort.
	Selection() view.Selection

	// SetFilter changes the current filter.
	SetFilter(f view.Filter)

	// SetSort changes the current sort mode.
	SetSort(s view.SortMode)

	// Close releases the storage slot.
	Close() error
}
