package app

import (
	"log/slog"

	"netlist/internal/task"
)

// Notifier receives decorative events (sounds, animations).
// It cannot affect the outcome of an intent.
type Notifier interface {
	Notify(ev task.Event, t task.Task)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ev task.Event, t task.Task)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ev task.Event, t task.Task) { f(ev, t) }

type nopNotifier struct{}

func (nopNotifier) Notify(task.Event, task.Task) {}

// LogNotifier logs events at debug level.
type LogNotifier struct {
	Log *slog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(ev task.Event, t task.Task) {
	n.Log.Debug("notify", "event", ev, "id", t.ID, "priority", t.Priority)
}

func (c *Controller) notify(ev task.Event, t task.Task) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("notifier panicked", "event", ev, "panic", r)
		}
	}()
	c.notifier.Notify(ev, t)
}
