package task

import (
	"slices"
	"time"
)

// Event identifies the kind of mutation a Change describes.
type Event string

const (
	EventAdded       Event = "added"
	EventEdited      Event = "edited"
	EventCompleted   Event = "completed"
	EventUncompleted Event = "uncompleted"
	EventDeleted     Event = "deleted"
)

// Change describes one applied mutation.
// Snapshot is the full collection after the mutation and is what gets persisted.
type Change struct {
	Event    Event
	Task     Task
	Snapshot []Task
}

// Store owns the ordered task collection.
// New tasks are inserted at the front; the stored order is never resorted.
// Store does no I/O: callers persist Change.Snapshot.
type Store struct {
	tasks []Task
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// NewStore creates a store holding a copy of tasks.
func NewStore(tasks []Task, opts ...Option) *Store {
	s := &Store{
		tasks: slices.Clone(tasks),
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns a copy of the collection in stored order.
func (s *Store) LoadAll() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Get looks up a task by id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Reset replaces the collection.
func (s *Store) Reset(tasks []Task) {
	s.tasks = slices.Clone(tasks)
}

// Add inserts a new pending task at the front.
// It refuses empty text and invalid priorities.
func (s *Store) Add(text string, p Priority) (Change, bool) {
	text, ok := NormalizeText(text)
	if !ok || !p.Valid() {
		return Change{}, false
	}

	t := Task{
		ID:        s.uniqueID(),
		Text:      text,
		Completed: false,
		Priority:  p,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.tasks = slices.Insert(s.tasks, 0, t)
	return s.change(EventAdded, t), true
}

// Edit updates text and priority in place.
// ID, Completed, CreatedAt and position are preserved.
func (s *Store) Edit(id, text string, p Priority) (Change, bool) {
	text, ok := NormalizeText(text)
	if !ok || !p.Valid() {
		return Change{}, false
	}
	i := s.index(id)
	if i < 0 {
		return Change{}, false
	}

	s.tasks[i].Text = text
	s.tasks[i].Priority = p
	return s.change(EventEdited, s.tasks[i]), true
}

// ToggleCompleted flips the completed flag.
func (s *Store) ToggleCompleted(id string) (Change, bool) {
	i := s.index(id)
	if i < 0 {
		return Change{}, false
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	ev := EventUncompleted
	if s.tasks[i].Completed {
		ev = EventCompleted
	}
	return s.change(ev, s.tasks[i]), true
}

// Delete removes a task. Confirmation is the caller's job.
func (s *Store) Delete(id string) (Change, bool) {
	i := s.index(id)
	if i < 0 {
		return Change{}, false
	}

	t := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return s.change(EventDeleted, t), true
}

func (s *Store) change(ev Event, t Task) Change {
	return Change{Event: ev, Task: t, Snapshot: s.LoadAll()}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// uniqueID draws ids until one is not already in the collection.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}
