// Package app holds the controller that owns the task state and applies user intents.
package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"netlist/internal/logging"
	"netlist/internal/service"
	"netlist/internal/storage"
	"netlist/internal/task"
	"netlist/internal/view"
)

// Committer persists a full snapshot of the collection.
type Committer interface {
	Commit(ctx context.Context, snapshot []task.Task) error
}

// Controller is the single owner of the task collection, the current view
// selection, edit-mode and outstanding delete requests.
// It implements service.Service.
type Controller struct {
	mu        sync.Mutex
	store     *task.Store
	committer Committer
	notifier  Notifier
	log       *slog.Logger

	sel     view.Selection
	editing string
	pending map[string]string // token -> task id
	tokens  map[string]string // task id -> its one outstanding token

	newToken  func() string
	storeOpts []task.Option
}

var _ service.Service = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the audio/animation collaborator.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithSelection sets the initial filter and sort.
func WithSelection(sel view.Selection) Option {
	return func(c *Controller) { c.sel = sel }
}

// WithStoreOptions passes options to the underlying task.Store.
func WithStoreOptions(opts ...task.Option) Option {
	return func(c *Controller) { c.storeOpts = append(c.storeOpts, opts...) }
}

// WithTokenFunc sets the delete-token generator.
func WithTokenFunc(f func() string) Option {
	return func(c *Controller) { c.newToken = f }
}

// New creates a controller over tasks that commits through committer.
func New(tasks []task.Task, committer Committer, opts ...Option) *Controller {
	c := &Controller{
		committer: committer,
		notifier:  nopNotifier{},
		sel:       view.Selection{Filter: view.FilterAll, Sort: view.SortPriority},
		pending:   make(map[string]string),
		tokens:    make(map[string]string),
		newToken:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	c.store = task.NewStore(tasks, c.storeOpts...)
	return c
}

// Open loads the collection through p (once, failing open) and returns a controller
// that commits through it.
func Open(ctx context.Context, p *storage.Persister, opts ...Option) *Controller {
	return New(p.Load(ctx), p, opts...)
}

// Add implements service.Service.
func (c *Controller) Add(ctx context.Context, text string, p task.Priority) (task.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(ctx, text, p)
}

func (c *Controller) add(ctx context.Context, text string, p task.Priority) (task.Task, bool, error) {
	prev := c.store.LoadAll()
	ch, ok := c.store.Add(text, p)
	if !ok {
		c.log.Debug("add refused", "priority", p)
		return task.Task{}, false, nil
	}
	if err := c.commit(ctx, prev, ch); err != nil {
		return task.Task{}, false, err
	}
	return ch.Task, true, nil
}

// Edit implements service.Service.
func (c *Controller) Edit(ctx context.Context, id, text string, p task.Priority) (task.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit(ctx, id, text, p)
}

func (c *Controller) edit(ctx context.Context, id, text string, p task.Priority) (task.Task, bool, error) {
	prev := c.store.LoadAll()
	ch, ok := c.store.Edit(id, text, p)
	if !ok {
		c.log.Debug("edit refused", "id", id)
		return task.Task{}, false, nil
	}
	if err := c.commit(ctx, prev, ch); err != nil {
		return task.Task{}, false, err
	}
	return ch.Task, true, nil
}

// Toggle implements service.Service.
func (c *Controller) Toggle(ctx context.Context, id string) (task.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.store.LoadAll()
	ch, ok := c.store.ToggleCompleted(id)
	if !ok {
		c.log.Debug("toggle refused", "id", id)
		return task.Task{}, false, nil
	}
	if err := c.commit(ctx, prev, ch); err != nil {
		return task.Task{}, false, err
	}
	return ch.Task, true, nil
}

// BeginEdit implements service.Service.
func (c *Controller) BeginEdit(id string) (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.store.Get(id)
	if !ok {
		return task.Task{}, false
	}
	c.editing = id
	return t, true
}

// CancelEdit implements service.Service.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = ""
}

// Editing returns the id in edit-mode, if any.
func (c *Controller) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing, c.editing != ""
}

// Submit implements service.Service.
// In edit-mode a successful edit leaves edit-mode; a blank submission keeps it.
// If the edited task has disappeared, edit-mode is dropped and nothing is added.
func (c *Controller) Submit(ctx context.Context, text string, p task.Priority) (task.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editing == "" {
		return c.add(ctx, text, p)
	}
	if _, ok := c.store.Get(c.editing); !ok {
		c.editing = ""
		return task.Task{}, false, nil
	}
	t, ok, err := c.edit(ctx, c.editing, text, p)
	if ok {
		c.editing = ""
	}
	return t, ok, err
}

// RequestDelete implements service.Service.
func (c *Controller) RequestDelete(id string) (service.DeleteRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.store.Get(id)
	if !ok {
		return service.DeleteRequest{}, false
	}
	if old, ok := c.tokens[id]; ok {
		delete(c.pending, old)
	}
	token := c.newToken()
	c.pending[token] = id
	c.tokens[id] = token
	c.log.Debug("delete requested", "id", id, "token", token)
	return service.DeleteRequest{Token: token, Task: t}, true
}

// ResolveDelete implements service.Service.
// Each task has at most one outstanding token; a newer request replaces it.
// The token is consumed by a decline or a successful delete. If the commit
// fails the token stays valid and the answer can be retried.
func (c *Controller) ResolveDelete(ctx context.Context, token string, confirmed bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.pending[token]
	if !ok {
		return false, nil
	}
	if !confirmed {
		c.forget(id)
		c.log.Debug("delete declined", "id", id)
		return false, nil
	}

	prev := c.store.LoadAll()
	ch, ok := c.store.Delete(id)
	if !ok {
		c.forget(id)
		return false, nil
	}
	if err := c.commit(ctx, prev, ch); err != nil {
		return false, err
	}
	c.forget(id)
	if c.editing == id {
		c.editing = ""
	}
	return true, nil
}

// Outstanding returns how many delete requests await an answer.
func (c *Controller) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// forget drops the outstanding delete request for id.
func (c *Controller) forget(id string) {
	if token, ok := c.tokens[id]; ok {
		delete(c.pending, token)
		delete(c.tokens, id)
	}
}

// Get implements service.Service.
func (c *Controller) Get(id string) (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(id)
}

// Tasks implements service.Service.
func (c *Controller) Tasks() []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.LoadAll()
}

// View implements service.Service.
func (c *Controller) View() view.Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.Project(c.store.LoadAll(), c.sel.Filter, c.sel.Sort)
}

// Project implements service.Service.
func (c *Controller) Project(f view.Filter, s view.SortMode) view.Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.Project(c.store.LoadAll(), f, s)
}

// Selection implements service.Service.
func (c *Controller) Selection() view.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// SetFilter implements service.Service.
func (c *Controller) SetFilter(f view.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Filter = f
}

// SetSort implements service.Service.
func (c *Controller) SetSort(s view.SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Sort = s
}

// Close implements service.Service.
func (c *Controller) Close() error {
	if cl, ok := c.committer.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// commit persists ch.Snapshot. On failure the store is restored to prev so
// memory and storage never disagree.
func (c *Controller) commit(ctx context.Context, prev []task.Task, ch task.Change) error {
	if err := c.committer.Commit(ctx, ch.Snapshot); err != nil {
		c.store.Reset(prev)
		c.log.Error("commit failed, change rolled back", "event", ch.Event, "id", ch.Task.ID, "error", err)
		return err
	}
	c.log.Debug("task "+string(ch.Event), "id", ch.Task.ID)
	c.notify(ch.Event, ch.Task)
	return nil
}
