package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlist/internal/app"
	"netlist/internal/task"
	"netlist/internal/testutil"
	"netlist/internal/view"
)

var ctx = context.Background()

func TestController_AddPersistsAndIncrementsTotal(t *testing.T) {
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)

	before := svc.View().Stats.Total
	got, ok, err := svc.Add(ctx, "buy milk", task.PriorityHigh)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, before+1, svc.View().Stats.Total)
	assert.Equal(t, got.ID, svc.Tasks()[0].ID)
	assert.Equal(t, svc.Tasks(), slot.Stored())
	assert.Equal(t, 1, slot.Writes())
}

func TestController_AddBlankIsNoop(t *testing.T) {
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)
	testutil.AddTasks(svc, testutil.TaskFixture{Text: "keep", Priority: task.PriorityLow})

	for _, text := range []string{"", "   "} {
		_, ok, err := svc.Add(ctx, text, task.PriorityHigh)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Len(t, svc.Tasks(), 1)
	assert.Equal(t, 1, slot.Writes())
}

func TestController_CommitFailureRollsBack(t *testing.T) {
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)
	tasks := testutil.AddTasks(svc, testutil.TaskFixture{Text: "keep", Priority: task.PriorityLow})

	slot.WriteErr = errors.New("disk full")

	_, ok, err := svc.Add(ctx, "new", task.PriorityHigh)
	assert.Error(t, err)
	assert.False(t, ok)

	_, _, err = svc.Toggle(ctx, tasks[0].ID)
	assert.Error(t, err)

	_, _, err = svc.Edit(ctx, tasks[0].ID, "changed", task.PriorityHigh)
	assert.Error(t, err)

	req, ok := svc.RequestDelete(tasks[0].ID)
	require.True(t, ok)
	deleted, err := svc.ResolveDelete(ctx, req.Token, true)
	assert.Error(t, err)
	assert.False(t, deleted)

	assert.Equal(t, tasks, svc.Tasks())
	assert.Equal(t, tasks, slot.Stored())
}

func TestController_ToggleTwice(t *testing.T) {
	svc := testutil.NewService(nil)
	tasks := testutil.AddTasks(svc, testutil.TaskFixture{Text: "a", Priority: task.PriorityMedium})

	first, ok, err := svc.Toggle(ctx, tasks[0].ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, first.Completed)

	second, _, _ := svc.Toggle(ctx, tasks[0].ID)
	assert.Equal(t, tasks[0], second)

	_, ok, err = svc.Toggle(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestController_DeleteProtocol(t *testing.T) {
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)
	tasks := testutil.AddTasks(svc,
		testutil.TaskFixture{Text: "a", Priority: task.PriorityLow},
		testutil.TaskFixture{Text: "b", Priority: task.PriorityLow},
	)

	req, ok := svc.RequestDelete(tasks[0].ID)
	require.True(t, ok)
	assert.Equal(t, tasks[0], req.Task)
	assert.Len(t, svc.Tasks(), 2, "request alone removes nothing")

	deleted, err := svc.ResolveDelete(ctx, req.Token, false)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, svc.Tasks(), 2)

	deleted, err = svc.ResolveDelete(ctx, req.Token, true)
	require.NoError(t, err)
	assert.False(t, deleted, "token is consumed by the first answer")

	req, _ = svc.RequestDelete(tasks[0].ID)
	deleted, err = svc.ResolveDelete(ctx, req.Token, true)
	require.NoError(t, err)
	assert.True(t, deleted)

	for _, tk := range svc.Tasks() {
		assert.NotEqual(t, tasks[0].ID, tk.ID)
	}
	assert.Equal(t, svc.Tasks(), slot.Stored())
}

func TestController_DeleteUnknown(t *testing.T) {
	svc := testutil.NewService(nil)
	testutil.AddTasks(svc, testutil.TaskFixture{Text: "a", Priority: task.PriorityLow})

	_, ok := svc.RequestDelete("missing")
	assert.False(t, ok)

	deleted, err := svc.ResolveDelete(ctx, "no-such-token", true)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, svc.View().Stats.Total)
}

func TestController_DeleteRequestReplacesOlderToken(t *testing.T) {
	svc := testutil.NewService(nil)
	tasks := testutil.AddTasks(svc, testutil.TaskFixture{Text: "a", Priority: task.PriorityLow})

	r1, _ := svc.RequestDelete(tasks[0].ID)
	r2, _ := svc.RequestDelete(tasks[0].ID)
	assert.NotEqual(t, r1.Token, r2.Token)
	assert.Equal(t, 1, svc.Outstanding())

	deleted, err := svc.ResolveDelete(ctx, r1.Token, true)
	require.NoError(t, err)
	assert.False(t, deleted, "replaced token is no longer valid")
	assert.Len(t, svc.Tasks(), 1)

	deleted, err = svc.ResolveDelete(ctx, r2.Token, true)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, svc.Outstanding())
}

func TestController_RepeatedRequestsStayBounded(t *testing.T) {
	svc := testutil.NewService(nil)
	tasks := testutil.AddTasks(svc,
		testutil.TaskFixture{Text: "a", Priority: task.PriorityLow},
		testutil.TaskFixture{Text: "b", Priority: task.PriorityLow},
	)

	for i := 0; i < 1000; i++ {
		_, _ = svc.RequestDelete(tasks[0].ID)
		_, _ = svc.RequestDelete(tasks[1].ID)
	}
	assert.Equal(t, 2, svc.Outstanding())

	req, _ := svc.RequestDelete(tasks[0].ID)
	_, err := svc.ResolveDelete(ctx, req.Token, false)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Outstanding())
}

func TestController_FailedDeleteKeepsToken(t *testing.T) {
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)
	tasks := testutil.AddTasks(svc, testutil.TaskFixture{Text: "a", Priority: task.PriorityLow})

	req, _ := svc.RequestDelete(tasks[0].ID)
	slot.WriteErr = errors.New("disk full")
	deleted, err := svc.ResolveDelete(ctx, req.Token, true)
	assert.Error(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, svc.Outstanding())

	slot.WriteErr = nil
	deleted, err = svc.ResolveDelete(ctx, req.Token, true)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, slot.Stored())
	assert.Zero(t, svc.Outstanding())
}

func TestController_SubmitEditMode(t *testing.T) {
	svc := testutil.NewService(nil)
	tasks := testutil.AddTasks(svc, testutil.TaskFixture{Text: "draft", Priority: task.PriorityLow})

	prefill, ok := svc.BeginEdit(tasks[0].ID)
	require.True(t, ok)
	assert.Equal(t, "draft", prefill.Text)

	_, ok, err := svc.Submit(ctx, "  ", task.PriorityHigh)
	require.NoError(t, err)
	assert.False(t, ok)
	_, editing := svc.Editing()
	assert.True(t, editing, "blank submit keeps edit-mode")

	edited, ok, err := svc.Submit(ctx, "final", task.PriorityHigh)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tasks[0].ID, edited.ID)
	assert.Equal(t, "final", edited.Text)
	_, editing = svc.Editing()
	assert.False(t, editing)

	added, ok, err := svc.Submit(ctx, "another", task.PriorityMedium)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, tasks[0].ID, added.ID)
	assert.Len(t, svc.Tasks(), 2)
}

func TestController_SubmitAfterEditedTaskDeleted(t *testing.T) {
	svc := testutil.NewService(nil)
	tasks := testutil.AddTasks(svc, testutil.TaskFixture{Text: "a", Priority: task.PriorityLow})

	_, _ = svc.BeginEdit(tasks[0].ID)
	req, _ := svc.RequestDelete(tasks[0].ID)
	_, err := svc.ResolveDelete(ctx, req.Token, true)
	require.NoError(t, err)

	_, editing := svc.Editing()
	assert.False(t, editing)

	svc.CancelEdit()
	_, ok, err := svc.Submit(ctx, "fresh", task.PriorityLow)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestController_ViewUsesSelection(t *testing.T) {
	svc := testutil.NewService(nil)
	tasks := testutil.AddTasks(svc,
		testutil.TaskFixture{Text: "a", Priority: task.PriorityLow},
		testutil.TaskFixture{Text: "b", Priority: task.PriorityHigh},
		testutil.TaskFixture{Text: "c", Priority: task.PriorityMedium},
	)
	_, _, err := svc.Toggle(ctx, tasks[1].ID)
	require.NoError(t, err)

	p := svc.View()
	require.Len(t, p.Tasks, 3)
	assert.Equal(t, []task.Priority{task.PriorityHigh, task.PriorityMedium, task.PriorityLow},
		[]task.Priority{p.Tasks[0].Priority, p.Tasks[1].Priority, p.Tasks[2].Priority})

	svc.SetFilter(view.FilterPending)
	svc.SetSort(view.SortDateAdded)
	p = svc.View()
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "c", p.Tasks[0].Text)
	assert.Equal(t, "a", p.Tasks[1].Text)
	assert.Equal(t, view.Stats{Total: 3, Pending: 2, Completed: 1, CompletionRate: 33}, p.Stats)
	assert.Equal(t, view.Selection{Filter: view.FilterPending, Sort: view.SortDateAdded}, svc.Selection())
}

func TestController_ReloadRoundTrip(t *testing.T) {
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)
	testutil.AddTasks(svc,
		testutil.TaskFixture{Text: "a", Priority: task.PriorityLow, Completed: true},
		testutil.TaskFixture{Text: "b", Priority: task.PriorityHigh},
	)

	reloaded := testutil.NewService(slot)
	assert.Equal(t, svc.Tasks(), reloaded.Tasks())
}

func TestController_CorruptStorageStartsEmpty(t *testing.T) {
	slot := testutil.NewFakeSlot()
	require.NoError(t, slot.Write(ctx, []byte("not json")))

	svc := testutil.NewService(slot)
	assert.Empty(t, svc.Tasks())

	_, ok, err := svc.Add(ctx, "fresh", task.PriorityLow)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestController_Notifier(t *testing.T) {
	var events []task.Event
	n := app.NotifierFunc(func(ev task.Event, _ task.Task) { events = append(events, ev) })
	svc := testutil.NewService(nil, app.WithNotifier(n))

	tk, _, _ := svc.Add(ctx, "a", task.PriorityLow)
	_, _, _ = svc.Toggle(ctx, tk.ID)
	_, _, _ = svc.Toggle(ctx, tk.ID)
	_, _, _ = svc.Edit(ctx, tk.ID, "b", task.PriorityLow)
	req, _ := svc.RequestDelete(tk.ID)
	_, _ = svc.ResolveDelete(ctx, req.Token, true)

	assert.Equal(t, []task.Event{
		task.EventAdded, task.EventCompleted, task.EventUncompleted, task.EventEdited, task.EventDeleted,
	}, events)
}

func TestController_NotifierPanicIsContained(t *testing.T) {
	n := app.NotifierFunc(func(task.Event, task.Task) { panic("speaker unplugged") })
	svc := testutil.NewService(nil, app.WithNotifier(n))

	_, ok, err := svc.Add(ctx, "a", task.PriorityLow)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, svc.Tasks(), 1)
}
