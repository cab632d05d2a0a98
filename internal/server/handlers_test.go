package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlist/internal/task"
	"netlist/internal/testutil"
	"netlist/internal/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T, fixtures ...testutil.TaskFixture) (*Server, *testutil.FakeSlot, []task.Task) {
	t.Helper()
	slot := testutil.NewFakeSlot()
	svc := testutil.NewService(slot)
	tasks := testutil.AddTasks(svc, fixtures...)
	return New(svc, nil), slot, tasks
}

func do(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHandleList(t *testing.T) {
	s, _, _ := setup(t,
		testutil.TaskFixture{Text: "low", Priority: task.PriorityLow},
		testutil.TaskFixture{Text: "high", Priority: task.PriorityHigh, Completed: true},
	)

	w := do(s, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[view.Projection](t, w)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "high", p.Tasks[0].Text)
	assert.Equal(t, view.Stats{Total: 2, Pending: 1, Completed: 1, CompletionRate: 50}, p.Stats)

	w = do(s, http.MethodGet, "/api/tasks?filter=pending", nil)
	p = decode[view.Projection](t, w)
	require.Len(t, p.Tasks, 1)
	assert.Equal(t, "low", p.Tasks[0].Text)

	w = do(s, http.MethodGet, "/api/tasks?sort=alphabetical", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreate(t *testing.T) {
	s, slot, _ := setup(t)

	w := do(s, http.MethodPost, "/api/tasks", taskRequest{Text: "buy milk", Priority: "low"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[task.Task](t, w)
	assert.Equal(t, "buy milk", created.Text)
	assert.Equal(t, task.PriorityLow, created.Priority)
	assert.Len(t, slot.Stored(), 1)

	w = do(s, http.MethodPost, "/api/tasks", taskRequest{Text: "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(s, http.MethodPost, "/api/tasks", taskRequest{Text: "x", Priority: "urgent"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Len(t, slot.Stored(), 1)
}

func TestHandlePriorityParsing(t *testing.T) {
	s, _, _ := setup(t)

	w := do(s, http.MethodPost, "/api/tasks", taskRequest{Text: "a", Priority: "HIGH"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[task.Task](t, w)
	assert.Equal(t, task.PriorityHigh, created.Priority)

	w = do(s, http.MethodPut, "/api/tasks/"+created.ID, taskRequest{Text: "a", Priority: " Low "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, task.PriorityLow, decode[task.Task](t, w).Priority)

	w = do(s, http.MethodPut, "/api/tasks/"+created.ID, taskRequest{Text: "a", Priority: "urgent"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"invalid priority: urgent"}`, w.Body.String())
}

func TestHandleCreate_StorageFailure(t *testing.T) {
	s, slot, _ := setup(t)
	slot.WriteErr = errors.New("disk full")

	w := do(s, http.MethodPost, "/api/tasks", taskRequest{Text: "buy milk"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk full")
}

func TestHandleUpdate(t *testing.T) {
	s, _, tasks := setup(t, testutil.TaskFixture{Text: "draft", Priority: task.PriorityMedium})
	path := "/api/tasks/" + tasks[0].ID

	w := do(s, http.MethodPut, path, taskRequest{Text: "final"})
	require.Equal(t, http.StatusOK, w.Code)
	edited := decode[task.Task](t, w)
	assert.Equal(t, "final", edited.Text)
	assert.Equal(t, task.PriorityMedium, edited.Priority)
	assert.Equal(t, tasks[0].CreatedAt, edited.CreatedAt)

	w = do(s, http.MethodPut, path, taskRequest{Text: ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(s, http.MethodPut, "/api/tasks/missing", taskRequest{Text: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetAndToggle(t *testing.T) {
	s, _, tasks := setup(t, testutil.TaskFixture{Text: "a", Priority: task.PriorityLow})
	path := "/api/tasks/" + tasks[0].ID

	w := do(s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tasks[0].ID, decode[task.Task](t, w).ID)

	w = do(s, http.MethodPost, path+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[task.Task](t, w).Completed)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/tasks/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/api/tasks/missing/toggle", nil).Code)
}

func TestHandleDeleteProtocol(t *testing.T) {
	s, slot, tasks := setup(t,
		testutil.TaskFixture{Text: "a", Priority: task.PriorityLow},
		testutil.TaskFixture{Text: "b", Priority: task.PriorityLow},
	)

	w := do(s, http.MethodPost, "/api/tasks/"+tasks[0].ID+"/delete", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	req := decode[struct {
		Token string    `json:"token"`
		Task  task.Task `json:"task"`
	}](t, w)
	assert.Equal(t, tasks[0].ID, req.Task.ID)

	w = do(s, http.MethodPost, "/api/deletions/"+req.Token, deletionRequest{Confirm: false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":false}`, w.Body.String())
	assert.Len(t, slot.Stored(), 2)

	w = do(s, http.MethodPost, "/api/tasks/"+tasks[0].ID+"/delete", nil)
	req = decode[struct {
		Token string    `json:"token"`
		Task  task.Task `json:"task"`
	}](t, w)
	w = do(s, http.MethodPost, "/api/deletions/"+req.Token, deletionRequest{Confirm: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
	assert.Len(t, slot.Stored(), 1)

	w = do(s, http.MethodPost, "/api/deletions/"+req.Token, deletionRequest{Confirm: true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/api/tasks/missing/delete", nil).Code)
}

func TestHandleStatsAndView(t *testing.T) {
	s, _, _ := setup(t,
		testutil.TaskFixture{Text: "a", Priority: task.PriorityLow, Completed: true},
		testutil.TaskFixture{Text: "b", Priority: task.PriorityLow},
		testutil.TaskFixture{Text: "c", Priority: task.PriorityLow},
	)

	w := do(s, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3,"pending":2,"completed":1,"completionRate":33}`, w.Body.String())

	w = do(s, http.MethodPut, "/api/view", viewRequest{Filter: "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"filter":"completed","sort":"priority"}`, w.Body.String())

	w = do(s, http.MethodGet, "/api/tasks", nil)
	p := decode[view.Projection](t, w)
	require.Len(t, p.Tasks, 1)
	assert.Equal(t, "a", p.Tasks[0].Text)

	w = do(s, http.MethodPut, "/api/view", viewRequest{Sort: "random"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/api/view", nil)
	assert.JSONEq(t, `{"filter":"completed","sort":"priority"}`, w.Body.String())
}
