package output

import (
	"bytes"
	"testing"
	"time"

	"netlist/internal/task"
	"netlist/internal/view"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 3, task.Task{Text: "line\none", Priority: task.PriorityLow, Completed: true})

	expected := "   3  [x] low     line one\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatList_Empty(t *testing.T) {
	p := view.Project(nil, view.FilterPending, view.SortPriority)

	var buf bytes.Buffer
	FormatList(&buf, p, false)
	if buf.String() != "no pending tasks\n" {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	FormatList(&buf, p, true)
	if buf.String() != "" {
		t.Errorf("expected quiet empty output, got %q", buf.String())
	}
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	FormatStats(&buf, view.Stats{Total: 4, Pending: 3, Completed: 1, CompletionRate: 25})

	expected := "------------\n4 total, 3 pending, 1 completed, 25% done\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatDetail(t *testing.T) {
	Location = time.UTC
	defer func() { Location = time.Local }()

	var buf bytes.Buffer
	FormatDetail(&buf, task.Task{
		ID:        "t1",
		Text:      "Buy milk",
		Priority:  task.PriorityMedium,
		CreatedAt: time.Date(2024, 6, 1, 8, 5, 0, 0, time.UTC),
	})

	expected := "id:        t1\n" +
		"text:      Buy milk\n" +
		"status:    pending\n" +
		"priority:  Medium\n" +
		"created:   2024-06-01 08:05\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
