package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"netlist/internal/task"
)

// TimeLayout is the ISO-8601 form written for createdAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// record is the stored shape of a task.
type record struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"createdAt"`
}

// Encode serializes the collection in order.
func Encode(tasks []task.Task) ([]byte, error) {
	recs := make([]record, len(tasks))
	for i, t := range tasks {
		recs[i] = record{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			CreatedAt: t.CreatedAt.UTC().Format(TimeLayout),
		}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored collection.
// A malformed document is an error. Individual records that break a task
// invariant are left out and reported in skipped.
func Decode(data []byte) (tasks []task.Task, skipped []error, err error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[string]bool, len(recs))
	tasks = make([]task.Task, 0, len(recs))
	for i, r := range recs {
		t, err := r.task()
		if err == nil && seen[t.ID] {
			err = fmt.Errorf("duplicate id %q", t.ID)
		}
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, skipped, nil
}

func (r record) task() (task.Task, error) {
	if r.ID == "" {
		return task.Task{}, fmt.Errorf("missing id")
	}
	if strings.TrimSpace(r.Text) == "" {
		return task.Task{}, fmt.Errorf("empty text")
	}
	p := task.Priority(r.Priority)
	if !p.Valid() {
		return task.Task{}, fmt.Errorf("invalid priority %q", r.Priority)
	}
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid createdAt %q", r.CreatedAt)
	}
	return task.Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		Priority:  p,
		CreatedAt: created.UTC(),
	}, nil
}
