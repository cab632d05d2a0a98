// Package view derives the displayed task list and statistics from a collection.
// Everything here is a pure function of its inputs.
package view

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"netlist/internal/task"
)

// Filter selects which tasks are displayed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Keep reports whether t passes the filter.
func (f Filter) Keep(t task.Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

// SortMode is the ordering applied to the filtered list.
type SortMode string

const (
	SortPriority  SortMode = "priority"
	SortDateAdded SortMode = "date-added"
)

// ParseSort parses a sort mode name. Empty means priority.
func ParseSort(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortPriority, nil
	case SortPriority, SortDateAdded:
		return m, nil
	}
	return "", fmt.Errorf("invalid sort: %s", s)
}

// Stats are aggregate counts over the whole collection.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"`
}

// Projection is the display list plus statistics.
type Projection struct {
	Selection Selection   `json:"view"`
	Tasks     []task.Task `json:"tasks"`
	Stats     Stats       `json:"stats"`
}

// Selection is the filter and sort a projection was built with.
type Selection struct {
	Filter Filter   `json:"filter"`
	Sort   SortMode `json:"sort"`
}

// Project filters and sorts tasks without touching the input slice.
// Both sort modes are stable: ties keep collection order.
func Project(tasks []task.Task, filter Filter, sort SortMode) Projection {
	shown := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Keep(t) {
			shown = append(shown, t)
		}
	}

	switch sort {
	case SortPriority:
		slices.SortStableFunc(shown, func(a, b task.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case SortDateAdded:
		slices.SortStableFunc(shown, func(a, b task.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return Projection{
		Selection: Selection{Filter: filter, Sort: sort},
		Tasks:     shown,
		Stats:     Compute(tasks),
	}
}

// Compute returns statistics for the whole collection.
func Compute(tasks []task.Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Floor(float64(s.Completed)*100/float64(s.Total) + 0.5))
	}
	return s
}

// At returns the n-th displayed task, 1-based.
func (p Projection) At(n int) (task.Task, bool) {
	if n < 1 || n > len(p.Tasks) {
		return task.Task{}, false
	}
	return p.Tasks[n-1], true
}

// Empty reports whether nothing is displayed.
func (p Projection) Empty() bool { return len(p.Tasks) == 0 }

// EmptyMessage is the empty-state text for a filter.
func EmptyMessage(f Filter) string {
	switch f {
	case FilterPending:
		return "no pending tasks"
	case FilterCompleted:
		return "no completed tasks"
	}
	return "no tasks"
}
