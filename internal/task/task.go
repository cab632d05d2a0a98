// Package task defines the task entity and the in-memory task store.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the priority tag of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the valid priorities in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority parses a priority name (case-insensitive, trimmed).
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank: high=1, medium=2, low=3.
// Invalid priorities rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

func (p Priority) String() string { return string(p) }

// Task is a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// Status returns "completed" or "pending".
func (t Task) Status() string {
	if t.Completed {
		return "completed"
	}
	return "pending"
}

// NormalizeText trims text. It returns false if nothing is left.
func NormalizeText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	return text, text != ""
}

// NewID returns a fresh time-ordered task id.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
