// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"netlist/internal/task"
	"netlist/internal/view"
)

const (
	// Separator is the line printed above the statistics footer.
	Separator = "------------"

	// DateLayout is the layout for creation dates.
	DateLayout = "2006-01-02 15:04"
)

// Location is the time zone dates are shown in.
var Location = time.Local

// FormatTask formats a task line of the list view.
// Format: "{N:>4}  [x] {PRIORITY:<6}  {TEXT}\n"
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  [%s] %-6s  %s\n", num, checkbox(t), t.Priority, normalizeText(t.Text))
}

// FormatList formats every displayed task, or the empty-state message.
// The empty-state message is informational and suppressed by quiet.
func FormatList(w io.Writer, p view.Projection, quiet bool) {
	if p.Empty() {
		if !quiet {
			fmt.Fprintln(w, view.EmptyMessage(p.Selection.Filter))
		}
		return
	}
	for i, t := range p.Tasks {
		FormatTask(w, i+1, t)
	}
}

// FormatStats formats the statistics footer.
func FormatStats(w io.Writer, s view.Stats) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "%d total, %d pending, %d completed, %d%% done\n",
		s.Total, s.Pending, s.Completed, s.CompletionRate)
}

// FormatDetail formats the detail view of one task.
func FormatDetail(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "id:        %s\n", t.ID)
	fmt.Fprintf(w, "text:      %s\n", normalizeText(t.Text))
	fmt.Fprintf(w, "status:    %s\n", t.Status())
	fmt.Fprintf(w, "priority:  %s\n", PriorityLabel(t.Priority))
	fmt.Fprintf(w, "created:   %s\n", FormatDate(t.CreatedAt))
}

// FormatDate formats a timestamp in Location.
func FormatDate(at time.Time) string {
	return at.In(Location).Format(DateLayout)
}

// PriorityLabel returns the display label for a priority.
func PriorityLabel(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "High"
	case task.PriorityMedium:
		return "Medium"
	case task.PriorityLow:
		return "Low"
	}
	return ""
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "x"
	}
	return " "
}

// normalizeText replaces newlines with spaces so one task stays on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
