package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"netlist/internal/exitcode"
	"netlist/internal/service"
	"netlist/internal/task"
	"netlist/internal/view"
)

var (
	// ErrOutOfRange is returned for a task number outside the list view.
	ErrOutOfRange = errors.New("task number out of range")

	// ErrTaskNotFound is returned when no task matches an id reference.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousRef is returned when an id prefix matches several tasks.
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// ResolveTaskRef finds the task a reference points at.
// Numbers index the projection for sel; a number past the end of the view is
// then tried as an id, since stored ids may be all digits. Ids match exactly
// first, then by unique prefix of at least MinIDPrefix characters.
func ResolveTaskRef(svc service.Service, ref TaskRef, sel view.Selection) (task.Task, error) {
	if !ref.IsNum {
		return findByID(svc, ref.ID)
	}

	if t, ok := svc.Project(sel.Filter, sel.Sort).At(ref.Num); ok {
		return t, nil
	}
	t, err := findByID(svc, ref.ID)
	if errors.Is(err, ErrTaskNotFound) {
		return task.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, ref.Num)
	}
	return t, err
}

func findByID(svc service.Service, id string) (task.Task, error) {
	if t, ok := svc.Get(id); ok {
		return t, nil
	}
	if len(id) < MinIDPrefix {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	var matches []task.Task
	for _, t := range svc.Tasks() {
		if strings.HasPrefix(t.ID, id) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, id)
	}
}

// lookupTask parses and resolves the reference in args, printing errors the
// way every command reports them. It returns the remaining args.
func lookupTask(svc service.Service, args []string, sel view.Selection, errOut io.Writer) (task.Task, []string, int) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, exitcode.UserError
	}

	t, err := ResolveTaskRef(svc, ref, sel)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, exitcode.UserError
	}
	return t, rest, exitcode.Success
}
