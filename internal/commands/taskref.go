package commands

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num   int    // 1-based position in the list view, if IsNum
	ID    string // id or id prefix; for numbers, the digits as typed
	IsNum bool   // true if the reference was all digits
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the first arg and returns the rest.
//
// Parsing rules:
// 1. No args or a blank first arg → error: task reference required
// 2. First arg all digits → position in the list view (same --filter/--sort as list),
//    falling back to an id match when no such position exists
// 3. First arg starting with '-' → error: invalid task reference: <ref>
// 4. Otherwise → task id or unique id prefix
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := strings.TrimSpace(args[0])
	rest := args[1:]

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			// Too large for a position; can only be an id.
			return TaskRef{ID: first}, rest, nil
		}
		return TaskRef{Num: num, ID: first, IsNum: true}, rest, nil
	}

	if strings.HasPrefix(first, "-") {
		return TaskRef{}, nil, &InvalidRefError{Ref: first}
	}

	return TaskRef{ID: first}, rest, nil
}

// InvalidRefError reports an unparseable reference.
type InvalidRefError struct {
	Ref string
}

func (e *InvalidRefError) Error() string {
	return "invalid task reference: " + e.Ref
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
