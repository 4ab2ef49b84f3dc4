package saver

import "fmt"

// ErrorList accumulates human-readable error messages across every save
// stage. It is append-only: nothing is ever overwritten or dropped, so a
// caller can report every failure, not just the first.
type ErrorList struct {
	msgs []string
}

// Add appends one error message.
func (e *ErrorList) Add(msg string) {
	e.msgs = append(e.msgs, msg)
}

// Addf appends one formatted error message.
func (e *ErrorList) Addf(format string, args ...any) {
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

// Empty reports whether no errors have been recorded.
func (e *ErrorList) Empty() bool { return len(e.msgs) == 0 }

// First returns the first recorded error, or "" when there are none.
func (e *ErrorList) First() string {
	if len(e.msgs) == 0 {
		return ""
	}
	return e.msgs[0]
}

// All returns the recorded errors in order.
func (e *ErrorList) All() []string {
	out := make([]string, len(e.msgs))
	copy(out, e.msgs)
	return out
}
