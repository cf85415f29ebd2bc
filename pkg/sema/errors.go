package sema

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkg/token"
)

// ErrorList accumulates diagnostics across a whole analysis pass:
// callers keep walking the AST after an error instead of aborting, so
// one pass surfaces every problem it can.
type ErrorList struct {
	errs []error
}

type semanticError struct {
	token.Position
	message string
}

func (e *semanticError) Error() string {
	return fmt.Sprintf("Error at line %d, col %d: %s", e.Line, e.Column, e.message)
}

// Add appends one positioned diagnostic.
func (l *ErrorList) Add(pos token.Position, format string, args ...any) {
	l.errs = append(l.errs, &semanticError{Position: pos, message: fmt.Sprintf(format, args...)})
}

// Empty reports whether no diagnostics were recorded.
func (l *ErrorList) Empty() bool {
	return len(l.errs) == 0
}

// Formatted returns each diagnostic's "Error at line L, col C: message"
// line, in the order they were recorded.
func (l *ErrorList) Formatted() []string {
	lines := make([]string, len(l.errs))
	for i, err := range l.errs {
		lines[i] = err.Error()
	}
	return lines
}
