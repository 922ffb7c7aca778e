package compiler

import (
	"fmt"
	"go/token"
)

// CodeGenError is a single diagnostic tied to a source position. The
// generator never panics on a source-level problem (as opposed to an
// internal invariant violation) -- it records a CodeGenError and returns
// the errSentinel failure so the walk can unwind to the nearest statement
// or file boundary.
type CodeGenError struct {
	Pos token.Position
	Msg string
}

func (e *CodeGenError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// ErrorList collects every CodeGenError raised while compiling one file. A
// file is either fully compiled (len(list) == 0) or entirely rejected;
// the generator never hands a partial ByteCode to a caller when the list
// is non-empty.
type ErrorList struct {
	errs []*CodeGenError
}

// Add records a new diagnostic at pos.
func (l *ErrorList) Add(pos token.Position, msg string) {
	l.errs = append(l.errs, &CodeGenError{Pos: pos, Msg: msg})
}

// Addf is Add with fmt.Sprintf-style formatting.
func (l *ErrorList) Addf(pos token.Position, format string, args ...interface{}) {
	l.Add(pos, fmt.Sprintf(format, args...))
}

// Len reports how many diagnostics have been recorded.
func (l *ErrorList) Len() int { return len(l.errs) }

// Errors returns the recorded diagnostics in the order they were added.
func (l *ErrorList) Errors() []*CodeGenError { return l.errs }

// Error implements the error interface, joining every diagnostic onto its
// own line.
func (l *ErrorList) Error() string {
	var s string
	for i, e := range l.errs {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}

// errSentinel is the zero-information failure signal returned by every
// visit method once a diagnostic has already been recorded in the
// ErrorList; callers short-circuit on it without adding a second,
// redundant message.
var errSentinel = fmt.Errorf("codegen: error already reported")

// isSentinel reports whether err is the shared errSentinel value.
func isSentinel(err error) bool { return err == errSentinel }
