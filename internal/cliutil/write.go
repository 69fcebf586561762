// Package cliutil provides output helpers shared by the jolt commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on
// stderr since there is nowhere else to send it.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Status writes progress and summary lines for a command. Documents go to
// stdout, so status lines go to a separate writer, normally stderr.
type Status struct {
	w     io.Writer
	quiet bool
}

// NewStatus returns a Status writing to w. A quiet Status discards
// everything except errors written with Errorf.
func NewStatus(w io.Writer, quiet bool) *Status {
	if w == nil {
		w = os.Stderr
	}
	return &Status{w: w, quiet: quiet}
}

// Printf writes a status line unless the Status is quiet.
func (s *Status) Printf(format string, args ...any) {
	if s.quiet {
		return
	}
	Writef(s.w, format, args...)
}

// Errorf writes an error line regardless of quiet.
func (s *Status) Errorf(format string, args ...any) {
	Writef(s.w, "Error: "+format, args...)
}

// Quiet reports whether status lines are suppressed.
func (s *Status) Quiet() bool {
	return s.quiet
}
