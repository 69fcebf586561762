package jolterrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSpec indicates a spec could not be compiled.
	ErrSpec = errors.New("spec error")

	// ErrParse indicates a decoding failure occurred.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrTransform indicates a chain step failed while running.
	ErrTransform = errors.New("transform error")
)

// compose renders "<kind><where>: <message>: <cause>", leaving out the
// parts that are empty.
func compose(kind, where, message string, cause error) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString(where)
	if message != "" {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// SpecError reports a malformed spec: a bad key, an unknown cardinality or
// operation, an invalid reference or transpose expression, or a spec value
// of the wrong shape.
type SpecError struct {
	// Path locates the offending spec node, e.g. "chain[1].spec.rating.*".
	Path    string
	Key     string
	Message string
	Cause   error
}

// Error renders the message with its location and cause.
func (e *SpecError) Error() string {
	var where string
	if e.Path != "" {
		where = " at " + e.Path
	}
	if e.Key != "" {
		where += fmt.Sprintf(" (key %q)", e.Key)
	}
	return compose("spec error", where, e.Message, e.Cause)
}

// Unwrap returns the cause.
func (e *SpecError) Unwrap() error { return e.Cause }

// Is matches the ErrSpec sentinel.
func (e *SpecError) Is(target error) bool { return target == ErrSpec }

// NewSpecError builds a SpecError for key with a formatted message.
func NewSpecError(key, format string, args ...any) *SpecError {
	return &SpecError{Key: key, Message: fmt.Sprintf(format, args...)}
}

// AtPath returns a copy of err with prefix prepended to its Path. Nested
// specs compile bottom-up, so each level adds its own segment on the way
// out. Errors that are not a *SpecError are returned unchanged.
func AtPath(err error, prefix string) error {
	var se *SpecError
	if !errors.As(err, &se) {
		return err
	}
	cp := *se
	switch {
	case cp.Path == "":
		cp.Path = prefix
	case prefix != "":
		cp.Path = prefix + "." + cp.Path
	}
	return &cp
}

// ParseError reports a JSON or YAML document that could not be decoded.
// Line and Column are 1-based and zero when the decoder did not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Cause   error
}

// Error renders the message with its location and cause.
func (e *ParseError) Error() string {
	var where string
	if e.Path != "" {
		where = " in " + e.Path
	}
	if e.Line > 0 {
		where += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			where += fmt.Sprintf(", column %d", e.Column)
		}
	}
	return compose("parse error", where, e.Message, e.Cause)
}

// Unwrap returns the cause.
func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches the ErrParse sentinel.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ConfigError reports invalid options passed to a chain run: missing or
// conflicting sources, or a value of the wrong type.
type ConfigError struct {
	Option string
	// Value is the offending value, if there is one to show.
	Value   any
	Message string
	Cause   error
}

// Error renders the message with its location and cause.
func (e *ConfigError) Error() string {
	var where string
	if e.Option != "" {
		where = " for " + e.Option
	}
	if e.Value != nil {
		where += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return compose("configuration error", where, e.Message, e.Cause)
}

// Unwrap returns the cause.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is matches the ErrConfig sentinel.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// TransformError reports a chain step that could not complete. Transforms
// never fail on data, so this only covers cancellation, step timeouts and
// recovered panics.
type TransformError struct {
	// Step is the zero-based step index, or -1 when unknown.
	Step      int
	Operation string
	Message   string
	Cause     error
}

// Error renders the message with its location and cause.
func (e *TransformError) Error() string {
	var where string
	if e.Step >= 0 {
		where = fmt.Sprintf(" in step %d", e.Step)
	}
	if e.Operation != "" {
		where += " (" + e.Operation + ")"
	}
	return compose("transform error", where, e.Message, e.Cause)
}

// Unwrap returns the cause.
func (e *TransformError) Unwrap() error { return e.Cause }

// Is matches the ErrTransform sentinel.
func (e *TransformError) Is(target error) bool { return target == ErrTransform }
