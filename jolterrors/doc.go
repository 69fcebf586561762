// Package jolterrors provides structured error types for the jolt library.
//
// Import path: github.com/erraggy/jolt/jolterrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [SpecError]: a transform spec or chain document that cannot be compiled
//   - [ParseError]: JSON or YAML text that cannot be decoded
//   - [ConfigError]: invalid options passed to a constructor or entry point
//   - [TransformError]: a chain step that failed unexpectedly while running
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrSpec]: Matches any [SpecError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrTransform]: Matches any [TransformError]
//
// Data that does not fit the shape a spec expects is never an error: the
// affected write is skipped and the transform continues.
package jolterrors
