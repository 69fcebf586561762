package jolt

import (
	"fmt"
	"runtime"
)

var (
	// version, commit and buildTime are set via ldflags during release builds.
	// Development builds report "dev" and "unknown".
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown".
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version the binary was compiled with.
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns a single-line summary of all build metadata.
func BuildInfo() string {
	return fmt.Sprintf("jolt %s (commit: %s, built: %s, %s)", version, commit, buildTime, GoVersion())
}

// UserAgent returns the User-Agent string to use
func UserAgent() string {
	return fmt.Sprintf("jolt/%s", version)
}
