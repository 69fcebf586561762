// Package fileutil writes transform results to disk.
package fileutil

import (
	"fmt"
	"os"

	"github.com/erraggy/jolt/internal/pathutil"
)

// ReadableByAll is the file permission mode for transform output files.
const ReadableByAll os.FileMode = 0o644

// WriteOutput writes data to path with ReadableByAll permissions and
// returns the absolute path written. Symlinks and directories are refused.
func WriteOutput(path string, data []byte) (string, error) {
	abs, err := pathutil.ResolveOutput(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, ReadableByAll); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return abs, nil
}
