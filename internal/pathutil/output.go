package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveOutput returns the absolute, cleaned form of an output path.
// Symlinks and directories are refused; a path that does not exist yet is
// fine as long as it can be made absolute.
func ResolveOutput(path string) (string, error) {
	if path == "" {
		return "", errors.New("pathutil: empty output path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve %s: %w", path, err)
	}

	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot stat %s: %w", abs, err)
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	case info.IsDir():
		return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
	}
	return abs, nil
}

// CheckDistinct fails when output names the same file as one of inputs,
// either by path or, for files that exist, by identity (hard links).
// Empty inputs are ignored.
func CheckDistinct(output string, inputs ...string) error {
	absOut, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("pathutil: cannot resolve %s: %w", output, err)
	}
	outInfo, outErr := os.Stat(absOut)

	for _, in := range inputs {
		if in == "" {
			continue
		}
		absIn, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("pathutil: cannot resolve %s: %w", in, err)
		}
		if absIn == absOut {
			return fmt.Errorf("output file %s would overwrite input file %s", output, in)
		}
		if outErr != nil {
			continue
		}
		if inInfo, err := os.Stat(absIn); err == nil && os.SameFile(outInfo, inInfo) {
			return fmt.Errorf("output file %s is the same file as input %s", output, in)
		}
	}
	return nil
}
