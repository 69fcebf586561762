// Package commands provides CLI command handlers for jolt.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/internal/cliutil"
	"github.com/erraggy/jolt/internal/fileutil"
	"github.com/erraggy/jolt/internal/pathutil"
	"github.com/erraggy/jolt/node"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat returns an error unless format is one of allowed.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %v", format, allowed)
}

// FormatInputPath returns a display-friendly path for an input.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// readSource reads path, or stdin when path is StdinFilePath.
func readSource(path string) ([]byte, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// decodeObjectFile decodes a JSON or YAML file whose root must be an object.
func decodeObjectFile(path, what string) (*node.Object, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	v, _, err := chainr.DecodeInput(FormatInputPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}
	obj, ok := v.(*node.Object)
	if !ok {
		return nil, fmt.Errorf("%s %s must be an object, got %s", what, FormatInputPath(path), node.KindOf(v))
	}
	return obj, nil
}

// MarshalDocument encodes a document as JSON or YAML. Compact applies to
// JSON only.
func MarshalDocument(doc any, format string, compact bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return node.MarshalYAML(doc)
	case FormatJSON:
		if compact {
			return node.Marshal(doc)
		}
		return node.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("invalid format for document output: %s", format)
	}
}

// OutputStructured writes a document in format to stdout, ending with a newline.
func OutputStructured(doc any, format string) error {
	data, err := MarshalDocument(doc, format, false)
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	writeWithNewline(os.Stdout, data)
	return nil
}

func writeWithNewline(w io.Writer, data []byte) {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		Writef(w, "%s\n", data)
		return
	}
	Writef(w, "%s", data)
}

// ValidateOutputPath checks that the output path does not overwrite an input.
// Stdin and empty paths are skipped.
func ValidateOutputPath(outputPath string, inputPaths ...string) error {
	files := make([]string, 0, len(inputPaths))
	for _, p := range inputPaths {
		if p != StdinFilePath {
			files = append(files, p)
		}
	}
	return pathutil.CheckDistinct(outputPath, files...)
}

// writeOutput writes data to outputPath, or to stdout when outputPath is empty.
// Returns the absolute path written, or "" for stdout.
func writeOutput(data []byte, outputPath string) (string, error) {
	if outputPath == "" {
		writeWithNewline(os.Stdout, data)
		return "", nil
	}
	return fileutil.WriteOutput(outputPath, data)
}

// newCLILogger returns a debug-level text logger on stderr when verbose is
// set, and a no-op logger otherwise.
func newCLILogger(verbose bool) chainr.Logger {
	if !verbose {
		return chainr.NopLogger{}
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return chainr.NewSlogAdapter(slog.New(h))
}
