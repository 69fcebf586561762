// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/jolt/node"
	"github.com/google/go-cmp/cmp"
)

// Parse decodes a JSON document, failing the test on error.
func Parse(t testing.TB, doc string) any {
	t.Helper()

	v, err := node.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Failed to decode test document: %v", err)
	}
	return v
}

// Object decodes a JSON document that must be an object.
func Object(t testing.TB, doc string) *node.Object {
	t.Helper()

	obj, ok := Parse(t, doc).(*node.Object)
	if !ok {
		t.Fatalf("Test document is not an object: %s", doc)
	}
	return obj
}

// AssertJSON fails the test unless got deep-equals the JSON document want.
// Integers and floats are compared strictly; key order is ignored.
func AssertJSON(t testing.TB, want string, got any) bool {
	t.Helper()

	expected := Parse(t, want)
	if node.Equal(expected, got) {
		return true
	}
	// ToNative keeps int64 and float64 apart, so the diff shows 1 vs 1.0.
	diff := cmp.Diff(node.ToNative(expected), node.ToNative(got))
	t.Errorf("Documents differ (-expected +actual):\n%s\nactual: %s", diff, node.String(got))
	return false
}

// NewRatingDocument returns a small nested document with object and array
// members, used across transform tests.
func NewRatingDocument() *node.Object {
	return node.ObjectOf(
		"rating", node.ObjectOf(
			"primary", node.ObjectOf("value", int64(3), "max", int64(5)),
			"quality", node.ObjectOf("value", int64(4), "max", int64(5)),
		),
		"tags", node.NewArray("new", "sale"),
	)
}

// WriteTempYAML writes a document as YAML to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t testing.TB, doc any) string {
	t.Helper()

	data, err := node.MarshalYAML(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return writeTemp(t, "test.yaml", data)
}

// WriteTempJSON writes a document as indented JSON to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t testing.TB, doc any) string {
	t.Helper()

	data, err := node.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, "test.json", data)
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
