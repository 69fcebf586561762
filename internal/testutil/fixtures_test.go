package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/jolt/node"
)

func TestParse(t *testing.T) {
	v := Parse(t, `{"a": [1, 2.5, "x", null]}`)
	obj, ok := v.(*node.Object)
	require.True(t, ok)
	arr, _ := obj.Get("a")
	assert.True(t, node.Equal(node.NewArray(int64(1), 2.5, "x", nil), arr))
}

func TestObject(t *testing.T) {
	obj := Object(t, `{"b": 1, "a": 2}`)
	assert.Equal(t, []string{"b", "a"}, obj.Keys(), "key order should be preserved")
}

func TestAssertJSON(t *testing.T) {
	assert.True(t, AssertJSON(t, `{"a": 1, "b": [true]}`, node.ObjectOf("b", node.NewArray(true), "a", int64(1))))

	rec := &recorder{TB: t}
	assert.False(t, AssertJSON(rec, `{"a": 1}`, node.ObjectOf("a", 1.0)), "int and float must differ")
	assert.True(t, rec.failed)
	assert.Contains(t, rec.msg, "int64(1)")
	assert.Contains(t, rec.msg, "float64(1)")
}

type recorder struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}

// TestNewRatingDocument verifies the shared fixture shape.
func TestNewRatingDocument(t *testing.T) {
	doc := NewRatingDocument()
	assert.Equal(t, []string{"rating", "tags"}, doc.Keys())
	AssertJSON(t, `{
		"rating": {"primary": {"value": 3, "max": 5}, "quality": {"value": 4, "max": 5}},
		"tags": ["new", "sale"]
	}`, doc)
}

func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, NewRatingDocument())

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Should be able to read temp file")
	v, err := node.Decode(data)
	require.NoError(t, err, "Temp file should contain valid JSON")
	assert.True(t, node.Equal(NewRatingDocument(), v))
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, NewRatingDocument())
	assert.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Should be able to read temp file")
	v, err := node.DecodeYAML(data)
	require.NoError(t, err, "Temp file should contain valid YAML")
	assert.True(t, node.Equal(NewRatingDocument(), v))
}
