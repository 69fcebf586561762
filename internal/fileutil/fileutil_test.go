package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")

	got, err := WriteOutput(target, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, target, got)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, ReadableByAll, info.Mode().Perm())
}

func TestWriteOutputOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o600))

	_, err := WriteOutput(target, []byte("new"))
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteOutputRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	realFile := filepath.Join(dir, "realFile.json")
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.WriteFile(realFile, []byte("keep"), 0o600))
	require.NoError(t, os.Symlink(realFile, link))

	_, err := WriteOutput(link, []byte("nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")

	data, err := os.ReadFile(realFile)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestWriteOutputMissingDirectory(t *testing.T) {
	_, err := WriteOutput(filepath.Join(t.TempDir(), "missing", "out.json"), []byte("x"))
	assert.Error(t, err)
}
