package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChain = `[
  {"operation": "shift", "spec": {"rating": {"primary": {"value": "Rating"}, "*": {"value": "SecondaryRatings.&1.Value"}}}},
  {"operation": "modify-default-beta", "spec": {"Source": "catalog", "Region": "^site.region"}}
]`

const testInput = `{"rating": {"primary": {"value": 3}, "quality": {"value": 4}}}`

func TestSetupTransformFlags(t *testing.T) {
	fs, flags := SetupTransformFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Chain)
		assert.Empty(t, flags.Format)
		assert.False(t, flags.Compact)
		assert.False(t, flags.Quiet)
		assert.Zero(t, flags.StepTimeout)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-c", "chain.json", "--context", "ctx.json", "-o", "out.json", "--format", "yaml",
			"--compact", "--query", "$.a", "-q", "--verbose", "--step-timeout", "2s", "in.json"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "chain.json", flags.Chain)
		assert.Equal(t, "ctx.json", flags.Context)
		assert.Equal(t, "out.json", flags.Output)
		assert.Equal(t, "yaml", flags.Format)
		assert.True(t, flags.Compact)
		assert.Equal(t, "$.a", flags.Query)
		assert.True(t, flags.Quiet)
		assert.True(t, flags.Verbose)
		assert.Equal(t, 2*time.Second, flags.StepTimeout)
		assert.Equal(t, "in.json", fs.Arg(0))
	})
}

func TestHandleTransform_Chain(t *testing.T) {
	chainPath := writeTemp(t, "chain.json", testChain)
	inputPath := writeTemp(t, "in.json", testInput)
	ctxPath := writeTemp(t, "ctx.json", `{"site":{"region":"eu"}}`)

	out := captureStdout(t, func() {
		require.NoError(t, HandleTransform([]string{"-q", "--compact", "--chain", chainPath, "--context", ctxPath, inputPath}))
	})
	assert.JSONEq(t, `{"Rating":3,"SecondaryRatings":{"quality":{"Value":4}},"Source":"catalog","Region":"eu"}`, out)
}

func TestHandleTransform_SingleSpec(t *testing.T) {
	specPath := writeTemp(t, "spec.json", `{"tags":"MANY"}`)
	inputPath := writeTemp(t, "in.json", `{"tags":"new"}`)

	out := captureStdout(t, func() {
		require.NoError(t, HandleTransform([]string{"-q", "--compact", "--spec", specPath, "--op", "cardinality", inputPath}))
	})
	assert.Equal(t, "{\"tags\":[\"new\"]}\n", out)
}

func TestHandleTransform_YAMLInputKeepsFormat(t *testing.T) {
	specPath := writeTemp(t, "spec.yaml", "tags: ONE\n")
	inputPath := writeTemp(t, "in.yaml", "tags:\n  - a\n  - b\n")

	out := captureStdout(t, func() {
		require.NoError(t, HandleTransform([]string{"-q", "--spec", specPath, "--op", "cardinality", inputPath}))
	})
	assert.Equal(t, "tags: a\n", out)
}

func TestHandleTransform_Stdin(t *testing.T) {
	chainPath := writeTemp(t, "chain.json", testChain)
	withStdin(t, testInput)

	out := captureStdout(t, func() {
		require.NoError(t, HandleTransform([]string{"-q", "--chain", chainPath, "--query", "$.Rating", "-"}))
	})
	assert.Equal(t, "3\n", out)
}

func TestHandleTransform_OutputFile(t *testing.T) {
	chainPath := writeTemp(t, "chain.json", testChain)
	inputPath := writeTemp(t, "in.json", testInput)
	outPath := filepath.Join(t.TempDir(), "out.yaml")

	out := captureStdout(t, func() {
		require.NoError(t, HandleTransform([]string{"-q", "--format", "yaml", "--chain", chainPath, "-o", outPath, inputPath}))
	})
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rating: 3")
	assert.Contains(t, string(data), "Source: catalog")
}

func TestHandleTransform_Help(t *testing.T) {
	assert.NoError(t, HandleTransform([]string{"--help"}))
}

func TestHandleTransform_Errors(t *testing.T) {
	chainPath := writeTemp(t, "chain.json", testChain)
	specPath := writeTemp(t, "spec.json", `{"a":"b"}`)
	inputPath := writeTemp(t, "in.json", testInput)
	badChain := writeTemp(t, "bad.json", `[{"operation":"sort","spec":{}}]`)
	link := filepath.Join(t.TempDir(), "link.json")
	require.NoError(t, os.Symlink(writeTemp(t, "target.json", "{}"), link))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no input", []string{"--chain", chainPath}, "exactly one input"},
		{"no chain", []string{inputPath}, "one of --chain or --spec"},
		{"chain and spec", []string{"--chain", chainPath, "--spec", specPath, "--op", "shift", inputPath}, "not both"},
		{"spec without op", []string{"--spec", specPath, inputPath}, "--spec requires --op"},
		{"op without spec", []string{"--chain", chainPath, "--op", "shift", inputPath}, "--op applies only to --spec"},
		{"unknown op", []string{"--spec", specPath, "--op", "sort", inputPath}, "unknown operation"},
		{"bad format", []string{"--format", "xml", "--chain", chainPath, inputPath}, "invalid format"},
		{"bad query", []string{"--query", "Rating", "--chain", chainPath, inputPath}, "jsonpath"},
		{"invalid chain", []string{"--chain", badChain, inputPath}, "unknown operation"},
		{"missing input", []string{"--chain", chainPath, filepath.Join(t.TempDir(), "none.json")}, "transforming"},
		{"overwrite input", []string{"--chain", chainPath, "-o", inputPath, inputPath}, "would overwrite input file"},
		{"symlink output", []string{"-q", "--chain", chainPath, "-o", link, inputPath}, "symlink"},
		{"stdin chain", []string{"--chain", "-", inputPath}, "must be read from a file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			captureStdout(t, func() {
				err = HandleTransform(tt.args)
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
