package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/erraggy/jolt/function"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratingChain = `[
  {"operation": "shift", "spec": {"rating": {"primary": {"value": "Rating"}, "*": {"value": "SecondaryRatings.&1.Value"}}}},
  {"operation": "modify-default-beta", "spec": {"Source": "catalog", "Region": "^site.region"}}
]`

const ratingInput = `{"rating": {"primary": {"value": 3}, "quality": {"value": 4}}}`

func TestTransformTool_Inline(t *testing.T) {
	input := transformInput{
		Chain:   docInput{Content: ratingChain},
		Input:   docInput{Content: ratingInput},
		Context: docInput{Content: `{"site": {"region": "eu"}}`},
		Compact: true,
	}
	res, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, res)

	assert.JSONEq(t, `{"Rating":3,"SecondaryRatings":{"quality":{"Value":4}},"Source":"catalog","Region":"eu"}`, output.Document)
	assert.Equal(t, "json", output.Format)
	assert.Equal(t, "json", output.SourceFormat)
	require.Len(t, output.Steps, 2)
	assert.Equal(t, "shift", output.Steps[0].Operation)
	assert.Equal(t, "modify-default-beta", output.Steps[1].Operation)
	assert.Contains(t, output.Summary, "Ran 2 steps")
}

func TestTransformTool_WithoutContext(t *testing.T) {
	input := transformInput{
		Chain:   docInput{Content: ratingChain},
		Input:   docInput{Content: ratingInput},
		Compact: true,
	}
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Rating":3,"SecondaryRatings":{"quality":{"Value":4}},"Source":"catalog"}`, output.Document)
}

func TestTransformTool_QueryAndYAML(t *testing.T) {
	input := transformInput{
		Chain:  docInput{Content: ratingChain},
		Input:  docInput{Content: "rating:\n  primary:\n    value: 3\n  quality:\n    value: 4\n"},
		Query:  "$.SecondaryRatings.quality",
		Format: "YAML",
	}
	res, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, "yaml", output.SourceFormat)
	assert.Equal(t, "Value: 4\n", output.Document)
	assert.Contains(t, output.Summary, "query $.SecondaryRatings.quality")
}

func TestTransformTool_DefaultFormatFromConfig(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.OutputFormat = formatYAML })

	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, transformInput{
		Chain: docInput{Content: `[]`},
		Input: docInput{Content: `{"a":1}`},
	})
	require.NoError(t, err)
	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, "a: 1\n", output.Document)
}

func TestTransformTool_WritesOutput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, transformInput{
		Chain:   docInput{Content: ratingChain},
		Input:   docInput{Content: ratingInput},
		Compact: true,
		Output:  target,
	})
	require.NoError(t, err)

	assert.Equal(t, target, output.WrittenTo)
	assert.Empty(t, output.Document)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Rating":3,"SecondaryRatings":{"quality":{"Value":4}},"Source":"catalog"}`, string(data))
}

func TestTransformTool_RefusesOverwritingInput(t *testing.T) {
	inputPath := writeFile(t, "input.json", ratingInput)
	res, _, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, transformInput{
		Chain:  docInput{Content: ratingChain},
		Input:  docInput{File: inputPath},
		Output: inputPath,
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(res), "would overwrite input file")

	data, err := os.ReadFile(inputPath)
	require.NoError(t, err)
	assert.Equal(t, ratingInput, string(data))
}

func TestTransformTool_StepTimeout(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.StepTimeout = time.Nanosecond })

	// A nanosecond budget is exceeded by any real step.
	res, _, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, transformInput{
		Chain: docInput{Content: ratingChain},
		Input: docInput{Content: ratingInput},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "limit")
}

func TestTransformTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   transformInput
		wantErr string
	}{
		{
			name:    "bad format",
			input:   transformInput{Chain: docInput{Content: `[]`}, Input: docInput{Content: `{}`}, Format: "xml"},
			wantErr: "invalid format",
		},
		{
			name:    "missing chain",
			input:   transformInput{Input: docInput{Content: `{}`}},
			wantErr: "chain: exactly one",
		},
		{
			name:    "invalid chain",
			input:   transformInput{Chain: docInput{Content: `[{"operation":"cardinality","spec":{"a":"SOME"}}]`}, Input: docInput{Content: `{}`}},
			wantErr: "chain[0].spec",
		},
		{
			name:    "missing input",
			input:   transformInput{Chain: docInput{Content: `[]`}},
			wantErr: "input: exactly one",
		},
		{
			name:    "bad input",
			input:   transformInput{Chain: docInput{Content: `[]`}, Input: docInput{Content: `{"a":`}},
			wantErr: "input:",
		},
		{
			name:    "context not an object",
			input:   transformInput{Chain: docInput{Content: `[]`}, Input: docInput{Content: `{}`}, Context: docInput{Content: `[1]`}},
			wantErr: "context: expected an object",
		},
		{
			name:    "bad query",
			input:   transformInput{Chain: docInput{Content: `[]`}, Input: docInput{Content: `{}`}, Query: "items"},
			wantErr: "jsonpath",
		},
		{
			name:    "output is a directory",
			input:   transformInput{Chain: docInput{Content: `[]`}, Input: docInput{Content: `{}`}, Output: t.TempDir()},
			wantErr: "directory",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.wantErr)
		})
	}
}

func TestValidateSpecTool_Valid(t *testing.T) {
	res, output, err := handleValidateSpec(context.Background(), &mcp.CallToolRequest{}, validateSpecInput{
		Chain: docInput{Content: ratingChain},
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.True(t, output.Valid)
	assert.Equal(t, 2, output.StepCount)
	require.Len(t, output.Steps, 2)
	assert.Equal(t, "modify-default-beta", output.Steps[1].Operation)
	assert.Equal(t, "Chain is valid with 2 steps.", output.Summary)
}

func TestValidateSpecTool_Invalid(t *testing.T) {
	res, output, err := handleValidateSpec(context.Background(), &mcp.CallToolRequest{}, validateSpecInput{
		Chain: docInput{Content: `[{"operation":"shift","spec":{}},{"operation":"shift","spec":{"a":{"b":{"@":{"x":"y"}}}}}]`},
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Error)
	assert.Equal(t, "chain[1].spec.a.b.@", output.Path)
}

func TestValidateSpecTool_ParseError(t *testing.T) {
	_, output, err := handleValidateSpec(context.Background(), &mcp.CallToolRequest{}, validateSpecInput{
		Chain: docInput{Content: `[{"operation": "shift"`},
	})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Error)
}

func TestValidateSpecTool_MissingSource(t *testing.T) {
	res, _, err := handleValidateSpec(context.Background(), &mcp.CallToolRequest{}, validateSpecInput{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestListFunctionsTool(t *testing.T) {
	res, output, err := handleListFunctions(context.Background(), &mcp.CallToolRequest{}, listFunctionsInput{})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, function.Default().Names(), output.Functions)
	assert.Contains(t, output.Functions, "toUpper")
	assert.Contains(t, output.Operations, "modify-overwrite-beta")
	assert.Len(t, output.Operations, 6)
}
