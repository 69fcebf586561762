package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateSpecInput struct {
	Chain docInput `json:"chain" jsonschema:"The chain document to check: an array of {operation, spec} steps"`
}

type validateSpecStep struct {
	Index     int    `json:"index"`
	Operation string `json:"operation"`
}

type validateSpecOutput struct {
	Valid     bool               `json:"valid"`
	StepCount int                `json:"step_count"`
	Steps     []validateSpecStep `json:"steps,omitempty"`
	Error     string             `json:"error,omitempty"`
	Path      string             `json:"path,omitempty"`
	Line      int                `json:"line,omitempty"`
	Column    int                `json:"column,omitempty"`
	Summary   string             `json:"summary"`
}

// handleValidateSpec reports an invalid chain in its output rather than as
// a tool error; only failures to read the chain are tool errors.
func handleValidateSpec(ctx context.Context, _ *mcp.CallToolRequest, input validateSpecInput) (*mcp.CallToolResult, validateSpecOutput, error) {
	data, err := input.Chain.read(ctx)
	if err != nil {
		return errResult(err), validateSpecOutput{}, nil
	}

	c, err := chainr.Parse(data)
	if err != nil {
		output := validateSpecOutput{Error: sanitizeError(err)}
		var se *jolterrors.SpecError
		var pe *jolterrors.ParseError
		switch {
		case errors.As(err, &se):
			output.Path = se.Path
		case errors.As(err, &pe):
			output.Line = pe.Line
			output.Column = pe.Column
		}
		output.Summary = "Chain is invalid: " + output.Error
		return nil, output, nil
	}

	steps := c.Steps()
	output := validateSpecOutput{
		Valid:     true,
		StepCount: len(steps),
		Steps:     makeSlice[validateSpecStep](len(steps)),
	}
	for i, s := range steps {
		output.Steps = append(output.Steps, validateSpecStep{Index: i, Operation: s.Operation})
	}
	output.Summary = fmt.Sprintf("Chain is valid with %d %s.", len(steps), pluralize(len(steps), "step", "steps"))
	return nil, output, nil
}
