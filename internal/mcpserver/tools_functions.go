package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/function"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listFunctionsInput struct{}

type listFunctionsOutput struct {
	Functions  []string `json:"functions"`
	Operations []string `json:"operations"`
	Summary    string   `json:"summary"`
}

func handleListFunctions(_ context.Context, _ *mcp.CallToolRequest, _ listFunctionsInput) (*mcp.CallToolResult, listFunctionsOutput, error) {
	names := function.Default().Names()
	ops := chainr.Operations()
	return nil, listFunctionsOutput{
		Functions:  names,
		Operations: ops,
		Summary:    fmt.Sprintf("%d functions and %d operations available.", len(names), len(ops)),
	}, nil
}
