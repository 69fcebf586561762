// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes jolt transforms as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/erraggy/jolt"
	"github.com/erraggy/jolt/node"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

const serverInstructions = `jolt MCP server: runs JSON-to-JSON transform chains (shift, cardinality, modify-overwrite-beta, modify-default-beta, modify-define-beta, filter) against JSON or YAML documents.

A chain is an array of {"operation": NAME, "spec": {...}} steps. Use validate_spec to check a chain before running it, list_functions to see the functions available to modify-* specs, and transform to run a chain. Documents may be passed inline (content), by file path (file), or by URL (url).

Configuration: defaults are set through JOLT_* environment variables in your MCP client config.
- JOLT_MAX_INPUT_SIZE (default: 10485760) maximum bytes read for any document
- JOLT_OUTPUT_FORMAT (default: json) default format of transform output (json or yaml)
- JOLT_STEP_TIMEOUT (default: 0, disabled) per-step time limit for transforms
- JOLT_LOG_LEVEL (default: info) level of tool-call logs written to stderr
- JOLT_CACHE_ENABLED (default: true) cache built chains between calls
- JOLT_ALLOW_PRIVATE_IPS (default: false) allow url inputs that resolve to private addresses`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("mcpserver: failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var sweeperDone <-chan struct{}
	if cfg.CacheEnabled {
		sweeperDone = chainCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "jolt", Version: jolt.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, logger)
	logger.Info("mcp server starting", zap.String("version", jolt.Version()))
	err = server.Run(ctx, &mcp.StdioTransport{})

	cancel()
	if sweeperDone != nil {
		<-sweeperDone
	}
	return err
}

// newLogger builds a production zap logger at level. Output goes to stderr
// because stdout carries the protocol.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func registerAllTools(server *mcp.Server, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "transform",
		Description: "Run a transform chain against a JSON or YAML document. Provide the chain and the input as file, url, or inline content. An optional context document is readable from modify-* specs through ^ lookups. Use query (JSONPath, e.g. $.items[0]) to return only part of the result, and output to write the result to a file instead of returning it inline. Output format defaults to JOLT_OUTPUT_FORMAT.",
	}, logged(logger, "transform", handleTransform))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_spec",
		Description: "Parse and build a transform chain without running it. Reports the operation of each step, or the error with the location of the offending spec key (for example chain[1].spec.rating.&1).",
	}, logged(logger, "validate_spec", handleValidateSpec))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_functions",
		Description: "List the functions that modify-overwrite-beta, modify-default-beta, and modify-define-beta specs can call with =name(args) values, plus the supported chain operations.",
	}, logged(logger, "list_functions", handleListFunctions))
}

// logged wraps a tool handler with a zap log line per call. Each call gets
// an ID so chain step logs can be matched to the call that ran them.
func logged[In, Out any](logger *zap.Logger, tool string, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		callFields := []zap.Field{zap.String("tool", tool), zap.String("call_id", uuid.NewString())}
		start := time.Now()
		res, out, err := h(withLogger(ctx, logger.With(callFields...)), req, in)
		fields := append(callFields, zap.Duration("duration", time.Since(start)))
		switch {
		case err != nil:
			logger.Error("tool call failed", append(fields, zap.Error(err))...)
		case res != nil && res.IsError:
			logger.Warn("tool call returned an error result", append(fields, zap.String("error", resultText(res)))...)
		default:
			logger.Info("tool call", fields...)
		}
		return res, out, err
	}
}

type loggerKey struct{}

func withLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFrom returns the logger attached by logged, or a no-op logger.
func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

func resultText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// marshalDocument encodes v in format. Compact applies to JSON only.
func marshalDocument(v any, format string, compact bool) ([]byte, error) {
	switch format {
	case formatYAML:
		return node.MarshalYAML(v)
	case formatJSON, "":
		if compact {
			return node.Marshal(v)
		}
		return node.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("invalid format %q; valid values: %s, %s", format, formatJSON, formatYAML)
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
