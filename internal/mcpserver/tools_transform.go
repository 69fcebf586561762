package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/internal/fileutil"
	"github.com/erraggy/jolt/internal/jsonpath"
	"github.com/erraggy/jolt/internal/pathutil"
	"github.com/erraggy/jolt/node"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type transformInput struct {
	Chain   docInput `json:"chain"              jsonschema:"The chain document: an array of {operation, spec} steps"`
	Input   docInput `json:"input"              jsonschema:"The JSON or YAML document to transform"`
	Context docInput `json:"context,omitempty"  jsonschema:"Optional context document that modify-* specs can read through ^ lookups"`
	Query   string   `json:"query,omitempty"    jsonschema:"JSONPath expression selecting part of the result (e.g. $.items[0])"`
	Format  string   `json:"format,omitempty"   jsonschema:"Output format: json or yaml. Defaults to JOLT_OUTPUT_FORMAT."`
	Compact bool     `json:"compact,omitempty"  jsonschema:"Emit JSON without indentation"`
	Output  string   `json:"output,omitempty"   jsonschema:"File path to write the result to. If omitted the result is returned inline."`
}

type transformStep struct {
	Index      int     `json:"index"`
	Operation  string  `json:"operation"`
	DurationMS float64 `json:"duration_ms"`
}

type transformOutput struct {
	Steps        []transformStep `json:"steps,omitempty"`
	SourceFormat string          `json:"source_format,omitempty"`
	Format       string          `json:"format"`
	WrittenTo    string          `json:"written_to,omitempty"`
	Document     string          `json:"document,omitempty"`
	Summary      string          `json:"summary"`
}

func handleTransform(ctx context.Context, _ *mcp.CallToolRequest, input transformInput) (*mcp.CallToolResult, transformOutput, error) {
	format := strings.ToLower(input.Format)
	if format == "" {
		format = cfg.OutputFormat
	}
	if format != formatJSON && format != formatYAML {
		return errResult(fmt.Errorf("invalid format %q; valid values: %s, %s", input.Format, formatJSON, formatYAML)), transformOutput{}, nil
	}

	c, err := input.Chain.resolveChain(ctx)
	if err != nil {
		return errResult(fmt.Errorf("chain: %w", err)), transformOutput{}, nil
	}
	doc, sourceFormat, err := input.Input.decode(ctx)
	if err != nil {
		return errResult(fmt.Errorf("input: %w", err)), transformOutput{}, nil
	}

	opts := []chainr.Option{
		chainr.WithChainParsed(c),
		chainr.WithInputParsed(doc),
		chainr.WithContext(ctx),
		chainr.WithStepTimeout(cfg.StepTimeout),
		chainr.WithLogger(chainr.NewZapAdapter(loggerFrom(ctx).Sugar())),
	}
	if input.Context.isSet() {
		data, err := input.Context.decodeObject(ctx)
		if err != nil {
			return errResult(fmt.Errorf("context: %w", err)), transformOutput{}, nil
		}
		opts = append(opts, chainr.WithContextParsed(data))
	}

	result, err := chainr.TransformWithOptions(opts...)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	out := result.Output
	if input.Query != "" {
		if out, err = jsonpath.Query(input.Query, out); err != nil {
			return errResult(err), transformOutput{}, nil
		}
	}

	data, err := marshalDocument(out, format, input.Compact)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	output := transformOutput{
		SourceFormat: string(sourceFormat),
		Format:       format,
	}
	output.Steps = makeSlice[transformStep](len(result.Steps))
	for _, s := range result.Steps {
		output.Steps = append(output.Steps, transformStep{
			Index:      s.Index,
			Operation:  s.Operation,
			DurationMS: float64(s.Duration.Microseconds()) / 1000,
		})
	}

	if input.Output != "" {
		if err := pathutil.CheckDistinct(input.Output, input.Chain.File, input.Input.File, input.Context.File); err != nil {
			return errResult(err), transformOutput{}, nil
		}
		written, err := fileutil.WriteOutput(input.Output, data)
		if err != nil {
			return errResult(err), transformOutput{}, nil
		}
		output.WrittenTo = written
	} else {
		output.Document = string(data)
	}
	output.Summary = buildTransformSummary(len(result.Steps), out, input.Query)

	return nil, output, nil
}

func buildTransformSummary(steps int, out any, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ran %d %s", steps, pluralize(steps, "step", "steps"))
	if query != "" {
		fmt.Fprintf(&b, "; query %s", query)
	}
	fmt.Fprintf(&b, "; result is %s", describeValue(out))
	b.WriteString(".")
	return b.String()
}

func describeValue(v any) string {
	switch t := v.(type) {
	case *node.Object:
		return fmt.Sprintf("an object with %d %s", t.Len(), pluralize(t.Len(), "key", "keys"))
	case *node.Array:
		return fmt.Sprintf("an array of %d %s", t.Len(), pluralize(t.Len(), "item", "items"))
	case nil:
		return "null"
	default:
		return "a scalar (" + node.KindOf(v).String() + ")"
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
