package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/internal/cliutil"
	"github.com/erraggy/jolt/internal/jsonpath"
)

// TransformFlags contains flags for the transform command
type TransformFlags struct {
	Chain       string
	Spec        string
	Op          string
	Context     string
	Output      string
	Format      string
	Compact     bool
	Query       string
	Quiet       bool
	Verbose     bool
	StepTimeout time.Duration
}

// SetupTransformFlags creates and configures a FlagSet for the transform command.
// Returns the FlagSet and a TransformFlags struct with bound flag variables.
func SetupTransformFlags() (*flag.FlagSet, *TransformFlags) {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	flags := &TransformFlags{}

	fs.StringVar(&flags.Chain, "chain", "", "chain document (JSON or YAML array of {operation, spec} steps)")
	fs.StringVar(&flags.Chain, "c", "", "chain document (shorthand)")
	fs.StringVar(&flags.Spec, "spec", "", "single spec document, run with --op")
	fs.StringVar(&flags.Op, "op", "", "operation for --spec: "+joinOps())
	fs.StringVar(&flags.Context, "context", "", "context document readable from modify-* specs through ^ lookups")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: same as input)")
	fs.BoolVar(&flags.Compact, "compact", false, "emit JSON without indentation")
	fs.StringVar(&flags.Query, "query", "", "JSONPath expression selecting part of the result (e.g. $.items[0])")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log each chain step to stderr")
	fs.DurationVar(&flags.StepTimeout, "step-timeout", 0, "fail when a single step runs longer than this (e.g. 500ms; 0 disables)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jolt transform [flags] <input|->\n\n")
		Writef(fs.Output(), "Run a transform chain, or a single spec, against a JSON or YAML document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  jolt transform --chain chain.json input.json\n")
		Writef(fs.Output(), "  jolt transform --spec shift.json --op shift input.yaml\n")
		Writef(fs.Output(), "  cat input.json | jolt transform -q --chain chain.yaml -\n")
		Writef(fs.Output(), "  jolt transform --chain chain.json --context site.json -o out.json input.json\n")
		Writef(fs.Output(), "  jolt transform --chain chain.json --query '$.items[0]' input.json\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the input path to read from stdin\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Transform succeeded\n")
		Writef(fs.Output(), "  1    Invalid arguments, invalid chain, or transform failure\n")
	}

	return fs, flags
}

func joinOps() string {
	return strings.Join(chainr.Operations(), ", ")
}

// HandleTransform executes the transform command
func HandleTransform(args []string) error {
	fs, flags := SetupTransformFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("transform command requires exactly one input file path or '-' for stdin")
	}
	inputPath := fs.Arg(0)

	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format, FormatJSON, FormatYAML); err != nil {
			return err
		}
	}
	if flags.Query != "" {
		if _, err := jsonpath.Parse(flags.Query); err != nil {
			return err
		}
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, inputPath, flags.Chain, flags.Spec, flags.Context); err != nil {
			return err
		}
	}

	chainOpt, err := chainOption(flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []chainr.Option{
		chainOpt,
		chainr.WithContext(ctx),
		chainr.WithLogger(newCLILogger(flags.Verbose)),
		chainr.WithStepTimeout(flags.StepTimeout),
	}
	if inputPath == StdinFilePath {
		data, err := readSource(inputPath)
		if err != nil {
			return err
		}
		doc, format, err := chainr.DecodeInput(FormatInputPath(inputPath), data)
		if err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
		opts = append(opts, chainr.WithInputParsed(doc))
		if flags.Format == "" {
			flags.Format = outputFormatFor(format)
		}
	} else {
		opts = append(opts, chainr.WithInputFilePath(inputPath))
	}
	if flags.Context != "" {
		data, err := decodeObjectFile(flags.Context, "context")
		if err != nil {
			return err
		}
		opts = append(opts, chainr.WithContextParsed(data))
	}

	startTime := time.Now()
	result, err := chainr.TransformWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("transforming %s: %w", FormatInputPath(inputPath), err)
	}
	elapsed := time.Since(startTime)

	out := result.Output
	if flags.Query != "" {
		if out, err = jsonpath.Query(flags.Query, out); err != nil {
			return err
		}
	}

	format := flags.Format
	if format == "" {
		format = outputFormatFor(result.SourceFormat)
	}
	data, err := MarshalDocument(out, format, flags.Compact)
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	written, err := writeOutput(data, flags.Output)
	if err != nil {
		return err
	}

	status := cliutil.NewStatus(os.Stderr, flags.Quiet)
	status.Printf("Transformed %s with %d step(s) in %v\n", FormatInputPath(inputPath), len(result.Steps), elapsed.Round(time.Microsecond))
	if written != "" {
		status.Printf("Output written to: %s\n", written)
	}
	return nil
}

// chainOption resolves --chain or --spec/--op into a chain source.
func chainOption(flags *TransformFlags) (chainr.Option, error) {
	switch {
	case flags.Chain != "" && flags.Spec != "":
		return nil, fmt.Errorf("use either --chain or --spec, not both")
	case flags.Chain != "":
		if flags.Op != "" {
			return nil, fmt.Errorf("--op applies only to --spec")
		}
		if flags.Chain == StdinFilePath {
			return nil, fmt.Errorf("the chain must be read from a file")
		}
		return chainr.WithChainFilePath(flags.Chain), nil
	case flags.Spec != "":
		if flags.Op == "" {
			return nil, fmt.Errorf("--spec requires --op (one of: %s)", joinOps())
		}
		if flags.Spec == StdinFilePath {
			return nil, fmt.Errorf("the spec must be read from a file")
		}
		spec, err := decodeObjectFile(flags.Spec, "spec")
		if err != nil {
			return nil, err
		}
		c, err := chainr.New(chainr.Step{Operation: flags.Op, Spec: spec})
		if err != nil {
			return nil, err
		}
		return chainr.WithChainParsed(c), nil
	default:
		return nil, fmt.Errorf("one of --chain or --spec is required")
	}
}

func outputFormatFor(source chainr.SourceFormat) string {
	if source == chainr.SourceFormatYAML {
		return FormatYAML
	}
	return FormatJSON
}
