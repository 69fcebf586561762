package chainr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/jolt/function"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

// SourceFormat is the document format an input was decoded from.
type SourceFormat string

const (
	// SourceFormatJSON indicates the input was JSON.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates the input was YAML.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown indicates the input was supplied already parsed.
	SourceFormatUnknown SourceFormat = "unknown"
)

// Result is the outcome of TransformWithOptions.
type Result struct {
	// Output is the transformed document.
	Output any
	// SourceFormat is the format the input was read in. Callers writing the
	// output back out can use it to preserve the format.
	SourceFormat SourceFormat
	// Steps holds one entry per executed step.
	Steps []StepResult
}

// Option configures TransformWithOptions.
type Option func(*transformConfig) error

type transformConfig struct {
	chainFilePath *string
	chainParsed   *Chain
	inputFilePath *string
	inputParsed   any
	inputSet      bool
	data          *node.Object
	logger        Logger
	functions     *function.Registry
	ctx           context.Context
	stepTimeout   time.Duration
}

// WithChainFilePath reads the chain document from path.
func WithChainFilePath(path string) Option {
	return func(cfg *transformConfig) error {
		if path == "" {
			return &jolterrors.ConfigError{Option: "WithChainFilePath", Message: "path cannot be empty"}
		}
		cfg.chainFilePath = &path
		return nil
	}
}

// WithChainParsed uses an already built chain.
func WithChainParsed(c *Chain) Option {
	return func(cfg *transformConfig) error {
		if c == nil {
			return &jolterrors.ConfigError{Option: "WithChainParsed", Message: "chain cannot be nil"}
		}
		cfg.chainParsed = c
		return nil
	}
}

// WithInputFilePath reads the input document (JSON or YAML) from path.
func WithInputFilePath(path string) Option {
	return func(cfg *transformConfig) error {
		if path == "" {
			return &jolterrors.ConfigError{Option: "WithInputFilePath", Message: "path cannot be empty"}
		}
		cfg.inputFilePath = &path
		return nil
	}
}

// WithInputParsed uses an already parsed input document. The document is
// copied before the chain runs, so the caller's value is never modified.
// A nil input is allowed and means a JSON null.
func WithInputParsed(input any) Option {
	return func(cfg *transformConfig) error {
		cfg.inputParsed = input
		cfg.inputSet = true
		return nil
	}
}

// WithContextParsed supplies the context document read by "^" lookups.
func WithContextParsed(data *node.Object) Option {
	return func(cfg *transformConfig) error {
		cfg.data = data
		return nil
	}
}

// WithLogger sets the logger for step diagnostics. Defaults to NopLogger.
func WithLogger(l Logger) Option {
	return func(cfg *transformConfig) error {
		if l == nil {
			return &jolterrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithFunctions sets the function registry used by modifier steps. When
// combined with WithChainParsed the chain is rebuilt against the registry.
func WithFunctions(r *function.Registry) Option {
	return func(cfg *transformConfig) error {
		if r == nil {
			return &jolterrors.ConfigError{Option: "WithFunctions", Message: "registry cannot be nil"}
		}
		cfg.functions = r
		return nil
	}
}

// WithContext bounds the run: the chain stops before the next step once ctx
// is done.
func WithContext(ctx context.Context) Option {
	return func(cfg *transformConfig) error {
		if ctx == nil {
			return &jolterrors.ConfigError{Option: "WithContext", Message: "context cannot be nil"}
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithStepTimeout fails the run when a single step takes longer than d.
// Zero disables the check.
func WithStepTimeout(d time.Duration) Option {
	return func(cfg *transformConfig) error {
		if d < 0 {
			return &jolterrors.ConfigError{Option: "WithStepTimeout", Value: d, Message: "timeout cannot be negative"}
		}
		cfg.stepTimeout = d
		return nil
	}
}

func applyOptions(opts ...Option) (*transformConfig, error) {
	cfg := &transformConfig{
		logger: NopLogger{},
		ctx:    context.Background(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	chainSources := 0
	if cfg.chainFilePath != nil {
		chainSources++
	}
	if cfg.chainParsed != nil {
		chainSources++
	}
	if chainSources != 1 {
		return nil, &jolterrors.ConfigError{
			Option:  "chain",
			Message: "must specify exactly one chain source (use WithChainFilePath or WithChainParsed)",
		}
	}

	inputSources := 0
	if cfg.inputFilePath != nil {
		inputSources++
	}
	if cfg.inputSet {
		inputSources++
	}
	if inputSources != 1 {
		return nil, &jolterrors.ConfigError{
			Option:  "input",
			Message: "must specify exactly one input source (use WithInputFilePath or WithInputParsed)",
		}
	}

	return cfg, nil
}

// loadChain returns the chain named by the configuration, built against the
// configured function registry.
func loadChain(cfg *transformConfig) (*Chain, error) {
	if cfg.chainParsed != nil {
		if cfg.functions == nil {
			return cfg.chainParsed, nil
		}
		return build(cfg.chainParsed.steps, cfg.functions)
	}
	steps, err := parseStepsFile(*cfg.chainFilePath)
	if err != nil {
		return nil, err
	}
	funcs := cfg.functions
	if funcs == nil {
		funcs = function.Default()
	}
	return build(steps, funcs)
}

func loadInput(cfg *transformConfig) (any, SourceFormat, error) {
	if cfg.inputFilePath == nil {
		return node.Clone(cfg.inputParsed), SourceFormatUnknown, nil
	}
	path := *cfg.inputFilePath
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, "", &jolterrors.ParseError{Path: path, Message: "failed to read input", Cause: err}
	}
	return DecodeInput(path, data)
}

// DecodeInput decodes a JSON or YAML document and reports which format it
// was. path is only used in error messages.
func DecodeInput(path string, data []byte) (any, SourceFormat, error) {
	format := SourceFormatYAML
	if node.LooksLikeJSON(data) {
		format = SourceFormatJSON
	}
	v, err := node.DecodeAuto(data)
	if err != nil {
		var pe *jolterrors.ParseError
		if errors.As(err, &pe) {
			cp := *pe
			cp.Path = path
			return nil, "", &cp
		}
		return nil, "", err
	}
	return v, format, nil
}

// TransformWithOptions loads a chain and an input and runs the chain.
//
// Example:
//
//	result, err := chainr.TransformWithOptions(
//	    chainr.WithChainFilePath("chain.json"),
//	    chainr.WithInputFilePath("input.yaml"),
//	    chainr.WithLogger(chainr.NewSlogAdapter(nil)),
//	)
func TransformWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("chainr: invalid options: %w", err)
	}

	c, err := loadChain(cfg)
	if err != nil {
		return nil, err
	}
	input, format, err := loadInput(cfg)
	if err != nil {
		return nil, err
	}

	out, steps, err := c.run(cfg.ctx, input, cfg.data, cfg.logger, cfg.stepTimeout)
	if err != nil {
		return nil, err
	}
	return &Result{Output: out, SourceFormat: format, Steps: steps}, nil
}
