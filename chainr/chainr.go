package chainr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/jolt/cardinality"
	"github.com/erraggy/jolt/filtr"
	"github.com/erraggy/jolt/function"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/modifier"
	"github.com/erraggy/jolt/node"
	"github.com/erraggy/jolt/shiftr"
)

// Operation names accepted in a chain document.
const (
	OpShift           = "shift"
	OpCardinality     = "cardinality"
	OpModifyOverwrite = "modify-overwrite-beta"
	OpModifyDefault   = "modify-default-beta"
	OpModifyDefine    = "modify-define-beta"
	OpFilter          = "filter"
)

// Operations returns the supported operation names in documentation order.
func Operations() []string {
	return []string{OpShift, OpCardinality, OpModifyOverwrite, OpModifyDefault, OpModifyDefine, OpFilter}
}

// Transform is a built transform that reshapes a document.
type Transform interface {
	Transform(input any) any
}

// ContextualTransform is a transform that can also read from a context
// document supplied alongside the input.
type ContextualTransform interface {
	Transform
	TransformWithContext(input any, ctx *node.Object) any
}

var (
	_ Transform           = (*shiftr.Shiftr)(nil)
	_ Transform           = (*cardinality.Cardinality)(nil)
	_ Transform           = (*filtr.Filtr)(nil)
	_ ContextualTransform = (*modifier.Modifier)(nil)
	_ ContextualTransform = (*Chain)(nil)
)

// Step is one entry of a chain document.
type Step struct {
	// Operation is one of the Op* names.
	Operation string
	// Spec is the operation's spec document.
	Spec *node.Object
}

type builtStep struct {
	operation string
	transform Transform
}

// Chain runs a sequence of transforms, feeding the output of each step to
// the next. A built Chain is immutable and safe for concurrent use.
type Chain struct {
	steps []Step
	built []builtStep
}

// New builds a chain from steps using the default function registry.
func New(steps ...Step) (*Chain, error) {
	return build(steps, function.Default())
}

func build(steps []Step, funcs *function.Registry) (*Chain, error) {
	c := &Chain{steps: steps, built: make([]builtStep, 0, len(steps))}
	for i, st := range steps {
		t, err := buildStep(st, funcs)
		if err != nil {
			return nil, jolterrors.AtPath(err, fmt.Sprintf("chain[%d].spec", i))
		}
		c.built = append(c.built, builtStep{operation: st.Operation, transform: t})
	}
	return c, nil
}

func buildStep(st Step, funcs *function.Registry) (Transform, error) {
	if st.Spec == nil {
		return nil, &jolterrors.SpecError{Key: st.Operation, Message: "missing spec"}
	}
	switch st.Operation {
	case OpShift:
		return shiftr.New(st.Spec)
	case OpCardinality:
		return cardinality.New(st.Spec)
	case OpModifyOverwrite:
		return modifier.NewOverwrite(st.Spec, modifier.WithFunctions(funcs))
	case OpModifyDefault:
		return modifier.NewDefault(st.Spec, modifier.WithFunctions(funcs))
	case OpModifyDefine:
		return modifier.NewDefine(st.Spec, modifier.WithFunctions(funcs))
	case OpFilter:
		return filtr.New(st.Spec)
	default:
		return nil, &jolterrors.SpecError{Key: st.Operation, Message: "unknown operation"}
	}
}

// Steps returns the steps the chain was built from.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Len returns the number of steps.
func (c *Chain) Len() int { return len(c.built) }

// Transform runs every step in order and returns the final output.
// Steps other than shift modify their input in place.
func (c *Chain) Transform(input any) any {
	return c.TransformWithContext(input, nil)
}

// TransformWithContext is Transform with a context document that modifier
// steps can read through "^" lookups.
func (c *Chain) TransformWithContext(input any, ctx *node.Object) any {
	out := input
	for _, st := range c.built {
		out = apply(st.transform, out, ctx)
	}
	return out
}

func apply(t Transform, input any, ctx *node.Object) any {
	if ct, ok := t.(ContextualTransform); ok && ctx != nil {
		return ct.TransformWithContext(input, ctx)
	}
	return t.Transform(input)
}

// StepResult records the execution of one chain step.
type StepResult struct {
	// Index is the zero-based position of the step in the chain.
	Index int
	// Operation is the step's operation name.
	Operation string
	// Duration is the time the step took.
	Duration time.Duration
}

// Run executes the chain like TransformWithContext, but checks ctx for
// cancellation before each step, recovers from panics inside a step, and
// reports per-step timings to logger.
func (c *Chain) Run(ctx context.Context, input any, data *node.Object, logger Logger) (any, []StepResult, error) {
	return c.run(ctx, input, data, logger, 0)
}

// run is Run with an optional per-step time budget. Steps cannot be
// interrupted, so a step that overruns the budget fails once it returns.
func (c *Chain) run(ctx context.Context, input any, data *node.Object, logger Logger, stepTimeout time.Duration) (any, []StepResult, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	results := make([]StepResult, 0, len(c.built))
	out := input
	for i, st := range c.built {
		if err := ctx.Err(); err != nil {
			return nil, results, &jolterrors.TransformError{Step: i, Operation: st.operation, Message: "chain interrupted", Cause: err}
		}
		log := logger.With("index", i, "operation", st.operation)
		log.Debug("step started")
		start := time.Now()
		next, err := runStep(i, st, out, data)
		elapsed := time.Since(start)
		if err == nil && stepTimeout > 0 && elapsed > stepTimeout {
			err = &jolterrors.TransformError{
				Step:      i,
				Operation: st.operation,
				Message:   fmt.Sprintf("step took %s, exceeding the %s limit", elapsed, stepTimeout),
				Cause:     context.DeadlineExceeded,
			}
		}
		if err != nil {
			log.Error("step failed", "duration", elapsed, "error", err)
			return nil, results, err
		}
		log.Debug("step finished", "duration", elapsed)
		results = append(results, StepResult{Index: i, Operation: st.operation, Duration: elapsed})
		out = next
	}
	return out, results, nil
}

func runStep(i int, st builtStep, input any, data *node.Object) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &jolterrors.TransformError{Step: i, Operation: st.operation, Message: "step panicked", Cause: cause}
		}
	}()
	return apply(st.transform, input, data), nil
}

// ParseSteps decodes a chain document: a JSON or YAML array of objects with
// an "operation" string and a "spec" object.
func ParseSteps(data []byte) ([]Step, error) {
	doc, err := node.DecodeAuto(data)
	if err != nil {
		return nil, err
	}
	arr, ok := doc.(*node.Array)
	if !ok {
		return nil, &jolterrors.SpecError{Path: "chain", Message: fmt.Sprintf("expected an array of steps, got %s", node.KindOf(doc))}
	}
	steps := make([]Step, 0, arr.Len())
	for i, item := range arr.Items() {
		path := fmt.Sprintf("chain[%d]", i)
		obj, ok := item.(*node.Object)
		if !ok {
			return nil, &jolterrors.SpecError{Path: path, Message: fmt.Sprintf("expected an object, got %s", node.KindOf(item))}
		}
		opValue, _ := obj.Get("operation")
		op, ok := opValue.(string)
		if !ok || op == "" {
			return nil, &jolterrors.SpecError{Path: path + ".operation", Message: "operation must be a non-empty string"}
		}
		specValue, _ := obj.Get("spec")
		spec, ok := specValue.(*node.Object)
		if !ok {
			return nil, &jolterrors.SpecError{Path: path + ".spec", Key: op, Message: fmt.Sprintf("expected an object, got %s", node.KindOf(specValue))}
		}
		steps = append(steps, Step{Operation: op, Spec: spec})
	}
	return steps, nil
}

// Parse decodes and builds a chain document.
func Parse(data []byte) (*Chain, error) {
	steps, err := ParseSteps(data)
	if err != nil {
		return nil, err
	}
	return New(steps...)
}

// ParseFile reads, decodes, and builds the chain document at path.
func ParseFile(path string) (*Chain, error) {
	steps, err := parseStepsFile(path)
	if err != nil {
		return nil, err
	}
	return New(steps...)
}

func parseStepsFile(path string) ([]Step, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, &jolterrors.ParseError{Path: path, Message: "failed to read chain", Cause: err}
	}
	steps, err := ParseSteps(data)
	if err != nil {
		var pe *jolterrors.ParseError
		if errors.As(err, &pe) {
			cp := *pe
			cp.Path = path
			return nil, &cp
		}
		return nil, err
	}
	return steps, nil
}
