package modifier

import (
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/jolt/function"
	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

// evaluator produces the value a leaf writes. The walk frame of the leaf
// is already pushed when evaluate runs.
type evaluator interface {
	evaluate(input any, present bool, wp *pathelement.WalkedPath, ctx *node.Object) (any, bool)
}

// literal yields a fixed value.
type literal struct {
	value any
}

func (e literal) evaluate(any, bool, *pathelement.WalkedPath, *node.Object) (any, bool) {
	return e.value, true
}

// selfLookup yields a value found in the input relative to the walk.
type selfLookup struct {
	path *pathelement.Transpose
}

func (e selfLookup) evaluate(_ any, _ bool, wp *pathelement.WalkedPath, _ *node.Object) (any, bool) {
	return e.path.Lookup(wp)
}

// contextLookup yields a value found in the context document.
type contextLookup struct {
	path *pathelement.ReadPath
}

func (e contextLookup) evaluate(_ any, _ bool, wp *pathelement.WalkedPath, ctx *node.Object) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	return e.path.Read(ctx, wp)
}

// call applies a function to its bound arguments.
type call struct {
	fn   function.Function
	args []evaluator
}

// evaluate binds the arguments and applies the function. Without declared
// arguments the function receives the current value, if there is one. A
// single argument that resolves to nothing calls the function with no
// arguments; with several, unresolved arguments are passed as null.
// Functions that panic yield nothing.
func (e call) evaluate(input any, present bool, wp *pathelement.WalkedPath, ctx *node.Object) (out any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	switch len(e.args) {
	case 0:
		if present {
			return e.fn.Apply(input)
		}
		return e.fn.Apply()
	case 1:
		if v, found := e.args[0].evaluate(input, present, wp, ctx); found {
			return e.fn.Apply(v)
		}
		return e.fn.Apply()
	}
	values := make([]any, len(e.args))
	for i, arg := range e.args {
		values[i], _ = arg.evaluate(input, present, wp, ctx)
	}
	return e.fn.Apply(values...)
}

// evaluator compiles one right-hand side choice.
func (b *builder) evaluator(key string, value any) (evaluator, error) {
	s, ok := value.(string)
	if !ok {
		return literal{value: value}, nil
	}
	switch {
	case strings.HasPrefix(s, "="):
		return b.call(key, s[1:])
	case strings.HasPrefix(s, "@"), strings.HasPrefix(s, "^"):
		return lookupArg(s)
	}
	return literal{value: s}, nil
}

// call compiles "name" or "name(arg, ...)".
func (b *builder) call(key, text string) (evaluator, error) {
	name, argText, hasArgs := strings.Cut(text, "(")
	name = strings.TrimSpace(name)
	if hasArgs {
		if !strings.HasSuffix(argText, ")") {
			return nil, jolterrors.NewSpecError(key, "function call %q is missing a closing ')'", text)
		}
		argText = argText[:len(argText)-1]
	}
	if name == "" {
		return nil, jolterrors.NewSpecError(key, "function call %q has no function name", text)
	}
	fn, ok := b.functions.Lookup(name)
	if !ok {
		return nil, jolterrors.NewSpecError(key, "unknown function %q", name)
	}
	c := call{fn: fn}
	if strings.TrimSpace(argText) == "" {
		return c, nil
	}
	for _, raw := range splitArgs(argText) {
		arg, err := parseArg(raw)
		if err != nil {
			return nil, err
		}
		c.args = append(c.args, arg)
	}
	return c, nil
}

// splitArgs splits a function argument list on commas that are outside
// parentheses and single quotes, trimming each argument.
func splitArgs(s string) []string {
	var (
		args   []string
		depth  int
		quoted bool
		start  int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case '(':
			if !quoted {
				depth++
			}
		case ')':
			if !quoted && depth > 0 {
				depth--
			}
		case ',':
			if !quoted && depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}

// parseArg compiles one function argument.
func parseArg(s string) (evaluator, error) {
	if strings.HasPrefix(s, "@") || strings.HasPrefix(s, "^") {
		return lookupArg(s)
	}
	return literal{value: literalArg(s)}, nil
}

func lookupArg(s string) (evaluator, error) {
	if strings.HasPrefix(s, "^") {
		p, err := pathelement.ParseReadPath(s[1:])
		if err != nil {
			return nil, err
		}
		return contextLookup{path: p}, nil
	}
	t, err := pathelement.ParseTranspose(s)
	if err != nil {
		return nil, err
	}
	return selfLookup{path: t}, nil
}

// literalArg converts literal argument text to a value.
func literalArg(s string) any {
	switch {
	case s == "":
		return nil
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1]
	case strings.EqualFold(s, "true"):
		return true
	case strings.EqualFold(s, "false"):
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
