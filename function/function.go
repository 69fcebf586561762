package function

import (
	"fmt"
	"slices"
	"sync"

	"github.com/erraggy/jolt/node"
)

// Function computes a value from resolved arguments. The boolean result is
// false when the function produces no value.
type Function interface {
	Apply(args ...any) (any, bool)
}

// Func adapts an ordinary function to the Function interface.
type Func func(args ...any) (any, bool)

// Apply calls f.
func (f Func) Apply(args ...any) (any, bool) { return f(args...) }

// Registry maps function names to implementations. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Function)}
}

// Default returns a new registry holding the built-in functions.
func Default() *Registry {
	r := NewRegistry()
	for name, f := range builtins() {
		r.funcs[name] = f
	}
	return r
}

// Register adds or replaces a function.
func (r *Registry) Register(name string, f Function) error {
	if name == "" {
		return fmt.Errorf("function: name must not be empty")
	}
	if f == nil {
		return fmt.Errorf("function: %q has a nil implementation", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = f
	return nil
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func builtins() map[string]Function {
	return map[string]Function{
		"noop":                   Func(noop),
		"isPresent":              Func(isPresent),
		"notNull":                Func(notNull),
		"isNull":                 Func(isNull),
		"toLower":                singleFunc(stringFunc(toLower)),
		"toUpper":                singleFunc(stringFunc(toUpper)),
		"trim":                   singleFunc(stringFunc(trim)),
		"concat":                 listFunc(concat),
		"join":                   argDriven(stringArg, join, nil),
		"split":                  argDrivenSingle(stringArg, split),
		"substring":              listFunc(substring),
		"leftPad":                argDriven(stringArg, leftPad, nil),
		"rightPad":               argDriven(stringArg, rightPad, nil),
		"min":                    listFunc(numberCompare(-1)),
		"max":                    listFunc(numberCompare(1)),
		"abs":                    singleFunc(abs),
		"avg":                    listFunc(avg),
		"intSum":                 listFunc(intSum),
		"longSum":                listFunc(longSum),
		"doubleSum":              listFunc(doubleSum),
		"intSubtract":            listFunc(intSubtract),
		"longSubtract":           listFunc(longSubtract),
		"doubleSubtract":         listFunc(doubleSubtract),
		"divide":                 listFunc(divide),
		"divideAndRound":         argDriven(intArg, divideAndRound, nil),
		"toInteger":              singleFunc(toInteger),
		"toLong":                 singleFunc(toLong),
		"toDouble":               singleFunc(toDouble),
		"toBoolean":              singleFunc(toBoolean),
		"toString":               singleFunc(toString),
		"size":                   Func(size),
		"squashNulls":            squashFunc(squashNulls),
		"recursivelySquashNulls": squashFunc(recursivelySquashNulls),
		"firstElement":           listFunc(firstElement),
		"lastElement":            listFunc(lastElement),
		"elementAt":              argDriven(intArg, elementAt, nil),
		"toList":                 baseFunc(toListSingle, toList),
		"sort":                   baseFunc(sortSingle, sortList),
	}
}

type (
	singleApply func(arg any) (any, bool)
	listApply   func(items []any) (any, bool)
)

// baseFunc dispatches on the shape of the arguments: one array argument
// or several arguments go to list, one other non-null argument goes to
// single.
func baseFunc(single singleApply, list listApply) Func {
	return func(args ...any) (any, bool) {
		switch len(args) {
		case 0:
			return nil, false
		case 1:
			switch a := args[0].(type) {
			case nil:
				return nil, false
			case *node.Array:
				if a.Len() == 0 {
					return nil, false
				}
				return list(a.Items())
			default:
				return single(a)
			}
		}
		return list(args)
	}
}

// singleFunc applies f to a single argument, or to each element of a list
// keeping elements f can not handle.
func singleFunc(f singleApply) Func {
	return baseFunc(f, func(items []any) (any, bool) {
		out := node.NewArray()
		for _, item := range items {
			if item == nil {
				out.Append(nil)
				continue
			}
			if v, ok := f(item); ok {
				out.Append(v)
			} else {
				out.Append(item)
			}
		}
		return out, true
	})
}

func listFunc(f listApply) Func {
	return baseFunc(func(any) (any, bool) { return nil, false }, f)
}

// argDriven reads a control argument from the front of the arguments. A
// single array argument is unpacked first. With exactly one remaining
// argument that is not an array, single is used; a nil single means no
// value.
func argDriven[T any](special func(args []any) (T, bool), list func(T, []any) (any, bool), single func(T, any) (any, bool)) Func {
	return func(args ...any) (any, bool) {
		if len(args) == 1 {
			if arr, ok := args[0].(*node.Array); ok {
				args = arr.Items()
			}
		}
		ctl, ok := special(args)
		if !ok {
			return nil, false
		}
		if len(args) == 2 {
			if arr, ok := args[1].(*node.Array); ok {
				return list(ctl, arr.Items())
			}
			if single == nil {
				return nil, false
			}
			return single(ctl, args[1])
		}
		return list(ctl, args[1:])
	}
}

// argDrivenSingle is argDriven whose list form maps single over the
// elements, keeping elements it can not handle.
func argDrivenSingle[T any](special func(args []any) (T, bool), single func(T, any) (any, bool)) Func {
	return argDriven(special, func(ctl T, items []any) (any, bool) {
		out := node.NewArray()
		for _, item := range items {
			if v, ok := single(ctl, item); ok {
				out.Append(v)
			} else {
				out.Append(item)
			}
		}
		return out, true
	}, single)
}

func stringArg(args []any) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	s, ok := args[0].(string)
	return s, ok
}

func intArg(args []any) (int, bool) {
	if len(args) < 2 {
		return 0, false
	}
	n, ok := args[0].(int64)
	return int(n), ok
}

func noop(...any) (any, bool) { return nil, false }

// isPresent returns its first argument, null or not.
func isPresent(args ...any) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}
	return args[0], true
}

func notNull(args ...any) (any, bool) {
	if len(args) == 0 || args[0] == nil {
		return nil, false
	}
	return args[0], true
}

// isNull produces null when the first argument is null and no value
// otherwise, so a following fallback is used for non-null input.
func isNull(args ...any) (any, bool) {
	if len(args) == 0 || args[0] != nil {
		return nil, false
	}
	return nil, true
}
