// Package function provides the functions that modifier specs call with
// "=name(args)" expressions.
//
// A [Function] receives already resolved argument values and returns the
// value to write. Returning false means "no value": the modifier leaves
// the target untouched. Functions never report errors; arguments of the
// wrong kind simply produce no value.
//
// Most built-ins follow one of a few calling conventions:
//
//   - single-value functions (toUpper, abs, toInteger, ...) apply to one
//     argument, or element-wise to an array argument, keeping elements they
//     can not convert;
//   - list functions (concat, min, avg, firstElement, ...) take either one
//     array argument or several arguments that are treated as a list;
//   - argument-driven functions (join, split, elementAt, divideAndRound,
//     leftPad, ...) read a leading control argument and apply to the rest.
//
// [Default] returns a registry holding every built-in. Custom functions can
// be added to a registry with [Registry.Register]:
//
//	reg := function.Default()
//	_ = reg.Register("double", function.Func(func(args ...any) (any, bool) {
//	    if len(args) != 1 {
//	        return nil, false
//	    }
//	    n, ok := args[0].(int64)
//	    return n * 2, ok
//	}))
package function
