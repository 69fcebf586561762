package function

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/jolt/node"
)

func toInteger(arg any) (any, bool) {
	switch t := arg.(type) {
	case int64:
		return int64(int32(t)), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, false
		}
		return int64(int32(t)), true
	case string:
		i, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return nil, false
		}
		return i, true
	}
	return nil, false
}

func toLong(arg any) (any, bool) {
	switch t := arg.(type) {
	case int64:
		return t, true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, false
		}
		return int64(t), true
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, false
		}
		return i, true
	}
	return nil, false
}

func toDouble(arg any) (any, bool) {
	f, ok := asFloat(arg)
	if !ok {
		return nil, false
	}
	return f, true
}

func toBoolean(arg any) (any, bool) {
	switch t := arg.(type) {
	case bool:
		return t, true
	case string:
		switch {
		case strings.EqualFold(t, "true"):
			return true, true
		case strings.EqualFold(t, "false"):
			return false, true
		}
	}
	return nil, false
}

func toString(arg any) (any, bool) {
	return node.String(arg), true
}

// size counts the elements of an array or object or the characters of a
// string. Several arguments are counted themselves.
func size(args ...any) (any, bool) {
	switch len(args) {
	case 0:
		return nil, false
	case 1:
		switch t := args[0].(type) {
		case *node.Array:
			return int64(t.Len()), true
		case *node.Object:
			return int64(t.Len()), true
		case string:
			return int64(utf8.RuneCountInString(t)), true
		}
		return nil, false
	}
	return int64(len(args)), true
}

// squashFunc applies f to one argument, or to several arguments collected
// into an array.
func squashFunc(f func(any) any) Func {
	return func(args ...any) (any, bool) {
		switch len(args) {
		case 0:
			return nil, false
		case 1:
			return f(args[0]), true
		}
		return f(node.NewArray(args...)), true
	}
}

// squashNulls drops null elements of an array or null members of an
// object. The result is a new container.
func squashNulls(v any) any {
	switch t := v.(type) {
	case *node.Array:
		out := node.NewArray()
		for _, item := range t.Items() {
			if item != nil {
				out.Append(item)
			}
		}
		return out
	case *node.Object:
		out := node.NewObject()
		for _, e := range t.Entries() {
			if e.Value != nil {
				out.Set(e.Key, e.Value)
			}
		}
		return out
	}
	return v
}

func recursivelySquashNulls(v any) any {
	switch t := squashNulls(v).(type) {
	case *node.Array:
		out := node.NewArray()
		for _, item := range t.Items() {
			out.Append(recursivelySquashNulls(item))
		}
		return out
	case *node.Object:
		for _, e := range t.Entries() {
			t.Set(e.Key, recursivelySquashNulls(e.Value))
		}
		return t
	default:
		return t
	}
}
