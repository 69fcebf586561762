package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/jolt/node"
)

// Filter is a predicate over a candidate value in a [?...] selector.
type Filter interface {
	Match(v any) bool
	String() string
}

// Comparison compares the value at Field (relative to the candidate) with
// a literal. A missing field never matches except under "!=".
type Comparison struct {
	Field    []string
	Operator string
	Value    any
}

// ExistsFilter matches candidates that have a value at Field.
type ExistsFilter struct {
	Field []string
}

// AndFilter matches when both sides match.
type AndFilter struct {
	Left, Right Filter
}

// OrFilter matches when either side matches.
type OrFilter struct {
	Left, Right Filter
}

// Match implements Filter.
func (c Comparison) Match(v any) bool {
	field, ok := lookupField(v, c.Field)
	if !ok {
		return c.Operator == "!="
	}
	return compare(field, c.Operator, c.Value)
}

// String implements Filter.
func (c Comparison) String() string {
	value := node.String(c.Value)
	if s, ok := c.Value.(string); ok {
		value = strconv.Quote(s)
	}
	return fmt.Sprintf("@.%s %s %s", strings.Join(c.Field, "."), c.Operator, value)
}

// Match implements Filter.
func (e ExistsFilter) Match(v any) bool {
	_, ok := lookupField(v, e.Field)
	return ok
}

// String implements Filter.
func (e ExistsFilter) String() string { return "@." + strings.Join(e.Field, ".") }

// Match implements Filter.
func (a AndFilter) Match(v any) bool { return a.Left.Match(v) && a.Right.Match(v) }

// String implements Filter.
func (a AndFilter) String() string { return a.Left.String() + " && " + a.Right.String() }

// Match implements Filter.
func (o OrFilter) Match(v any) bool { return o.Left.Match(v) || o.Right.Match(v) }

// String implements Filter.
func (o OrFilter) String() string { return o.Left.String() + " || " + o.Right.String() }

func lookupField(v any, field []string) (any, bool) {
	cur := v
	for _, name := range field {
		obj, ok := cur.(*node.Object)
		if !ok {
			return nil, false
		}
		if cur, ok = obj.Get(name); !ok {
			return nil, false
		}
	}
	return cur, true
}

// compare applies op to left and right. Numbers compare by value whether
// they are integers or floats; strings compare lexically; other kinds only
// support equality.
func compare(left any, op string, right any) bool {
	switch op {
	case "==":
		return valuesEqual(left, right)
	case "!=":
		return !valuesEqual(left, right)
	}

	c, ok := order(left, right)
	if !ok {
		return false
	}
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}

func valuesEqual(left, right any) bool {
	if lf, ok := asFloat(left); ok {
		rf, ok := asFloat(right)
		return ok && lf == rf
	}
	return node.Equal(left, right)
}

func order(left, right any) (int, bool) {
	if lf, ok := asFloat(left); ok {
		rf, ok := asFloat(right)
		if !ok {
			return 0, false
		}
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		default:
			return 0, true
		}
	}
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		return strings.Compare(ls, rs), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
