package node

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant of a value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "boolean",
	KindInt:     "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

// String returns the JSON name of the kind, e.g. "object".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// KindOf reports the kind of v. Values outside the model report KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	case *Array:
		return KindArray
	case *Object:
		return KindObject
	default:
		return KindInvalid
	}
}

// IsScalar reports whether v is a non-null scalar.
func IsScalar(v any) bool {
	switch v.(type) {
	case bool, int64, float64, string:
		return true
	}
	return false
}

// IsNumber reports whether v is an int64 or float64.
func IsNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

// KeyString renders a non-null scalar the way it appears when used as a
// key during a walk. The second result is false for null and containers.
func KeyString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return FormatFloat(t), true
	}
	return "", false
}

// String renders any value as text: scalars as by KeyString, null as
// "null", and containers as compact JSON.
func String(v any) string {
	if s, ok := KeyString(v); ok {
		return s
	}
	if v == nil {
		return "null"
	}
	data, err := Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// FormatFloat renders f so that it always reads back as a float: whole
// numbers keep a trailing ".0". Non-finite values have no JSON form and
// are rendered as Go would print them.
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal reports deep equality. Integers and floats are never equal to each
// other, and object comparison ignores key order.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case int64:
		y, ok := b.(int64)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *Array:
		y, ok := b.(*Array)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, item := range x.items {
			if !Equal(item, y.items[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for p := x.m.Oldest(); p != nil; p = p.Next() {
			other, present := y.Get(p.Key)
			if !present || !Equal(p.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of v. Scalars are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case *Array:
		out := &Array{items: make([]any, len(t.items))}
		for i, item := range t.items {
			out.items[i] = Clone(item)
		}
		return out
	case *Object:
		out := NewObject()
		for p := t.m.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, Clone(p.Value))
		}
		return out
	default:
		return v
	}
}
