package node

import (
	"fmt"
	"math"
	"sort"
)

// FromNative converts plain Go values, such as those produced by
// encoding/json, into the value model. Map keys are sorted since Go maps
// carry no order. Whole float64 values stay floats.
func FromNative(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, int64, float64, string, *Array, *Object:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	case []any:
		arr := &Array{items: make([]any, len(t))}
		for i, item := range t {
			c, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.items[i] = c
		}
		return arr, nil
	case []string:
		arr := &Array{items: make([]any, len(t))}
		for i, s := range t {
			arr.items[i] = s
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			c, err := FromNative(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.Set(k, c)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("node: unsupported type %T", v)
}

// MustFromNative is FromNative that panics on error. It is meant for
// literals in tests and examples.
func MustFromNative(v any) any {
	out, err := FromNative(v)
	if err != nil {
		panic(err)
	}
	return out
}

// ToNative converts a value into plain Go maps and slices. Key order is
// lost.
func ToNative(v any) any {
	switch t := v.(type) {
	case *Array:
		out := make([]any, len(t.items))
		for i, item := range t.items {
			out[i] = ToNative(item)
		}
		return out
	case *Object:
		out := make(map[string]any, t.Len())
		for p := t.m.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = ToNative(p.Value)
		}
		return out
	default:
		return v
	}
}

// MustDecode parses JSON and panics on error. It is meant for literals in
// tests and examples.
func MustDecode(s string) any {
	v, err := Decode([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}
