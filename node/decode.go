package node

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/erraggy/jolt/jolterrors"
)

// Decode parses a single JSON document. Object key order is preserved and
// numbers without a fraction or exponent decode to int64.
func Decode(data []byte) (any, error) {
	raw, dt, end, err := jsonparser.Get(data)
	if err != nil {
		return nil, &jolterrors.ParseError{Message: "invalid JSON", Cause: err}
	}
	if end >= 0 && end < len(data) {
		if rest := bytes.TrimSpace(data[end:]); len(rest) > 0 {
			return nil, &jolterrors.ParseError{Message: fmt.Sprintf("unexpected data after document at offset %d", end)}
		}
	}
	v, err := decodeValue(raw, dt)
	if err != nil {
		return nil, &jolterrors.ParseError{Message: "invalid JSON", Cause: err}
	}
	return v, nil
}

// DecodeAuto decodes data as JSON when it starts with '{' or '[' and as
// YAML otherwise.
func DecodeAuto(data []byte) (any, error) {
	if looksLikeJSON(data) {
		return Decode(data)
	}
	return DecodeYAML(data)
}

// LooksLikeJSON reports whether DecodeAuto would treat data as JSON.
func LooksLikeJSON(data []byte) bool {
	return looksLikeJSON(data)
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func decodeValue(raw []byte, dt jsonparser.ValueType) (any, error) {
	switch dt {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(raw)
	case jsonparser.String:
		return jsonparser.ParseString(raw)
	case jsonparser.Number:
		return decodeNumber(raw)
	case jsonparser.Object:
		return decodeObject(raw)
	case jsonparser.Array:
		return decodeArray(raw)
	default:
		return nil, fmt.Errorf("unexpected %s value %q", dt, truncate(raw))
	}
}

func decodeNumber(raw []byte) (any, error) {
	if !bytes.ContainsAny(raw, ".eE") {
		i, err := jsonparser.ParseInt(raw)
		if err == nil {
			return i, nil
		}
		if !errors.Is(err, jsonparser.OverflowIntegerError) {
			return nil, fmt.Errorf("invalid number %q: %w", raw, err)
		}
	}
	f, err := jsonparser.ParseFloat(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return f, nil
}

func decodeObject(raw []byte) (*Object, error) {
	obj := NewObject()
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		v, err := decodeValue(value, dt)
		if err != nil {
			return err
		}
		obj.Set(string(key), v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(raw []byte) (*Array, error) {
	arr := &Array{}
	var firstErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
		if firstErr != nil {
			return
		}
		v, err := decodeValue(value, dt)
		if err != nil {
			firstErr = err
			return
		}
		arr.items = append(arr.items, v)
	})
	if err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return arr, nil
}

func truncate(raw []byte) []byte {
	const limit = 32
	if len(raw) > limit {
		return raw[:limit]
	}
	return raw
}
