package function

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// parseNumber reads an integer or a finite float from text.
func parseNumber(s string) (any, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return f, true
}

// numeric returns v as a number, parsing strings.
func numeric(v any) (any, bool) {
	switch t := v.(type) {
	case int64, float64:
		return t, true
	case string:
		return parseNumber(t)
	}
	return nil, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// numberCompare returns min (sign -1) or max (sign 1). Integers and
// floats are tracked apart; the float wins only when it is strictly
// better than the best integer.
func numberCompare(sign int) listApply {
	better := func(a, b float64) bool {
		if sign < 0 {
			return a < b
		}
		return a > b
	}
	return func(items []any) (any, bool) {
		var (
			bestInt   int64
			haveInt   bool
			bestFloat float64
			haveFloat bool
		)
		for _, item := range items {
			n, ok := numeric(item)
			if !ok {
				continue
			}
			switch t := n.(type) {
			case int64:
				if !haveInt || (sign < 0 && t < bestInt) || (sign > 0 && t > bestInt) {
					bestInt, haveInt = t, true
				}
			case float64:
				if !haveFloat || better(t, bestFloat) {
					bestFloat, haveFloat = t, true
				}
			}
		}
		switch {
		case haveInt && haveFloat && better(bestFloat, float64(bestInt)):
			return bestFloat, true
		case haveInt:
			return bestInt, true
		case haveFloat:
			return bestFloat, true
		}
		return nil, false
	}
}

func abs(arg any) (any, bool) {
	n, ok := numeric(arg)
	if !ok {
		return nil, false
	}
	switch t := n.(type) {
	case int64:
		if t == math.MinInt64 {
			return nil, false
		}
		if t < 0 {
			return -t, true
		}
		return t, true
	case float64:
		return math.Abs(t), true
	}
	return nil, false
}

func avg(items []any) (any, bool) {
	sum, count := 0.0, 0
	for _, item := range items {
		if f, ok := asFloat(item); ok {
			sum += f
			count++
		}
	}
	if count == 0 {
		return nil, false
	}
	return sum / float64(count), true
}

// truncated returns v as an integer, truncating floats toward zero.
func truncated(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case float64:
		return int64(t), true
	case string:
		if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			return i, true
		}
		if f, ok := asFloat(t); ok {
			return int64(f), true
		}
	}
	return 0, false
}

func intSum(items []any) (any, bool) {
	var sum int32
	for _, item := range items {
		if n, ok := truncated(item); ok {
			sum += int32(n)
		}
	}
	return int64(sum), true
}

func longSum(items []any) (any, bool) {
	var sum int64
	for _, item := range items {
		if n, ok := truncated(item); ok {
			sum += n
		}
	}
	return sum, true
}

func doubleSum(items []any) (any, bool) {
	var sum float64
	for _, item := range items {
		if f, ok := asFloat(item); ok {
			sum += f
		}
	}
	return sum, true
}

func intPair(items []any) (int64, int64, bool) {
	if len(items) != 2 {
		return 0, 0, false
	}
	a, aok := items[0].(int64)
	b, bok := items[1].(int64)
	return a, b, aok && bok
}

func intSubtract(items []any) (any, bool) {
	a, b, ok := intPair(items)
	if !ok {
		return nil, false
	}
	return int64(int32(a) - int32(b)), true
}

func longSubtract(items []any) (any, bool) {
	a, b, ok := intPair(items)
	if !ok {
		return nil, false
	}
	return a - b, true
}

func doubleSubtract(items []any) (any, bool) {
	if len(items) != 2 {
		return nil, false
	}
	a, aok := items[0].(float64)
	b, bok := items[1].(float64)
	if !aok || !bok {
		return nil, false
	}
	return a - b, true
}

// dividePair divides two numbers. Strings are not accepted.
func dividePair(items []any) (float64, bool) {
	if len(items) != 2 {
		return 0, false
	}
	for _, item := range items {
		switch item.(type) {
		case int64, float64:
		default:
			return 0, false
		}
	}
	num, _ := asFloat(items[0])
	den, _ := asFloat(items[1])
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

func divide(items []any) (any, bool) {
	q, ok := dividePair(items)
	if !ok {
		return nil, false
	}
	return q, true
}

// divideAndRound divides and rounds to digits decimal places, rounding
// halves away from zero.
func divideAndRound(digits int, items []any) (any, bool) {
	if digits < 0 {
		return nil, false
	}
	q, ok := dividePair(items)
	if !ok {
		return nil, false
	}
	rounded, _ := decimal.NewFromFloat(q).Round(int32(digits)).Float64()
	return rounded, true
}
