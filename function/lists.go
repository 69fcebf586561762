package function

import (
	"slices"

	"github.com/erraggy/jolt/node"
)

func firstElement(items []any) (any, bool) {
	if len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

func lastElement(items []any) (any, bool) {
	if len(items) == 0 {
		return nil, false
	}
	return items[len(items)-1], true
}

// elementAt returns the element at a leading index.
func elementAt(idx int, items []any) (any, bool) {
	if idx < 0 || idx >= len(items) {
		return nil, false
	}
	return items[idx], true
}

func toListSingle(arg any) (any, bool) { return node.NewArray(arg), true }
func toList(items []any) (any, bool)   { return node.NewArray(items...), true }

func sortSingle(arg any) (any, bool) { return arg, true }

// sortList orders elements by their text form.
func sortList(items []any) (any, bool) {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b any) int {
		sa, sb := node.String(a), node.String(b)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
	return node.NewArray(sorted...), true
}
