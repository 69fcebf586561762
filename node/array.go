package node

// Array is a mutable JSON array.
type Array struct {
	items []any
}

// NewArray returns an Array holding items.
func NewArray(items ...any) *Array {
	return &Array{items: append([]any(nil), items...)}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.items)
}

// Get returns the element at i and whether i is in range.
func (a *Array) Get(i int) (any, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Set stores v at index i, growing the array with nulls as needed.
// Negative indexes are ignored.
func (a *Array) Set(i int, v any) {
	if i < 0 {
		return
	}
	a.Grow(i + 1)
	a.items[i] = v
}

// Grow pads the array with nulls until it holds at least n elements and
// returns the length it had before.
func (a *Array) Grow(n int) int {
	before := len(a.items)
	for len(a.items) < n {
		a.items = append(a.items, nil)
	}
	return before
}

// Append adds values to the end of the array.
func (a *Array) Append(values ...any) {
	a.items = append(a.items, values...)
}

// RemoveAt removes and returns the element at i, shifting later elements
// down.
func (a *Array) RemoveAt(i int) (any, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	v := a.items[i]
	copy(a.items[i:], a.items[i+1:])
	a.items[len(a.items)-1] = nil
	a.items = a.items[:len(a.items)-1]
	return v, true
}

// Retain keeps only the elements for which keep returns true.
func (a *Array) Retain(keep func(i int, v any) bool) {
	out := a.items[:0]
	for i, v := range a.items {
		if keep(i, v) {
			out = append(out, v)
		}
	}
	for i := len(out); i < len(a.items); i++ {
		a.items[i] = nil
	}
	a.items = out
}

// Items returns a copy of the elements.
func (a *Array) Items() []any {
	return append([]any(nil), a.items...)
}
