// Package traversr reads and writes values at key paths inside a node tree.
//
// A path is a sequence of [Key]s. Map keys address object members and
// index keys address array slots. The special index [Append] adds a new
// element to the end of an array. SET creates missing intermediate
// containers, choosing an object or array from the kind of the next key;
// GET and REMOVE never change the shape of the tree.
package traversr

import (
	"strconv"

	"github.com/erraggy/jolt/node"
)

// Append is the index key text that appends to an array.
const Append = "[]"

// Key is one step of a path.
type Key struct {
	Name  string
	Index bool
}

// MapKey returns a key addressing an object member.
func MapKey(name string) Key { return Key{Name: name} }

// IndexKey returns a key addressing an array slot. Name is a decimal index
// or [Append].
func IndexKey(name string) Key { return Key{Name: name, Index: true} }

// String renders the key as it appears in a path.
func (k Key) String() string {
	if k.Index {
		if k.Name == Append {
			return Append
		}
		return "[" + k.Name + "]"
	}
	return k.Name
}

// Mode selects how SET treats a value already at the final key.
type Mode int

const (
	// Simple replaces whatever is at the final key.
	Simple Mode = iota
	// Shift sets the value when the slot is absent or null, appends
	// to an existing array, and otherwise replaces the existing value with
	// a two element array of the old and new values.
	Shift
)

// Get returns the value at keys and whether it is present. An empty path
// returns tree itself.
func Get(tree any, keys []Key) (any, bool) {
	cur := tree
	for _, k := range keys {
		next, ok := get(cur, k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set writes data at keys and reports whether it was written. The write is
// skipped when an existing value along the way has the wrong kind for the
// key that addresses into it.
func Set(tree any, keys []Key, data any, mode Mode) bool {
	if len(keys) == 0 {
		return false
	}
	cur := tree
	for i, k := range keys[:len(keys)-1] {
		next, ok := intermediate(cur, k, keys[i+1])
		if !ok {
			return false
		}
		cur = next
	}
	last := keys[len(keys)-1]
	if !fits(cur, last) {
		return false
	}
	if mode == Shift {
		return accumulate(cur, last, data)
	}
	return overwrite(cur, last, data)
}

// Remove deletes the value at keys and returns it. Array elements after a
// removed slot shift down.
func Remove(tree any, keys []Key) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	parent, ok := Get(tree, keys[:len(keys)-1])
	if !ok {
		return nil, false
	}
	last := keys[len(keys)-1]
	switch c := parent.(type) {
	case *node.Object:
		if last.Index {
			return nil, false
		}
		return c.Delete(last.Name)
	case *node.Array:
		idx, ok := index(last)
		if !ok {
			return nil, false
		}
		return c.RemoveAt(idx)
	}
	return nil, false
}

func fits(container any, k Key) bool {
	switch container.(type) {
	case *node.Object:
		return !k.Index
	case *node.Array:
		return k.Index
	}
	return false
}

func newContainer(k Key) any {
	if k.Index {
		return node.NewArray()
	}
	return node.NewObject()
}

func index(k Key) (int, bool) {
	if !k.Index || k.Name == Append {
		return 0, false
	}
	i, err := strconv.Atoi(k.Name)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func get(container any, k Key) (any, bool) {
	switch c := container.(type) {
	case *node.Object:
		if k.Index {
			return nil, false
		}
		return c.Get(k.Name)
	case *node.Array:
		i, ok := index(k)
		if !ok {
			return nil, false
		}
		return c.Get(i)
	}
	return nil, false
}

// intermediate returns the container under k, creating one shaped for next
// when the slot is absent or null.
func intermediate(cur any, k, next Key) (any, bool) {
	if !fits(cur, k) {
		return nil, false
	}
	if k.Index && k.Name == Append {
		child := newContainer(next)
		cur.(*node.Array).Append(child)
		return child, true
	}
	sub, ok := get(cur, k)
	if ok && sub != nil {
		return sub, true
	}
	child := newContainer(next)
	if !overwrite(cur, k, child) {
		return nil, false
	}
	return child, true
}

func overwrite(container any, k Key, data any) bool {
	switch c := container.(type) {
	case *node.Object:
		c.Set(k.Name, data)
		return true
	case *node.Array:
		if k.Name == Append {
			c.Append(data)
			return true
		}
		i, ok := index(k)
		if !ok {
			return false
		}
		c.Set(i, data)
		return true
	}
	return false
}

func accumulate(container any, k Key, data any) bool {
	if arr, ok := container.(*node.Array); ok && k.Name == Append {
		arr.Append(data)
		return true
	}
	existing, ok := get(container, k)
	switch {
	case !ok || existing == nil:
		return overwrite(container, k, data)
	case node.KindOf(existing) == node.KindArray:
		existing.(*node.Array).Append(data)
		return true
	default:
		return overwrite(container, k, node.NewArray(existing, data))
	}
}
