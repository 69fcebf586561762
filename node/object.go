package node

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Object is a mutable JSON object that remembers key insertion order.
// Setting an existing key keeps its position.
type Object struct {
	m *orderedmap.OrderedMap[string, any]
}

// Entry is one key/value pair of an Object.
type Entry struct {
	Key   string
	Value any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, any]()}
}

// ObjectOf builds an Object from alternating keys and values. It panics if
// a key is not a string or the arguments are unbalanced; it is meant for
// literals in code and tests.
func ObjectOf(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("node: ObjectOf needs an even number of arguments")
	}
	o := &Object{m: orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(kv) / 2))}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("node: ObjectOf key must be a string")
		}
		o.m.Set(key, kv[i+1])
	}
	return o
}

// Get returns the value for key and whether the key is present.
// A present key may hold nil (JSON null).
func (o *Object) Get(key string) (any, bool) {
	return o.m.Get(key)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

// Set stores v under key.
func (o *Object) Set(key string, v any) {
	o.m.Set(key, v)
}

// Delete removes key and returns the value it held.
func (o *Object) Delete(key string) (any, bool) {
	return o.m.Delete(key)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return o.m.Len()
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for p := o.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Entries returns a snapshot of the key/value pairs in order. Mutating the
// object while ranging over the snapshot is safe.
func (o *Object) Entries() []Entry {
	entries := make([]Entry, 0, o.m.Len())
	for p := o.m.Oldest(); p != nil; p = p.Next() {
		entries = append(entries, Entry{Key: p.Key, Value: p.Value})
	}
	return entries
}
