// Package node is the JSON value model every jolt transform operates on.
//
// A value is one of:
//
//   - nil (JSON null)
//   - bool
//   - int64 (JSON numbers written without a fraction or exponent)
//   - float64 (all other JSON numbers)
//   - string
//   - *Array (ordered, mutable)
//   - *Object (string keys in insertion order, mutable)
//
// Integers and floats stay distinct throughout: 1 and 1.0 decode to
// different kinds, compare unequal, and encode back to their original form.
//
// Decode reads JSON, DecodeYAML reads YAML, and DecodeAuto picks between the
// two. Marshal, MarshalIndent and MarshalYAML write a tree back out with
// object key order preserved.
package node
