// Package cardinality implements the cardinality transform, which
// normalizes values to a single element or a list.
//
// The spec mirrors the input. Leaf values are ONE or MANY:
//
//	spec:   {"photos": "MANY", "review": {"rating": "ONE"}}
//	input:  {"photos": "a.jpg", "review": {"rating": [5, 4]}}
//	output: {"photos": ["a.jpg"], "review": {"rating": 5}}
//
// MANY wraps a non-array value in a one element array and turns null into
// an empty array. ONE replaces an array by its first element, or by null
// when the array is empty. Values that already have the requested shape
// are left alone.
//
// An "@" entry in a nested object applies to the value that object
// matched, before the object's other entries are walked:
//
//	{"reviews": {"@": "MANY", "*": {"rating": "ONE"}}}
//
// Transform works in place: the returned document is the input, adjusted.
package cardinality
