// Package filtr implements the filter transform, which removes values that
// match a set of filters.
//
// The spec mirrors the input. An "@" entry holds the filters for the value
// matched at that level; when any filter matches, the value is removed from
// its parent object or array:
//
//	spec:   {"items": {"*": {"@": {"status": "^deleted$"}}}}
//	input:  {"items": [{"status": "ok"}, {"status": "deleted"}]}
//	output: {"items": [{"status": "ok"}]}
//
// A string filter is a regular expression and only matches string values.
// Any other filter value matches values equal to it. Filters are keyed by
// field name for objects and by index for arrays; for scalar values every
// filter is tried.
//
// Regular expressions use .NET syntax and are unanchored.
//
// Transform works in place: the returned document is the input, pruned.
package filtr
