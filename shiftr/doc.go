// Package shiftr implements the shift transform, which copies values from
// an input document to new locations in an output document.
//
// A shift spec mirrors the shape of the input. Each key of the spec is
// matched against the keys of the input at the same level, and each leaf
// value names where the matched input value is written:
//
//	spec:   {"rating": {"primary": {"value": "Rating", "max": "RatingRange"}}}
//	input:  {"rating": {"primary": {"value": 3, "max": 5}}}
//	output: {"Rating": 3, "RatingRange": 5}
//
// Spec keys may be wildcards ("rating-*"), references to keys matched
// higher up ("&1"), lookups into the input ("@(1,id)"), the matched key
// itself ("$"), or fixed values ("#text"). Output paths may use "&"
// references and "[]" to append. When several matches write to the same
// output path their values are collected into an array in write order.
//
// A built [Shiftr] is immutable and may be used by many goroutines at once.
// Transform does not modify its input.
//
// Example:
//
//	spec := node.MustDecode(`{"rating-*": {"value": "ratings.&1"}}`).(*node.Object)
//	s, err := shiftr.New(spec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := s.Transform(input)
package shiftr
