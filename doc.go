// Package jolt provides declarative JSON-to-JSON transformations driven by
// spec documents written in a small pattern language.
//
// A spec walks the input tree in parallel with its own tree of keys. Keys can
// be literals, wildcard patterns with capture groups, back-references into
// earlier matches, or lookups elsewhere in the input. Matched values are
// written to new locations, normalized to a single value or an array, given
// defaults, computed by functions, or filtered out.
//
// # Overview
//
// The library consists of these packages:
//
//   - shiftr: reshape a document by copying matched values to new paths
//   - cardinality: normalize values to ONE (scalar) or MANY (array)
//   - modifier: overwrite, default or define values, optionally via functions
//   - filtr: remove values matching regular-expression or exact-value filters
//   - chainr: run a sequence of the above, loaded from a JSON or YAML chain document
//   - function: the function registry used by modifier specs
//   - node: the ordered JSON value model all transforms operate on
//   - jolterrors: structured errors for errors.Is / errors.As handling
//
// # Quick Start
//
// Reshape a document:
//
//	import (
//		"github.com/erraggy/jolt/node"
//		"github.com/erraggy/jolt/shiftr"
//	)
//
//	spec, _ := node.Decode([]byte(`{"rating": {"primary": {"value": "Rating"}}}`))
//	s, err := shiftr.New(spec.(*node.Object))
//	if err != nil {
//		log.Fatal(err)
//	}
//	input, _ := node.Decode([]byte(`{"rating": {"primary": {"value": 3}}}`))
//	out := s.Transform(input) // {"Rating": 3}
//
// Run a chain:
//
//	import "github.com/erraggy/jolt/chainr"
//
//	result, err := chainr.TransformWithOptions(
//		chainr.WithChainFilePath("chain.json"),
//		chainr.WithInputFilePath("input.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := node.MarshalIndent(result.Output, "", "  ")
//
// # Error Handling
//
// Problems in a spec are reported once, when the transform is built, as a
// *jolterrors.SpecError. Once built, a transform never fails: parts of the
// input that do not fit the shape a spec expects are skipped, and functions
// that cannot handle their arguments simply produce no value.
//
// # Concurrency
//
// Built transforms are immutable and safe for concurrent use. Each call to
// Transform owns its own walk state and output tree. Inputs are mutated by
// the cardinality, modifier and filtr transforms, so callers must not share
// one input tree across concurrent calls.
//
// # Command-Line Tool
//
// The jolt command exposes the same functionality:
//
//	jolt transform --chain chain.json input.json
//	jolt transform --spec shift.json --op shift -o out.json input.json
//	jolt validate chain.json
//	jolt functions
//	jolt mcp
package jolt
