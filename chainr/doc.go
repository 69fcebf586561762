// Package chainr runs a chain of transforms described by a chain document.
//
// A chain document is a JSON or YAML array of steps. Each step names an
// operation and carries that operation's spec:
//
//	[
//	  {"operation": "shift", "spec": {"rating": {"primary": {"value": "Rating"}}}},
//	  {"operation": "modify-default-beta", "spec": {"Rating": 0}},
//	  {"operation": "cardinality", "spec": {"tags": "MANY"}}
//	]
//
// Supported operations are shift, cardinality, modify-overwrite-beta,
// modify-default-beta, modify-define-beta, and filter. Each step receives the
// output of the previous step. Spec errors are reported with a path that
// names the failing step, such as "chain[1].spec.rating".
//
// # Quick Start
//
//	c, err := chainr.ParseFile("chain.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := c.Transform(input)
//
// For file inputs, logging, custom functions, and per-step timings use
// [TransformWithOptions]:
//
//	result, err := chainr.TransformWithOptions(
//	    chainr.WithChainFilePath("chain.json"),
//	    chainr.WithInputFilePath("input.json"),
//	    chainr.WithLogger(chainr.NewSlogAdapter(slog.Default())),
//	)
//	for _, s := range result.Steps {
//	    fmt.Println(s.Index, s.Operation, s.Duration)
//	}
//
// Chains built here never fail on data. The only runtime errors are
// cancellation through [WithContext] and a step that panics, which is
// recovered and reported as a *jolterrors.TransformError.
package chainr
