// Package harness provides conformance testing for the treeclock stamp
// algebra.
//
// The harness loads YAML scenarios describing a sequence of stamp
// operations over a set of named stamps, executes them, and renders a
// deterministic trace for golden snapshot comparison.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - op: seed
//	    as: s
//	  - op: event
//	    stamp: s
//	  - op: fork
//	    stamp: s
//	    left: a
//	    right: b
//	  - op: compare
//	    stamp: a
//	    with: b
//	    expect: concurrent
//	  - op: join
//	    stamp: a
//	    with: b
//	    as: m
//	  - op: serialize
//	    stamp: m
//	    expect: "0168"
//
// # Operations
//
// The following ops are supported:
//
//   - seed: create the seed stamp under the name in `as`
//   - event: record a causal step on `stamp` (stored under `as` if set)
//   - fork: split `stamp` into `left` and `right`
//   - join: merge `stamp` and `with` into `as`
//   - peek: store a non-owning snapshot of `stamp` under `as`
//   - compare: order `stamp` against `with`; `expect` optionally names
//     the required ordering (less, greater, equal, concurrent)
//   - serialize: hex-encode `stamp`'s wire bytes; `expect` optionally
//     pins the exact hex string
//
// # Deterministic Testing
//
// Every treeclock operation is pure and deterministic, so a scenario's
// trace is identical across runs and suitable for golden file comparison
// via RunWithGolden. Golden files live in testdata/golden and are
// regenerated with:
//
//	go test ./internal/harness -update
package harness
