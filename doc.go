// Package treeclock implements Interval Tree Clocks: causality tracking
// for a dynamic set of replicas that fork and join at runtime,
// generalizing vector clocks to an unbounded, changing replica count.
//
// A Stamp pairs an id tree (which share of the replica-identity space the
// holder owns) with an event tree (nested counters recording causal
// history). Four operations manipulate stamps:
//
//   - Fork splits one stamp into two with disjoint ownership and shared
//     history.
//   - Event records a causal step, advancing counters only inside the
//     stamp's owned scope. This locality is what distinguishes interval
//     tree clocks from vector clocks: no global registry of replicas.
//   - Join merges two stamps, reunifying ownership and taking the
//     pointwise maximum of the histories.
//   - Compare orders two stamps as Less, Greater, Equal or Concurrent.
//
// ARCHITECTURE:
//
// The package is a pure, synchronous value-manipulation library. No
// goroutines, no I/O, no wall clocks, no randomness: every operation is
// deterministic and completes in time bounded by tree depth. Trees are
// immutable; operations allocate fresh results and never mutate inputs,
// so distinct Stamps never alias mutable state and failed operations
// leave their inputs untouched.
//
// Both trees are kept in normalized canonical form at every step. The
// binary codec (MarshalBinary / UnmarshalStamp and friends) emits only
// normalized forms, so structural equality after normalization implies
// byte equality on the wire. Decoders bound tree depth with an explicit
// budget (DefaultMaxDepth, override via WithMaxDepth) and reject
// oversized counters, guarding against corrupt or adversarial input.
//
// Errors carry a Kind (KindInvalidArgument, KindInvalidState,
// KindMalformedData, KindResourceExhausted); match with the Is* helpers
// or errors.As.
package treeclock
