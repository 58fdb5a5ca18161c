// Package layout computes 2-D positions for topology snapshots.
//
// Four independent strategies implement the [Strategy] interface over the
// same graph/viewport contract:
//
//   - force_directed: Fruchterman-Reingold style simulation with a cooling
//     schedule; refines existing positions or reinitializes degenerate ones
//   - hierarchical: multi-source BFS layering from router/high-degree roots
//   - radial: concentric rings around a central device
//   - grid: aspect-ratio-aware grid with priority ordering
//
// [Compute] dispatches by algorithm name, applies the [Normalize] pass to
// fit the result into 80% of the viewport, and replaces any non-finite
// coordinate with the node's prior position. Strategies are pure: they read
// the snapshot, draw randomness only from the injected source, and return a
// fresh position map. Writing positions back to a live diagram is the
// caller's job (see pkg/pipeline).
//
// All jitter and reinitialization randomness comes from a seedable source
// created with [NewRNG]; two runs with equal inputs and seeds produce
// byte-identical results.
package layout
