// Package topo models an immutable snapshot of a network topology: devices
// as nodes with positions and sizes, links as undirected edges, and a derived
// adjacency index.
//
// A snapshot is built once per layout invocation, either directly with
// [New]/[Graph.AddNode]/[Graph.AddEdge] or from a live diagram through the
// [Provider] interface via [Snapshot]. Layout strategies never mutate a
// snapshot; they return fresh position maps instead.
//
// Node iteration order is the insertion order, which keeps degree-sorting
// tie-breaks and therefore whole layouts deterministic.
package topo
