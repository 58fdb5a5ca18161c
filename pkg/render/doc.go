// Package render turns a laid-out topology into Graphviz DOT and rendered
// images.
//
// The layout engine, not Graphviz, decides where devices go: every node is
// emitted with a pinned position (pos="x,y!") and the DOT is rendered with
// the neato engine, which honors pins instead of computing its own layout.
// Graphviz contributes only edge routing, shapes and text.
//
// # Formats
//
//   - dot: The DOT source itself, for downstream tooling
//   - svg: Vector output with a normalized viewBox
//   - png: Raster output
//
// # Usage
//
//	dot := render.ToDOT(g, result, render.Options{})
//	svg, err := render.SVG(ctx, dot)
package render
