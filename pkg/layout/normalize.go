package layout

import (
	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

const (
	// normalizeTarget is the viewport fraction the final bounding box
	// should occupy.
	normalizeTarget = 0.8

	// maxGrowth caps how far a cramped layout may be blown up.
	maxGrowth = 1.5
)

// Normalize post-processes a strategy's raw output so the layout occupies
// at most 80% of the viewport, centered.
//
// The bounding box covers every node position expanded by its size. The
// uniform scale is min(targetW/w, targetH/h, 1.5) with both dimensions
// floored at 1 to avoid dividing by a degenerate box; layouts are shrunk to
// fit but never grown more than 1.5×. A single node is simply centered.
func Normalize(g *topo.Graph, r Result, vp Viewport) Result {
	nodes := g.Nodes()
	if len(r) == 0 || len(nodes) == 0 {
		return Result{}
	}

	center := vp.Center()

	if len(nodes) == 1 {
		n := nodes[0]
		return Result{n.ID: geo.Point{
			X: center.X - n.Size.X/2,
			Y: center.Y - n.Size.Y/2,
		}}
	}

	points := make([]geo.Point, 0, len(nodes))
	sizes := make([]geo.Point, 0, len(nodes))
	for _, n := range nodes {
		p, ok := r[n.ID]
		if !ok {
			p = n.Position
		}
		points = append(points, p)
		sizes = append(sizes, n.Size)
	}

	box, ok := geo.Bounds(points, sizes)
	if !ok {
		return r
	}

	currentW := max(1, box.Width())
	currentH := max(1, box.Height())
	scale := min(vp.Width*normalizeTarget/currentW, vp.Height*normalizeTarget/currentH, maxGrowth)

	boxCenter := box.Center()
	out := make(Result, len(nodes))
	for i, n := range nodes {
		rel := points[i].Sub(boxCenter)
		out[n.ID] = center.Add(rel.Scale(scale))
	}
	return out
}
