package layout

import (
	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// CountCrossings returns the number of link pairs whose segments intersect
// in the given layout. Pairs sharing an endpoint are skipped; two links
// that meet at a common device are not a crossing. Links whose endpoints
// are missing from the result contribute nothing.
//
// This is a diagnostic over a finished layout, not part of the layout path
// itself, and runs in O(E²).
func CountCrossings(edges []topo.Edge, r Result) int {
	crossings := 0
	for i, e1 := range edges {
		a, okA := r[e1.Source]
		b, okB := r[e1.Target]
		if !okA || !okB {
			continue
		}

		for _, e2 := range edges[i+1:] {
			if sharesEndpoint(e1, e2) {
				continue
			}
			c, okC := r[e2.Source]
			d, okD := r[e2.Target]
			if !okC || !okD {
				continue
			}
			if geo.SegmentsIntersect(a, b, c, d) {
				crossings++
			}
		}
	}
	return crossings
}

func sharesEndpoint(e1, e2 topo.Edge) bool {
	return e1.Source == e2.Source || e1.Source == e2.Target ||
		e1.Target == e2.Source || e1.Target == e2.Target
}
