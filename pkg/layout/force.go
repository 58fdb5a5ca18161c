package layout

import (
	"math"
	"math/rand/v2"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// viewportMargin is the inset kept free on every side while the simulation
// runs, as a fraction of the viewport dimension.
const viewportMargin = 0.1

// degenerateSpanFraction triggers reinitialization: when the x- or y-range
// of the existing positions spans less than this fraction of the matching
// viewport dimension, the seed positions carry no usable structure.
const degenerateSpanFraction = 0.1

// forceDirected is a Fruchterman-Reingold style simulation. Connected nodes
// attract, all pairs repel, and a cooling temperature caps per-iteration
// displacement so the system settles instead of oscillating.
type forceDirected struct{}

func (forceDirected) Name() Algorithm { return ForceDirected }

func (forceDirected) Compute(g *topo.Graph, vp Viewport, opts Options, rng *rand.Rand) Result {
	nodes := g.Nodes()
	pos := seedPositions(nodes, vp, rng)

	k := opts.OptimalDistance
	temperature := vp.Width / 15

	minX, maxX := vp.Width*viewportMargin, vp.Width*(1-viewportMargin)
	minY, maxY := vp.Height*viewportMargin, vp.Height*(1-viewportMargin)

	disp := make(map[string]geo.Point, len(nodes))

	for range opts.Iterations {
		for _, n := range nodes {
			disp[n.ID] = geo.Point{}
		}

		// Repulsion between every ordered pair of distinct nodes.
		for _, v := range nodes {
			d := disp[v.ID]
			for _, u := range nodes {
				if u.ID == v.ID {
					continue
				}
				delta := pos[v.ID].Sub(pos[u.ID])
				dist := max(geo.MinDistance, delta.Length())
				force := k * k / dist
				d = d.Add(delta.Scale(force / dist))
			}
			disp[v.ID] = d
		}

		// Attraction along every edge, pulling both endpoints together.
		for _, e := range g.Edges() {
			if e.Source == e.Target {
				continue
			}
			delta := pos[e.Source].Sub(pos[e.Target])
			dist := max(geo.MinDistance, delta.Length())
			force := dist * dist / (k * 0.5)
			pull := delta.Scale(force / dist)
			disp[e.Source] = disp[e.Source].Sub(pull)
			disp[e.Target] = disp[e.Target].Add(pull)
		}

		// Displace, capped at the current temperature, then keep nodes
		// inside the margin-bounded viewport.
		for _, v := range nodes {
			d := disp[v.ID]
			length := max(geo.MinDistance, d.Length())
			limited := d.Scale(min(length, temperature) / length)

			next := pos[v.ID].Add(limited)
			next.X = geo.Clamp(next.X, minX, maxX)
			next.Y = geo.Clamp(next.Y, minY, maxY)
			pos[v.ID] = next
		}

		temperature *= opts.CoolingFactor
	}

	return pos
}

// seedPositions copies the snapshot positions as the simulation seed. When
// the existing positions are degenerate (all clustered in a sliver of the
// viewport), every node is re-thrown onto a random disc around the center
// so the simulation can unfold the graph.
func seedPositions(nodes []*topo.Node, vp Viewport, rng *rand.Rand) Result {
	pos := make(Result, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n.Position
	}

	if !degenerateSpread(nodes, vp) {
		return pos
	}

	center := vp.Center()
	radius := min(vp.Width, vp.Height) / 5
	for _, n := range nodes {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * radius
		pos[n.ID] = geo.Point{
			X: center.X + dist*math.Cos(angle),
			Y: center.Y + dist*math.Sin(angle),
		}
	}
	return pos
}

func degenerateSpread(nodes []*topo.Node, vp Viewport) bool {
	if len(nodes) == 0 {
		return false
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		minX = min(minX, n.Position.X)
		maxX = max(maxX, n.Position.X)
		minY = min(minY, n.Position.Y)
		maxY = max(maxY, n.Position.Y)
	}
	return maxX-minX < vp.Width*degenerateSpanFraction ||
		maxY-minY < vp.Height*degenerateSpanFraction
}
