package layout

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// crowdedRingSize is the ring population above which nodes sit closer than
// ten degrees apart and receive a small angular perturbation.
const crowdedRingSize = 36

// radial places a central device (router-class preferred, then highest
// degree) at the viewport center and the rest on concentric rings by BFS
// hop distance.
type radial struct{}

func (radial) Name() Algorithm { return Radial }

func (radial) Compute(g *topo.Graph, vp Viewport, opts Options, rng *rand.Rand) Result {
	nodes := g.Nodes()
	center := vp.Center()

	central := selectCenter(g, nodes)
	pos := Result{central: center}

	rings, maxDist := bfsLevels(g, []string{central})

	// Unreached components go on a synthetic overflow ring outside
	// everything BFS reached.
	for _, n := range nodes {
		if _, ok := rings[n.ID]; !ok {
			rings[n.ID] = maxDist + 1
		}
	}
	maxDist = 0
	for _, d := range rings {
		maxDist = max(maxDist, d)
	}

	radiusUnit := ringRadiusUnit(center, maxDist)

	byRing := make(map[int][]*topo.Node)
	for _, n := range nodes {
		if n.ID == central {
			continue
		}
		byRing[rings[n.ID]] = append(byRing[rings[n.ID]], n)
	}

	ringIDs := make([]int, 0, len(byRing))
	for d := range byRing {
		ringIDs = append(ringIDs, d)
	}
	slices.Sort(ringIDs)

	minAngleSep := math.Pi / 36

	for _, d := range ringIDs {
		ring := byRing[d]
		slices.SortStableFunc(ring, func(a, b *topo.Node) int {
			return g.Degree(b.ID) - g.Degree(a.ID)
		})

		count := len(ring)
		radius := float64(d) * radiusUnit

		for i, n := range ring {
			var angle float64
			if count > 1 {
				angle = 2 * math.Pi * float64(i) / float64(count)
				if count > crowdedRingSize {
					// Break the perfect symmetry so dense rings don't
					// stack labels on exact grid angles.
					angle += minAngleSep * 0.3 * (rng.Float64() - 0.5)
				}
			}

			actualRadius := radius + jitter(rng, radius, 0.1)

			pos[n.ID] = geo.Point{
				X: center.X + actualRadius*math.Cos(angle),
				Y: center.Y + actualRadius*math.Sin(angle),
			}
		}
	}
	return pos
}

// ringRadiusUnit computes the spacing between consecutive rings. Shallow
// topologies get a fixed or linear schedule; deep ones are compressed
// sub-linearly so outer rings don't run off the viewport.
func ringRadiusUnit(center geo.Point, maxDist int) float64 {
	limit := min(center.X, center.Y)
	switch {
	case maxDist <= 1:
		return limit * 0.4
	case maxDist <= 3:
		return limit * 0.6 / float64(maxDist)
	default:
		return limit * 0.6 / math.Pow(float64(maxDist), 0.8)
	}
}

// selectCenter picks the hub the rings grow around: the router-class node
// with the highest degree when one exists, otherwise the highest-degree
// node overall, otherwise the first node. Ties keep input order.
func selectCenter(g *topo.Graph, nodes []*topo.Node) string {
	var bestRouter, best *topo.Node
	for _, n := range nodes {
		if topo.IsRouterClass(n.Type) {
			if bestRouter == nil || g.Degree(n.ID) > g.Degree(bestRouter.ID) {
				bestRouter = n
			}
		}
		if best == nil || g.Degree(n.ID) > g.Degree(best.ID) {
			best = n
		}
	}
	if bestRouter != nil {
		return bestRouter.ID
	}
	return best.ID
}
