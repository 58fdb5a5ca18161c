package layout

import (
	"math/rand/v2"
	"slices"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Level row height bounds and spacing caps for the hierarchical strategy.
const (
	maxLevelHeight = 120.0
	minLevelHeight = 70.0
	maxNodeSpacing = 120.0

	// routerRootScore beats any degree-based score so router-class devices
	// always outrank plain high-degree nodes in root selection.
	routerRootScore = -100
)

// hierarchical layers the topology by BFS hop distance from a set of roots
// (routers first, then high-degree nodes) and fills each level row left to
// right by descending degree.
type hierarchical struct{}

func (hierarchical) Name() Algorithm { return Hierarchical }

func (hierarchical) Compute(g *topo.Graph, vp Viewport, opts Options, rng *rand.Rand) Result {
	nodes := g.Nodes()

	roots := selectRoots(g, nodes, opts.RootFraction)
	levels, maxLevel := bfsLevels(g, roots)

	// Disconnected components get a synthetic overflow level below
	// everything BFS reached.
	for _, n := range nodes {
		if _, ok := levels[n.ID]; !ok {
			levels[n.ID] = maxLevel + 1
		}
	}
	maxLevel = 0
	for _, lv := range levels {
		maxLevel = max(maxLevel, lv)
	}

	marginX := vp.Width * 0.05
	marginY := vp.Height * 0.07
	availW := vp.Width - 2*marginX
	availH := vp.Height - 2*marginY

	levelHeight := maxLevelHeight
	if maxLevel > 1 {
		levelHeight = geo.Clamp(availH/float64(maxLevel+1), minLevelHeight, maxLevelHeight)
	}

	byLevel := make(map[int][]*topo.Node)
	for _, n := range nodes {
		lv := levels[n.ID]
		byLevel[lv] = append(byLevel[lv], n)
	}

	// Rows are placed top to bottom so the rng draw order, and with it the
	// jitter, is reproducible.
	levelIDs := make([]int, 0, len(byLevel))
	for lv := range byLevel {
		levelIDs = append(levelIDs, lv)
	}
	slices.Sort(levelIDs)

	pos := make(Result, len(nodes))
	for _, lv := range levelIDs {
		row := byLevel[lv]
		// Degree descending; the stable sort keeps input order as the tie-break.
		slices.SortStableFunc(row, func(a, b *topo.Node) int {
			return g.Degree(b.ID) - g.Degree(a.ID)
		})

		count := float64(len(row))
		spacing := availW
		if len(row) > 1 {
			spacing = min(availW/count, maxNodeSpacing)
		}
		startX := marginX + (availW-spacing*count)/2

		for i, n := range row {
			x := startX + (float64(i)+0.5)*spacing
			y := marginY + float64(lv)*levelHeight

			x += jitter(rng, spacing, 0.08)
			y += jitter(rng, levelHeight, 0.05)

			pos[n.ID] = geo.Point{X: x, Y: y}
		}
	}
	return pos
}

// selectRoots scores every node (router bonus, otherwise negated degree),
// sorts ascending, and promotes the top fraction to roots. At least one
// node is always a root.
func selectRoots(g *topo.Graph, nodes []*topo.Node, fraction float64) []string {
	type scored struct {
		score int
		id    string
	}
	candidates := make([]scored, len(nodes))
	for i, n := range nodes {
		score := -g.Degree(n.ID)
		if topo.IsRouterClass(n.Type) {
			score = routerRootScore
		}
		candidates[i] = scored{score: score, id: n.ID}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int { return a.score - b.score })

	if fraction <= 0 {
		fraction = DefaultRootFraction
	}
	take := max(1, int(float64(len(nodes))*fraction))

	roots := make([]string, take)
	for i := range take {
		roots[i] = candidates[i].id
	}
	return roots
}

// bfsLevels runs a multi-source BFS and returns hop distances from the
// nearest root plus the maximum observed level. Unreached nodes are absent
// from the map.
func bfsLevels(g *topo.Graph, roots []string) (map[string]int, int) {
	levels := make(map[string]int, g.NodeCount())
	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		if _, seen := levels[r]; !seen {
			levels[r] = 0
			queue = append(queue, r)
		}
	}

	maxLevel := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nb := range g.Neighbors(id) {
			if _, seen := levels[nb]; seen {
				continue
			}
			levels[nb] = levels[id] + 1
			maxLevel = max(maxLevel, levels[nb])
			queue = append(queue, nb)
		}
	}
	return levels, maxLevel
}
