package layout

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Grid cell size bounds and viewport inset.
const (
	minCellSize = 80.0
	maxCellSize = 180.0
	gridMargin  = 0.08
)

// grid arranges devices in a uniform grid. Columns follow the viewport
// aspect ratio, and high-priority, high-degree devices claim the top-left
// cells.
type grid struct{}

func (grid) Name() Algorithm { return Grid }

func (grid) Compute(g *topo.Graph, vp Viewport, opts Options, rng *rand.Rand) Result {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return Result{}
	}

	marginX := vp.Width * gridMargin
	marginY := vp.Height * gridMargin
	availW := vp.Width - 2*marginX
	availH := vp.Height - 2*marginY

	cols := GridColumns(n, availW/availH)
	rows := int(math.Ceil(float64(n) / float64(cols)))

	cellW := geo.Clamp(availW/float64(cols), minCellSize, maxCellSize)
	cellH := geo.Clamp(availH/float64(rows), minCellSize, maxCellSize)

	// Center the grid block inside the inset area.
	startX := marginX + (availW-cellW*float64(cols))/2
	startY := marginY + (availH-cellH*float64(rows))/2

	ordered := slices.Clone(nodes)
	slices.SortStableFunc(ordered, func(a, b *topo.Node) int {
		return gridRank(g, a) - gridRank(g, b)
	})

	jitterSpan := min(cellW, cellH)

	pos := make(Result, n)
	for i, node := range ordered {
		row := i / cols
		col := i % cols

		x := startX + (float64(col)+0.5)*cellW
		y := startY + (float64(row)+0.5)*cellH

		x += jitter(rng, jitterSpan, 0.06)
		y += jitter(rng, jitterSpan, 0.06)

		pos[node.ID] = geo.Point{X: x, Y: y}
	}
	return pos
}

// gridRank orders devices for cell assignment: lower ranks come first, so
// the negation puts high-priority, well-connected devices top-left.
func gridRank(g *topo.Graph, n *topo.Node) int {
	return -(topo.TypePriority(n.Type) + g.Degree(n.ID))
}

// GridColumns computes the column count for n nodes in an area with the
// given width/height aspect ratio. Tiny layouts get fixed shapes; larger
// ones approximate sqrt(n × aspect) clamped to [2, 12].
func GridColumns(n int, aspect float64) int {
	switch {
	case n <= 0:
		return 1
	case n <= 2:
		return n
	case n <= 4:
		return 2
	default:
		ideal := math.Ceil(math.Sqrt(float64(n) * aspect))
		return int(geo.Clamp(ideal, 2, 12))
	}
}
