package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// pointsPerPixel converts diagram pixels to Graphviz points.
const pointsPerPixel = 1.0 / 72.0

// Options configures DOT generation.
type Options struct {
	// Labels includes the device type under each node name. When false,
	// only the node ID is shown.
	Labels bool
}

// shape per device type. Unlisted types get the default box.
var typeShapes = map[topo.DeviceType]string{
	topo.TypeRouter:   "diamond",
	topo.TypeSwitch:   "box3d",
	topo.TypeFirewall: "house",
	topo.TypeCloud:    "ellipse",
}

// ToDOT converts a laid-out topology to Graphviz DOT. Positions come from
// the layout result; nodes missing from it fall back to their snapshot
// position. The resulting DOT string can be rendered with [SVG] or [PNG].
//
// Coordinates are pinned (pos="x,y!") and the y axis is flipped, since
// diagrams grow downward while Graphviz grows upward.
func ToDOT(g *topo.Graph, r layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [color=grey40];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		p, ok := r[n.ID]
		if !ok {
			p = n.Position
		}
		attrs := fmtAttrs(n, p, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *topo.Node, p geo.Point, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("pos=\"%.3f,%.3f!\"", p.X*pointsPerPixel, -p.Y*pointsPerPixel),
	}
	if opts.Labels && n.Type != "" && n.Type != topo.TypeGeneric {
		attrs = append(attrs, fmt.Sprintf("label=%q", n.ID+"\n"+string(n.Type)))
	}
	if shape, ok := typeShapes[n.Type]; ok {
		attrs = append(attrs, "shape="+shape)
	}
	return attrs
}
