package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// ReadJSON decodes a JSON topology from r.
//
// The input must be a JSON object with "nodes" and "links" arrays and an
// optional "viewport":
//
//	{
//	  "viewport": {"width": 800, "height": 600},
//	  "nodes": [{"id": "a", "type": "router"}, {"id": "b"}],
//	  "links": [{"source": "a", "target": "b"}]
//	}
//
// The returned viewport is the zero value when the file omits it.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A node has an empty or duplicate ID
//   - A link references an unknown node ID
//
// Errors are wrapped with context describing which node or link caused the
// problem. Use errors.Is to check for specific topology errors.
//
// The returned graph is independent of r and can be used freely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*topo.Graph, layout.Viewport, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, layout.Viewport{}, fmt.Errorf("decode: %w", err)
	}

	g := topo.New()
	for _, n := range data.Nodes {
		nd := topo.Node{
			ID:       n.ID,
			Position: geo.Point{X: n.X, Y: n.Y},
			Size:     geo.Point{X: n.Width, Y: n.Height},
			Type:     topo.DeviceType(n.Type),
		}
		if err := g.AddNode(nd); err != nil {
			return nil, layout.Viewport{}, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, l := range data.Links {
		if err := g.AddEdge(topo.Edge{Source: l.Source, Target: l.Target}); err != nil {
			return nil, layout.Viewport{}, fmt.Errorf("link %s->%s: %w", l.Source, l.Target, err)
		}
	}

	var vp layout.Viewport
	if data.Viewport != nil {
		vp = *data.Viewport
	}
	return g, vp, nil
}

// ImportJSON reads a JSON topology file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*topo.Graph, layout.Viewport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, layout.Viewport{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
