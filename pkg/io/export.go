package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

type document struct {
	Viewport *layout.Viewport `json:"viewport,omitempty"`
	Nodes    []node           `json:"nodes"`
	Links    []link           `json:"links"`
}

type node struct {
	ID     string  `json:"id"`
	Type   string  `json:"type,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// WriteJSON encodes a topology as JSON and writes it to w. Node entries
// carry the graph's current positions, so a layout applied to the graph
// before export is persisted. A zero viewport is omitted from the output.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *topo.Graph, vp layout.Viewport, w io.Writer) error {
	nodes := g.Nodes()
	out := document{
		Nodes: make([]node, len(nodes)),
		Links: make([]link, g.EdgeCount()),
	}
	if vp != (layout.Viewport{}) {
		out.Viewport = &vp
	}

	for i, n := range nodes {
		nd := node{
			ID:     n.ID,
			X:      n.Position.X,
			Y:      n.Position.Y,
			Width:  n.Size.X,
			Height: n.Size.Y,
		}
		if n.Type != "" && n.Type != topo.TypeGeneric {
			nd.Type = string(n.Type)
		}
		out.Nodes[i] = nd
	}
	for i, e := range g.Edges() {
		out.Links[i] = link{Source: e.Source, Target: e.Target}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a topology to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *topo.Graph, vp layout.Viewport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, vp, f)
}
