package render

import (
	"strings"
	"testing"

	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

func testGraph(t *testing.T) *topo.Graph {
	t.Helper()
	g := topo.New()
	for _, n := range []topo.Node{
		{ID: "core-rt", Type: topo.TypeRouter, Position: geo.Point{X: 1, Y: 1}},
		{ID: "sw-1", Type: topo.TypeSwitch},
		{ID: "pc-1"},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []topo.Edge{
		{Source: "core-rt", Target: "sw-1"},
		{Source: "sw-1", Target: "pc-1"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOTPinsPositions(t *testing.T) {
	g := testGraph(t)
	r := layout.Result{
		"core-rt": geo.Point{X: 72, Y: 144},
		"sw-1":    geo.Point{X: 144, Y: 72},
		"pc-1":    geo.Point{X: 216, Y: 216},
	}

	dot := ToDOT(g, r, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("links are undirected, want a graph block:\n%s", dot)
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("pinned positions need the neato engine")
	}
	// 72px at 72dpi is one point-unit inch; y is flipped.
	if !strings.Contains(dot, `"core-rt" [pos="1.000,-2.000!"`) {
		t.Errorf("core-rt pin missing or wrong:\n%s", dot)
	}
	if !strings.Contains(dot, `"core-rt" -- "sw-1";`) {
		t.Errorf("edge missing:\n%s", dot)
	}
}

func TestToDOTFallsBackToSnapshotPosition(t *testing.T) {
	g := testGraph(t)

	// Empty result: every node falls back to its snapshot position.
	dot := ToDOT(g, layout.Result{}, Options{})
	if !strings.Contains(dot, `"core-rt" [pos="0.014,-0.014!"`) {
		t.Errorf("fallback position missing:\n%s", dot)
	}
}

func TestToDOTShapesAndLabels(t *testing.T) {
	g := testGraph(t)
	dot := ToDOT(g, layout.Result{}, Options{Labels: true})

	if !strings.Contains(dot, "shape=diamond") {
		t.Error("router should render as a diamond")
	}
	if !strings.Contains(dot, "shape=box3d") {
		t.Error("switch should render as box3d")
	}
	if !strings.Contains(dot, `label="core-rt\nrouter"`) {
		t.Errorf("typed label missing:\n%s", dot)
	}
	// Untyped nodes get neither a custom shape nor a type label.
	if strings.Contains(dot, `label="pc-1`) {
		t.Error("untyped node should keep the default label")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"dot", "svg", "png"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}

	_, err := ParseFormat("pdf")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(pdf) error = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="100pt" height="50pt" viewBox="0.00 -36.50 100.00 50.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized:\n%s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("dimensions not rewritten:\n%s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte(`<svg>no viewbox</svg>`)
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("input without a viewBox should pass through: %s", got)
	}
}
