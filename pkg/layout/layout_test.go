package layout

import (
	"math"
	"testing"

	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// buildGraph assembles a snapshot from shorthand node and edge specs.
// Nodes are "id" or "id:type"; edges are [2]string pairs.
func buildGraph(t *testing.T, nodes []string, edges [][2]string) *topo.Graph {
	t.Helper()
	g := topo.New()
	for _, spec := range nodes {
		n := topo.Node{ID: spec}
		for i := 0; i < len(spec); i++ {
			if spec[i] == ':' {
				n.ID = spec[:i]
				n.Type = topo.DeviceType(spec[i+1:])
				break
			}
		}
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", spec, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(topo.Edge{Source: e[0], Target: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

var testViewport = Viewport{Width: 800, Height: 600}

func TestComputeEmptyGraph(t *testing.T) {
	for _, g := range []*topo.Graph{nil, topo.New()} {
		r, status, err := Compute(g, testViewport, Options{})
		if err != nil {
			t.Fatalf("Compute on empty graph: %v", err)
		}
		if status != StatusNothingToLayout {
			t.Errorf("status = %q, want %q", status, StatusNothingToLayout)
		}
		if len(r) != 0 {
			t.Errorf("result should be empty, got %d entries", len(r))
		}
	}
}

func TestComputeSingleNodeIsCentered(t *testing.T) {
	g := topo.New()
	g.AddNode(topo.Node{
		ID:       "solo",
		Position: geo.Point{X: 5000, Y: -3000},
		Size:     geo.Point{X: 40, Y: 40},
	})

	r, status, err := Compute(g, testViewport, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusOK {
		t.Errorf("status = %q, want ok", status)
	}

	want := geo.Point{X: 400 - 20, Y: 300 - 20}
	if r["solo"] != want {
		t.Errorf("solo = %v, want %v (node center on viewport center)", r["solo"], want)
	}
}

func TestComputeUnknownAlgorithmFallsBack(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	r, status, err := Compute(g, testViewport, Options{Algorithm: "spiral"})
	if err != nil {
		t.Fatalf("unknown algorithm should not error: %v", err)
	}
	if status != StatusOK {
		t.Errorf("status = %q, want ok", status)
	}
	if len(r) != 2 {
		t.Errorf("fallback result has %d positions, want 2", len(r))
	}
}

func TestComputeInvalidViewport(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)

	tests := []struct {
		name string
		vp   Viewport
	}{
		{"ZeroWidth", Viewport{Width: 0, Height: 100}},
		{"NegativeHeight", Viewport{Width: 100, Height: -1}},
		{"NaN", Viewport{Width: math.NaN(), Height: 100}},
		{"Inf", Viewport{Width: 100, Height: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Compute(g, tt.vp, Options{})
			if !errors.Is(err, errors.ErrCodeInvalidViewport) {
				t.Errorf("error = %v, want INVALID_VIEWPORT", err)
			}
		})
	}
}

func TestComputeDeterminism(t *testing.T) {
	nodes := []string{"r1:router", "s1:switch", "s2:switch", "h1", "h2", "h3", "h4"}
	edges := [][2]string{
		{"r1", "s1"}, {"r1", "s2"},
		{"s1", "h1"}, {"s1", "h2"}, {"s2", "h3"}, {"s2", "h4"},
	}

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			g1 := buildGraph(t, nodes, edges)
			g2 := buildGraph(t, nodes, edges)

			r1, _, err := Compute(g1, testViewport, Options{Algorithm: alg, Seed: 7})
			if err != nil {
				t.Fatal(err)
			}
			r2, _, err := Compute(g2, testViewport, Options{Algorithm: alg, Seed: 7})
			if err != nil {
				t.Fatal(err)
			}

			if len(r1) != len(r2) {
				t.Fatalf("result sizes differ: %d vs %d", len(r1), len(r2))
			}
			for id, p1 := range r1 {
				if p2 := r2[id]; p1 != p2 {
					t.Errorf("node %s: %v vs %v", id, p1, p2)
				}
			}
		})
	}
}

func TestComputeCoversAllNodes(t *testing.T) {
	nodes := []string{"a", "b", "c", "d", "lonely"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			g := buildGraph(t, nodes, edges)
			r, _, err := Compute(g, testViewport, Options{Algorithm: alg})
			if err != nil {
				t.Fatal(err)
			}
			for _, id := range nodes {
				p, ok := r[id]
				if !ok {
					t.Errorf("node %s missing from result", id)
					continue
				}
				if !p.IsFinite() {
					t.Errorf("node %s has non-finite position %v", id, p)
				}
			}
		})
	}
}

func TestSanitizeRepairsNonFinite(t *testing.T) {
	g := topo.New()
	g.AddNode(topo.Node{ID: "a", Position: geo.Point{X: 11, Y: 22}})
	g.AddNode(topo.Node{ID: "b", Position: geo.Point{X: 33, Y: 44}})

	r := Result{
		"a": geo.Point{X: math.NaN(), Y: 5},
		// b intentionally missing.
	}

	opts := Options{}
	opts.setDefaults()
	out := sanitize(g, r, opts.Logger)

	if out["a"] != (geo.Point{X: 11, Y: 22}) {
		t.Errorf("NaN coordinate should be replaced with prior position, got %v", out["a"])
	}
	if out["b"] != (geo.Point{X: 33, Y: 44}) {
		t.Errorf("missing node should keep prior position, got %v", out["b"])
	}
}

func TestValidAlgorithm(t *testing.T) {
	for _, alg := range Algorithms() {
		if !ValidAlgorithm(alg) {
			t.Errorf("%q should be valid", alg)
		}
	}
	if ValidAlgorithm("spiral") {
		t.Error("unknown algorithm reported as valid")
	}
}
