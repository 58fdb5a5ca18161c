package layout

import (
	"testing"
)

func TestSelectRootsPrefersRouter(t *testing.T) {
	// B has the highest degree, but the router bonus must win.
	g := buildGraph(t,
		[]string{"a:router", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"b", "d"}},
	)

	roots := selectRoots(g, g.Nodes(), DefaultRootFraction)
	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1 for a 4-node graph", len(roots))
	}
	if roots[0] != "a" {
		t.Errorf("root = %q, want router a", roots[0])
	}
}

func TestSelectRootsFallsBackToDegree(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "hub", "b", "c"},
		[][2]string{{"hub", "a"}, {"hub", "b"}, {"hub", "c"}},
	)

	roots := selectRoots(g, g.Nodes(), DefaultRootFraction)
	if roots[0] != "hub" {
		t.Errorf("root = %q, want highest-degree hub", roots[0])
	}
}

func TestSelectRootsFraction(t *testing.T) {
	nodes := make([]string, 30)
	for i := range nodes {
		nodes[i] = string(rune('a' + i%26)) + string(rune('0'+i/26))
	}
	g := buildGraph(t, nodes, nil)

	if got := len(selectRoots(g, g.Nodes(), 0.1)); got != 3 {
		t.Errorf("roots for 30 nodes at 10%% = %d, want 3", got)
	}
	if got := len(selectRoots(g, g.Nodes(), 0.001)); got != 1 {
		t.Errorf("roots should never be empty, got %d", got)
	}
}

func TestBFSLevels(t *testing.T) {
	// a(router) - b, a - c per the router heuristic: level(a)=0, b=c=1.
	g := buildGraph(t,
		[]string{"a:router", "b", "c"},
		[][2]string{{"a", "b"}, {"a", "c"}},
	)

	roots := selectRoots(g, g.Nodes(), DefaultRootFraction)
	if roots[0] != "a" {
		t.Fatalf("root = %q, want a", roots[0])
	}

	levels, maxLevel := bfsLevels(g, roots)
	if levels["a"] != 0 {
		t.Errorf("level(a) = %d, want 0", levels["a"])
	}
	if levels["b"] != 1 || levels["c"] != 1 {
		t.Errorf("level(b)=%d level(c)=%d, want 1/1", levels["b"], levels["c"])
	}
	if maxLevel != 1 {
		t.Errorf("maxLevel = %d, want 1", maxLevel)
	}
}

func TestHierarchicalLevelsSeparateVertically(t *testing.T) {
	g := buildGraph(t,
		[]string{"root:router", "m1", "m2", "leaf"},
		[][2]string{{"root", "m1"}, {"root", "m2"}, {"m1", "leaf"}},
	)

	opts := Options{Algorithm: Hierarchical, Seed: 3}
	opts.setDefaults()
	r := hierarchical{}.Compute(g, testViewport, opts, opts.RNG)

	// Jitter is at most 5% of a level height, far below the inter-level
	// distance, so ordering by y must match ordering by level.
	if !(r["root"].Y < r["m1"].Y && r["root"].Y < r["m2"].Y) {
		t.Errorf("root should sit above level 1: root=%v m1=%v m2=%v",
			r["root"], r["m1"], r["m2"])
	}
	if !(r["m1"].Y < r["leaf"].Y) {
		t.Errorf("level 1 should sit above level 2: m1=%v leaf=%v", r["m1"], r["leaf"])
	}
}

func TestHierarchicalIsolatedNodeGetsOverflowLevel(t *testing.T) {
	g := buildGraph(t,
		[]string{"a:router", "b", "island"},
		[][2]string{{"a", "b"}},
	)

	opts := Options{Algorithm: Hierarchical, Seed: 3}
	opts.setDefaults()
	r := hierarchical{}.Compute(g, testViewport, opts, opts.RNG)

	if _, ok := r["island"]; !ok {
		t.Fatal("isolated node missing from result")
	}
	// The overflow level sits below every BFS-reached level.
	if !(r["island"].Y > r["a"].Y && r["island"].Y > r["b"].Y) {
		t.Errorf("island should be on the lowest row: island=%v a=%v b=%v",
			r["island"], r["a"], r["b"])
	}
}
