package cli

import (
	"os"
	"reflect"
	"testing"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "render", "crossings", "topo", "preview", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSelected(t *testing.T) {
	if got := parseSelected(""); got != nil {
		t.Errorf("parseSelected(\"\") = %v, want nil", got)
	}
	if got := parseSelected("rt-1,sw-1"); !reflect.DeepEqual(got, []string{"rt-1", "sw-1"}) {
		t.Errorf("parseSelected() = %v", got)
	}
}

func TestSubgraph(t *testing.T) {
	g := topo.New()
	for _, id := range []string{"rt-1", "sw-1", "sw-2"} {
		if err := g.AddNode(topo.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range []topo.Edge{
		{Source: "rt-1", Target: "sw-1"},
		{Source: "rt-1", Target: "sw-2"},
		{Source: "sw-1", Target: "sw-2"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	sub := subgraph(g, []string{"rt-1", "sw-1", "ghost", "rt-1"})

	if sub.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", sub.NodeCount())
	}
	if sub.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 (links leaving the selection are dropped)", sub.EdgeCount())
	}
	if _, ok := sub.Node("sw-2"); ok {
		t.Error("unselected node should not be in the subgraph")
	}
}

func TestWritePositions(t *testing.T) {
	g := topo.New()
	if err := g.AddNode(topo.Node{ID: "rt-1", Position: geo.Point{X: 1, Y: 2}}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	writePositions(g, layout.Result{
		"rt-1":  {X: 10, Y: 20},
		"ghost": {X: 99, Y: 99},
	})

	n, _ := g.Node("rt-1")
	if n.Position != (geo.Point{X: 10, Y: 20}) {
		t.Errorf("Position = %v, want {10 20}", n.Position)
	}
}

func TestStoredPositions(t *testing.T) {
	g := topo.New()
	_ = g.AddNode(topo.Node{ID: "a", Position: geo.Point{X: 3, Y: 4}})
	_ = g.AddNode(topo.Node{ID: "b", Position: geo.Point{X: 5, Y: 6}})

	positions := storedPositions(g)
	if len(positions) != 2 {
		t.Fatalf("len = %d, want 2", len(positions))
	}
	if positions["a"] != (geo.Point{X: 3, Y: 4}) {
		t.Errorf("positions[a] = %v", positions["a"])
	}
}
