package layout

import (
	"testing"

	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

func TestCountCrossings(t *testing.T) {
	// Four corners of a square: diagonals cross, sides do not.
	pos := Result{
		"a": geo.Point{X: 0, Y: 0},
		"b": geo.Point{X: 10, Y: 10},
		"c": geo.Point{X: 0, Y: 10},
		"d": geo.Point{X: 10, Y: 0},
	}

	tests := []struct {
		name  string
		edges []topo.Edge
		want  int
	}{
		{
			name:  "NoEdges",
			edges: nil,
			want:  0,
		},
		{
			name: "CrossingDiagonals",
			edges: []topo.Edge{
				{Source: "a", Target: "b"},
				{Source: "c", Target: "d"},
			},
			want: 1,
		},
		{
			name: "ParallelSides",
			edges: []topo.Edge{
				{Source: "a", Target: "c"},
				{Source: "b", Target: "d"},
			},
			want: 0,
		},
		{
			name: "SharedEndpointNotACrossing",
			edges: []topo.Edge{
				{Source: "a", Target: "b"},
				{Source: "a", Target: "d"},
			},
			want: 0,
		},
		{
			name: "MissingEndpointSkipped",
			edges: []topo.Edge{
				{Source: "a", Target: "b"},
				{Source: "ghost", Target: "d"},
			},
			want: 0,
		},
		{
			name: "AllSixPairs",
			edges: []topo.Edge{
				{Source: "a", Target: "b"},
				{Source: "c", Target: "d"},
				{Source: "a", Target: "c"},
				{Source: "b", Target: "d"},
			},
			// Only the two diagonals cross; every other pair shares an
			// endpoint or runs along the square's border.
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCrossings(tt.edges, pos); got != tt.want {
				t.Errorf("CountCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountCrossingsHierarchicalBeatsRandomStar(t *testing.T) {
	// A hub with leaves on one row never self-crosses when laid out in
	// clean levels.
	pos := Result{
		"hub": geo.Point{X: 50, Y: 0},
		"l1":  geo.Point{X: 0, Y: 40},
		"l2":  geo.Point{X: 40, Y: 40},
		"l3":  geo.Point{X: 80, Y: 40},
	}
	edges := []topo.Edge{
		{Source: "hub", Target: "l1"},
		{Source: "hub", Target: "l2"},
		{Source: "hub", Target: "l3"},
	}
	if got := CountCrossings(edges, pos); got != 0 {
		t.Errorf("star layout reported %d crossings, want 0", got)
	}
}
