package pipeline

import (
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Apply writes a computed layout back to a live diagram and returns the
// position snapshot for undo/redo. Only nodes present in the result are
// written; the diagram is refreshed exactly once, after all writes, when it
// implements [topo.Refresher].
//
// Apply is the only pipeline step that mutates the diagram. An empty result
// produces an empty snapshot and touches nothing.
func Apply(p topo.Provider, positions layout.Result) *layout.PositionSnapshot {
	before := make(layout.Result, len(positions))
	for id := range positions {
		before[id] = p.Position(id)
	}

	snap := layout.NewPositionSnapshot(before, positions)
	if snap.Empty() {
		return snap
	}

	for _, id := range snap.Touched {
		if pos, ok := positions[id]; ok {
			p.SetPosition(id, pos)
		}
	}
	if r, ok := p.(topo.Refresher); ok {
		r.Refresh()
	}
	return snap
}

// Positions reads the current coordinates of the given nodes from a live
// diagram, for recording a snapshot before an external mutation.
func Positions(p topo.Provider, ids []string) layout.Result {
	out := make(layout.Result, len(ids))
	for _, id := range ids {
		out[id] = p.Position(id)
	}
	return out
}
