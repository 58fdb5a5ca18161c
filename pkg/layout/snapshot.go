package layout

import (
	"slices"

	"github.com/jmichalek/netlayout/pkg/topo"
)

// PositionSnapshot captures the before/after position maps of one layout
// application so a caller-owned undo/redo command can replay or revert it.
// Its lifetime is independent of the snapshot graph it was computed from.
type PositionSnapshot struct {
	Before  Result   `json:"before" bson:"before"`
	After   Result   `json:"after" bson:"after"`
	Touched []string `json:"touched" bson:"touched"`
}

// NewPositionSnapshot builds a snapshot from the position maps taken
// immediately before and after a write-back. Touched contains, sorted, the
// IDs whose position changed or that appear on only one side.
func NewPositionSnapshot(before, after Result) *PositionSnapshot {
	touched := make([]string, 0, len(after))
	for id, p := range after {
		if prev, ok := before[id]; !ok || prev != p {
			touched = append(touched, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			touched = append(touched, id)
		}
	}
	slices.Sort(touched)

	return &PositionSnapshot{
		Before:  before.Clone(),
		After:   after.Clone(),
		Touched: touched,
	}
}

// Empty reports whether the snapshot moved nothing.
func (s *PositionSnapshot) Empty() bool { return len(s.Touched) == 0 }

// Apply writes the "after" positions of all touched nodes back through the
// provider.
func (s *PositionSnapshot) Apply(p topo.Provider) { s.write(p, s.After) }

// Revert writes the "before" positions of all touched nodes back through
// the provider.
func (s *PositionSnapshot) Revert(p topo.Provider) { s.write(p, s.Before) }

func (s *PositionSnapshot) write(p topo.Provider, positions Result) {
	for _, id := range s.Touched {
		if pos, ok := positions[id]; ok {
			p.SetPosition(id, pos)
		}
	}
}
