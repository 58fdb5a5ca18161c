package topo

import "github.com/jmichalek/netlayout/pkg/geo"

// Scope selects which devices a snapshot covers.
type Scope string

// Recognized scopes.
const (
	ScopeAll      Scope = "all"
	ScopeSelected Scope = "selected"
)

// Provider is the diagram-side contract a snapshot is built from. The live
// diagram (canvas, scene, document model) implements it; the layout engine
// only ever reads through it and writes back through SetPosition in a
// separate apply step after a layout run completes.
type Provider interface {
	// NodeIDs lists all device IDs in the diagram.
	NodeIDs() []string

	// Position returns the device's current top-left position.
	Position(id string) geo.Point

	// Size returns the device's width and height.
	Size(id string) geo.Point

	// TypeHint returns the device's role tag ("router", "switch", ...).
	// An empty string means generic.
	TypeHint(id string) string

	// Links lists all connections as (source, target) ID pairs.
	Links() [][2]string

	// SetPosition moves a device. Only the apply step calls this;
	// strategies themselves never do.
	SetPosition(id string, p geo.Point)
}

// Refresher is implemented by diagram views that need a redraw notification
// after positions were written back. The apply step issues exactly one
// Refresh per layout run.
type Refresher interface {
	Refresh()
}

// Snapshot builds an immutable graph from a live diagram.
//
// With ScopeSelected, only the given IDs are included and links with an
// endpoint outside the selection are dropped, so a partial layout never
// pulls unselected devices around. With ScopeAll the selected list is
// ignored. Unknown selected IDs are skipped silently.
func Snapshot(p Provider, scope Scope, selected []string) *Graph {
	ids := p.NodeIDs()
	if scope == ScopeSelected {
		keep := make(map[string]bool, len(selected))
		for _, id := range selected {
			keep[id] = true
		}
		ids = filterIDs(ids, keep)
	}

	g := New()
	for _, id := range ids {
		n := Node{
			ID:       id,
			Position: p.Position(id),
			Size:     p.Size(id),
		}
		if hint := p.TypeHint(id); hint != "" {
			n.Type = DeviceType(hint)
		}
		// Duplicate IDs from a misbehaving provider are dropped, first wins.
		_ = g.AddNode(n)
	}

	for _, link := range p.Links() {
		// Endpoints outside the snapshot are dropped rather than failing.
		_ = g.AddEdge(Edge{Source: link[0], Target: link[1]})
	}

	return g
}

func filterIDs(ids []string, keep map[string]bool) []string {
	out := make([]string, 0, len(keep))
	for _, id := range ids {
		if keep[id] {
			out = append(out, id)
		}
	}
	return out
}
