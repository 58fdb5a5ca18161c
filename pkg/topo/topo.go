package topo

import (
	"errors"
	"slices"

	"github.com/jmichalek/netlayout/pkg/geo"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique within a snapshot.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the Source
	// node does not exist in the snapshot.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the Target
	// node does not exist in the snapshot.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist. This indicates snapshot corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonFinitePosition is returned by [Graph.Validate] when a node
	// carries a NaN or infinite coordinate.
	ErrNonFinitePosition = errors.New("node position must be finite")
)

// Node is a positioned device in the topology snapshot.
// Position is the top-left corner; Size may be zero for point-like nodes.
type Node struct {
	ID       string     `json:"id" bson:"id"`
	Position geo.Point  `json:"position" bson:"position"`
	Size     geo.Point  `json:"size,omitempty" bson:"size,omitempty"`
	Type     DeviceType `json:"type,omitempty" bson:"type,omitempty"`
}

// Edge is an undirected link between two devices. Source/Target naming is
// kept for serialization compatibility; layout treats both ends equally.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Graph is an immutable-by-convention topology snapshot. Construction via
// AddNode/AddEdge happens before a layout run; strategies only read it.
// Graph is not safe for concurrent mutation.
type Graph struct {
	nodes    map[string]*Node
	order    []string            // node IDs in insertion order
	edges    []Edge
	adjacent map[string][]string // nodeID -> neighbor IDs, derived
}

// New creates an empty topology snapshot.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		adjacent: make(map[string][]string),
	}
}

// AddNode adds a device to the snapshot.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds an undirected link between two existing devices.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if either endpoint
// is missing. Self-loops are allowed but contribute nothing to layout
// forces; duplicate edges are allowed and simply weigh the attraction.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	if e.Source != e.Target {
		g.adjacent[e.Source] = append(g.adjacent[e.Source], e.Target)
		g.adjacent[e.Target] = append(g.adjacent[e.Target], e.Source)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs; treat them as read-only.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the snapshot.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the snapshot.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the IDs adjacent to the node. Nodes connected by
// multiple parallel links appear once per link. The returned slice is a
// read-only view; do not modify it.
func (g *Graph) Neighbors(id string) []string { return g.adjacent[id] }

// Degree returns the number of links incident to the node, counting
// parallel links individually. Returns 0 for unknown IDs.
func (g *Graph) Degree(id string) int { return len(g.adjacent[id]) }

// Validate checks snapshot integrity and returns nil if valid.
// It verifies that every edge references existing nodes and that every
// node position is finite. Use this after building a snapshot from
// untrusted input (imported files, API requests).
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.Source]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := g.nodes[e.Target]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	for _, id := range g.order {
		if n := g.nodes[id]; !n.Position.IsFinite() {
			return ErrNonFinitePosition
		}
	}
	return nil
}
