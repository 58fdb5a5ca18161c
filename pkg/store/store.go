// Package store provides persistence for named topology documents.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing and the CLI
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// A stored record carries the full topology (devices with positions and
// sizes, plus links) and the viewport it was last laid out for. Records are
// addressed by a generated UUID and carry a user-chosen name; names are
// unique per store, so "save" over an existing name updates it in place.
//
// # Usage
//
// Create a store:
//
//	// Development / CLI
//	s := store.NewMemoryStore()
//
//	// Server
//	s, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "netlayout")
//
// Manage records:
//
//	rec := store.NewRecord("campus-west", g, vp)
//	if err := s.Save(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := s.GetByName(ctx, "campus-west")
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Record is one persisted topology document.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	Nodes     []topo.Node     `json:"nodes" bson:"nodes"`
	Links     []topo.Edge     `json:"links" bson:"links"`
	Viewport  layout.Viewport `json:"viewport" bson:"viewport"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// NewRecord builds a record from a live graph. The ID is assigned on first
// Save.
func NewRecord(name string, g *topo.Graph, vp layout.Viewport) *Record {
	nodes := g.Nodes()
	rec := &Record{
		Name:     name,
		Nodes:    make([]topo.Node, len(nodes)),
		Links:    g.Edges(),
		Viewport: vp,
	}
	for i, n := range nodes {
		rec.Nodes[i] = *n
	}
	return rec
}

// Graph rebuilds the topology snapshot from the stored document.
func (r *Record) Graph() (*topo.Graph, error) {
	g := topo.New()
	for _, n := range r.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "stored node %s", n.ID)
		}
	}
	for _, e := range r.Links {
		if err := g.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "stored link %s->%s", e.Source, e.Target)
		}
	}
	return g, nil
}

// Store is the interface for topology persistence backends.
type Store interface {
	// Save inserts or updates a record. A record without an ID gets one
	// assigned; saving a new record under an existing name replaces that
	// record. Timestamps are maintained by the store.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns a TOPOLOGY_NOT_FOUND error if
	// absent.
	Get(ctx context.Context, id string) (*Record, error)

	// GetByName retrieves a record by its unique name.
	GetByName(ctx context.Context, name string) (*Record, error)

	// List returns all records sorted by name.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID. Deleting a missing record returns a
	// TOPOLOGY_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare validates a record and fills store-maintained fields before a
// write. Shared by all backends.
func prepare(rec *Record, existing *Record) error {
	if err := errors.ValidateTopologyName(rec.Name); err != nil {
		return err
	}
	now := time.Now().UTC()
	if existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return nil
}

// notFound builds the standard missing-record error.
func notFound(what, key string) error {
	return errors.New(errors.ErrCodeTopologyNotFound, "topology %s %q not found", what, key)
}
