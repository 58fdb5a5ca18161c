// Package cache provides caching for layout results and rendered artifacts.
//
// Laying out a large topology and rasterizing it are the two expensive steps
// of the pipeline, and both are pure functions of their inputs. The cache
// keys capture those inputs completely: a layout key covers the topology
// content hash plus every layout option, an artifact key covers the layout
// hash plus the render options. Identical requests therefore hit, and any
// change to topology or options misses by construction.
//
// Three backends are provided:
//   - file: Per-user cache directory for CLI usage
//   - redis: Shared cache for server deployments
//   - null: Disables caching entirely
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(topoHash, cache.LayoutKeyOpts{
//	    Algorithm: "force_directed",
//	    Width:     800,
//	    Height:    600,
//	    Seed:      42,
//	})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class. Layout results are cheap to keep and
// expensive to recompute; rendered artifacts are larger, so they expire
// sooner.
const (
	// DefaultLayoutTTL is the lifetime of cached layout position maps.
	DefaultLayoutTTL = 7 * 24 * time.Hour

	// DefaultArtifactTTL is the lifetime of cached rendered images.
	DefaultArtifactTTL = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout parameters that determine a layout result.
// Every field participates in the key hash.
type LayoutKeyOpts struct {
	Algorithm  string  `json:"algorithm"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Iterations int     `json:"iterations"`
	Seed       uint64  `json:"seed"`
}

// ArtifactKeyOpts are the render parameters that determine a rendered image.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Labels bool    `json:"labels"`
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// TopologyKey generates a key for a stored topology document, addressed
	// by the content hash of its canonical JSON form.
	TopologyKey(contentHash string) string

	// LayoutKey generates a key for a computed layout. topoHash is the
	// content hash of the input topology.
	LayoutKey(topoHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered image. layoutHash is the
	// content hash of the layout result being rendered.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hierarchical cache keys of the form
// "class:hash(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TopologyKey generates a key for a stored topology document.
func (k *DefaultKeyer) TopologyKey(contentHash string) string {
	return "topo:" + contentHash
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(topoHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", topoHash, opts)
}

// ArtifactKey generates a key for a rendered image.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
