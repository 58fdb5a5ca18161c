package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different API users share a cache backend without sharing entries.
//
// Example usage:
//
//	// Per-user keys for private topologies
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared topologies
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TopologyKey generates a prefixed topology key.
func (k *ScopedKeyer) TopologyKey(contentHash string) string {
	return k.prefix + k.inner.TopologyKey(contentHash)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(topoHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(topoHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
