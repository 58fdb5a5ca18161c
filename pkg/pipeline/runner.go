package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jmichalek/netlayout/pkg/cache"
	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/observability"
	"github.com/jmichalek/netlayout/pkg/render"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *topo.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	// Stage 1: Layout
	result, err := r.ComputeLayout(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("computed layout",
		"algorithm", opts.Algorithm,
		"nodes", result.Stats.NodeCount,
		"crossings", result.Crossings,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether the result came from cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *topo.Graph, opts Options) (*Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Global()

	topoHash, err := topologyHash(g, opts.Viewport())
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(topoHash, opts.LayoutKeyOpts())

	result := &Result{TopoHash: topoHash}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		hooks.Cache.CacheLookup("layout", err == nil && hit)
		if err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				result.Positions = cached
				result.Status = layout.StatusOK
				if len(cached) == 0 {
					result.Status = layout.StatusNothingToLayout
				}
				result.Crossings = layout.CountCrossings(g.Edges(), cached)
				result.CacheInfo.LayoutHit = true
				return result, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
	}

	// Compute
	start := time.Now()
	hooks.Layout.LayoutStarted(opts.Algorithm, g.NodeCount(), g.EdgeCount())
	positions, status, err := layout.Compute(g, opts.Viewport(), opts.LayoutOptions())
	hooks.Layout.LayoutFinished(opts.Algorithm, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	result.Positions = positions
	result.Status = status
	result.Crossings = layout.CountCrossings(g.Edges(), positions)
	result.Stats.LayoutTime = time.Since(start)

	// Cache the result
	if data, err := json.Marshal(positions); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultLayoutTTL)
	}

	return result, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and folds the hit flag into the result.
func (r *Runner) ComputeLayout(ctx context.Context, g *topo.Graph, opts Options) (*Result, error) {
	result, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return result, err
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *topo.Graph, result *Result, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Global()

	// The artifact key hashes the layout being drawn, not the topology: two
	// topologies that happen to lay out identically share artifacts.
	layoutData, err := json.Marshal(result.Positions)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			hooks.Cache.CacheLookup("artifact", err == nil && hit)
			if err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	// Render all formats
	dot := render.ToDOT(g, result.Positions, render.Options{Labels: opts.Labels})
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := render.Render(ctx, dot, render.Format(format))
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultArtifactTTL)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *topo.Graph, result *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, result, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// topologyHash computes the content hash of a topology snapshot plus the
// viewport it will be laid out for. Node order is the snapshot's insertion
// order, which providers and the JSON importer keep stable.
func topologyHash(g *topo.Graph, vp layout.Viewport) (string, error) {
	doc := struct {
		Viewport layout.Viewport `json:"viewport"`
		Nodes    []topo.Node     `json:"nodes"`
		Edges    []topo.Edge     `json:"edges"`
	}{Viewport: vp, Edges: g.Edges()}

	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, *n)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash topology")
	}
	return cache.Hash(data), nil
}
