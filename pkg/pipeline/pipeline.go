// Package pipeline provides the core layout pipeline for netlayout.
//
// This package implements the complete snapshot → layout → render flow that
// is shared by the CLI and the HTTP API. Centralizing it keeps behavior and
// caching identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Snapshot: An immutable topology graph, built from a file, a store
//     record, or a live diagram provider
//  2. Layout: Compute positions for every device
//  3. Render: Generate output in various formats (DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
// A fourth, optional step applies the computed positions back to a live
// diagram and produces an undoable position snapshot.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Algorithm: "hierarchical",
//	    Width:     1280,
//	    Height:    720,
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	res, err := runner.ComputeLayout(ctx, g, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, g, res, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jmichalek/netlayout/pkg/cache"
	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/render"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = string(render.FormatSVG)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Algorithm  string   `json:"algorithm,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	Scope      string   `json:"scope,omitempty"`    // "all" or "selected"
	Selected   []string `json:"selected,omitempty"` // node IDs for scope "selected"

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"` // include device types in node labels

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TopoHash is the content hash of the input topology.
	TopoHash string

	// Positions is the computed layout.
	Positions layout.Result

	// Status is the layout outcome class.
	Status layout.Status

	// Crossings is the number of link crossings in the computed layout.
	Crossings int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateAlgorithm checks that an algorithm name is valid. The empty string
// is allowed and means the default.
func ValidateAlgorithm(name string) error {
	if name == "" || layout.ValidAlgorithm(layout.Algorithm(name)) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidAlgorithm,
		"invalid algorithm: %q (must be one of: %v)", name, layout.Algorithms())
}

// ValidateScope checks that a scope is valid.
func ValidateScope(scope string) error {
	switch topo.Scope(scope) {
	case "", topo.ScopeAll, topo.ScopeSelected:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"invalid scope: %q (must be %q or %q)", scope, topo.ScopeAll, topo.ScopeSelected)
}

// ValidateFormats checks that all requested formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = string(layout.DefaultAlgorithm)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = layout.DefaultSeed
	}
	if o.Scope == "" {
		o.Scope = string(topo.ScopeAll)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if err := ValidateScope(o.Scope); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Viewport returns the layout viewport described by the options.
func (o *Options) Viewport() layout.Viewport {
	return layout.Viewport{Width: o.Width, Height: o.Height}
}

// LayoutOptions converts the pipeline options into engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Algorithm:  layout.Algorithm(o.Algorithm),
		Iterations: o.Iterations,
		Seed:       o.Seed,
		Logger:     o.Logger,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:  o.Algorithm,
		Width:      o.Width,
		Height:     o.Height,
		Iterations: o.Iterations,
		Seed:       o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Labels: o.Labels,
	}
}
