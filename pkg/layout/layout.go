package layout

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/geo"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Algorithm names a layout strategy.
type Algorithm string

// Supported algorithms.
const (
	ForceDirected Algorithm = "force_directed"
	Hierarchical  Algorithm = "hierarchical"
	Radial        Algorithm = "radial"
	Grid          Algorithm = "grid"
)

// DefaultAlgorithm is used when no algorithm is specified and is the
// fallback for unrecognized names.
const DefaultAlgorithm = ForceDirected

// Status reports the outcome class of a layout run.
type Status string

const (
	// StatusOK means positions were computed normally.
	StatusOK Status = "ok"

	// StatusNothingToLayout means the snapshot was empty. This is a normal
	// outcome, not an error: the result is an empty map.
	StatusNothingToLayout Status = "nothing to layout"
)

// Result maps node IDs to their computed positions. A Result produced by
// [Compute] covers every node of the snapshot and never contains NaN or
// infinite coordinates.
type Result map[string]geo.Point

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for id, p := range r {
		out[id] = p
	}
	return out
}

// Viewport is the drawable area a layout must fit within.
type Viewport struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() geo.Point {
	return geo.Point{X: v.Width / 2, Y: v.Height / 2}
}

// Default tuning values. The heuristic constants are empirically tuned
// defaults, not correctness invariants; Options fields override them.
const (
	// DefaultIterations is the force-directed iteration count.
	DefaultIterations = 50

	// DefaultOptimalDistance is the force-directed optimal node spacing k,
	// tuned for compact layouts.
	DefaultOptimalDistance = 35.0

	// DefaultCoolingFactor is applied to the temperature once per iteration.
	DefaultCoolingFactor = 0.85

	// DefaultRootFraction is the share of nodes the hierarchical strategy
	// promotes to roots (at least one).
	DefaultRootFraction = 0.1

	// DefaultSeed keeps unseeded runs reproducible.
	DefaultSeed = uint64(42)
)

// Options tunes a layout run. The zero value is usable: setDefaults fills
// every field before dispatch.
type Options struct {
	// Algorithm selects the strategy. Unrecognized values fall back to
	// force_directed with a warning.
	Algorithm Algorithm `json:"algorithm,omitempty"`

	// Iterations is the force-directed iteration count N.
	Iterations int `json:"iterations,omitempty"`

	// OptimalDistance is the force-directed spacing constant k.
	OptimalDistance float64 `json:"optimal_distance,omitempty"`

	// CoolingFactor decays the temperature each iteration.
	CoolingFactor float64 `json:"cooling_factor,omitempty"`

	// RootFraction is the share of nodes taken as hierarchical roots.
	RootFraction float64 `json:"root_fraction,omitempty"`

	// Seed feeds the random source when RNG is nil.
	Seed uint64 `json:"seed,omitempty"`

	// RNG is the random source for jitter and reinitialization. When nil, a
	// seeded source is created from Seed. Inject a fixed source for
	// reproducible tests.
	RNG *rand.Rand `json:"-"`

	// Logger receives warnings (unknown algorithm, repaired coordinates).
	// Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`
}

func (o *Options) setDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.OptimalDistance <= 0 {
		o.OptimalDistance = DefaultOptimalDistance
	}
	if o.CoolingFactor <= 0 || o.CoolingFactor >= 1 {
		o.CoolingFactor = DefaultCoolingFactor
	}
	if o.RootFraction <= 0 || o.RootFraction > 1 {
		o.RootFraction = DefaultRootFraction
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.RNG == nil {
		o.RNG = NewRNG(o.Seed)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// NewRNG creates a seedable random source for layout runs. Two sources with
// the same seed produce identical streams.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Strategy is a side-effect-free layout algorithm. Implementations read the
// snapshot and draw randomness only from rng; they must return a position
// for every node in the snapshot.
type Strategy interface {
	// Name identifies the strategy for dispatch and diagnostics.
	Name() Algorithm

	// Compute returns raw (pre-normalization) positions for every node.
	Compute(g *topo.Graph, vp Viewport, opts Options, rng *rand.Rand) Result
}

// strategyFor resolves an algorithm name. The second return is false for
// unrecognized names.
func strategyFor(a Algorithm) (Strategy, bool) {
	switch a {
	case ForceDirected:
		return forceDirected{}, true
	case Hierarchical:
		return hierarchical{}, true
	case Radial:
		return radial{}, true
	case Grid:
		return grid{}, true
	}
	return nil, false
}

// Algorithms lists the supported algorithm names.
func Algorithms() []Algorithm {
	return []Algorithm{ForceDirected, Hierarchical, Radial, Grid}
}

// ValidAlgorithm reports whether a names a known strategy.
func ValidAlgorithm(a Algorithm) bool {
	_, ok := strategyFor(a)
	return ok
}

// Compute runs the selected strategy on a snapshot and normalizes the
// result into the viewport.
//
// Behavior at the edges:
//   - empty snapshot: empty Result, StatusNothingToLayout, no error
//   - single node: strategy math is skipped, the node is centered
//   - unknown algorithm: warning logged, force_directed used
//   - non-finite computed coordinate: replaced with the node's prior
//     position and logged as a recoverable anomaly
//
// Compute blocks the calling goroutine for its entire duration and touches
// no shared state; callers must serialize runs over overlapping node sets.
func Compute(g *topo.Graph, vp Viewport, opts Options) (Result, Status, error) {
	opts.setDefaults()

	if !geo.IsFinite(vp.Width) || !geo.IsFinite(vp.Height) || vp.Width <= 0 || vp.Height <= 0 {
		return nil, StatusOK, errors.New(errors.ErrCodeInvalidViewport,
			"viewport must have positive finite dimensions, got %gx%g", vp.Width, vp.Height)
	}

	if g == nil || g.NodeCount() == 0 {
		opts.Logger.Debug("nothing to layout")
		return Result{}, StatusNothingToLayout, nil
	}

	if g.NodeCount() == 1 {
		n := g.Nodes()[0]
		return Normalize(g, Result{n.ID: n.Position}, vp), StatusOK, nil
	}

	strategy, ok := strategyFor(opts.Algorithm)
	if !ok {
		opts.Logger.Warn("unknown layout algorithm, falling back",
			"algorithm", opts.Algorithm, "fallback", DefaultAlgorithm)
		strategy, _ = strategyFor(DefaultAlgorithm)
	}

	raw := strategy.Compute(g, vp, opts, opts.RNG)
	raw = sanitize(g, raw, opts.Logger)

	return Normalize(g, raw, vp), StatusOK, nil
}

// sanitize replaces non-finite coordinates with the node's prior position
// and fills positions missing from the strategy output. Anomalies are
// logged, never escalated.
func sanitize(g *topo.Graph, r Result, logger *log.Logger) Result {
	for _, n := range g.Nodes() {
		p, ok := r[n.ID]
		if !ok {
			logger.Warn("strategy returned no position, keeping prior", "node", n.ID)
			r[n.ID] = n.Position
			continue
		}
		if !p.IsFinite() {
			logger.Warn("non-finite coordinate repaired", "node", n.ID, "x", p.X, "y", p.Y)
			r[n.ID] = n.Position
		}
	}
	return r
}

// jitter returns a random offset in ±(span × frac / 2), matching the
// de-clumping perturbations the strategies apply. It never changes level or
// ring assignments, only pixel positions.
func jitter(rng *rand.Rand, span, frac float64) float64 {
	return span * frac * (0.5 - rng.Float64())
}
