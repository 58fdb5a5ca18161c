// Package geo provides the small geometric vocabulary shared by the layout
// strategies: points, rectangles, finite-distance helpers, and the
// orientation-based segment intersection test used for crossing counts.
package geo

import "math"

// MinDistance is the floor applied to inter-node distances before they are
// used as divisors. Coincident nodes would otherwise produce infinite forces.
const MinDistance = 0.1

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p with both components multiplied by s.
func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Length returns the Euclidean norm of p treated as a vector.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// IsFinite reports whether both components are finite numbers.
func (p Point) IsFinite() bool { return IsFinite(p.X) && IsFinite(p.Y) }

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Dist returns the distance between p and q, floored at [MinDistance]
// so callers can safely divide by it.
func Dist(p, q Point) float64 {
	return max(MinDistance, p.Sub(q).Length())
}

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// Rect is an axis-aligned rectangle identified by its min and max corners.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Bounds computes the bounding box over points expanded by the given sizes.
// Each point is treated as the top-left corner of a box of the matching size;
// sizes may be shorter than points, in which case missing entries count as
// zero-sized. Returns the zero Rect and false when points is empty.
func Bounds(points []Point, sizes []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for i, p := range points {
		var w, h float64
		if i < len(sizes) {
			w, h = sizes[i].X, sizes[i].Y
		}
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X+w)
		r.MaxY = max(r.MaxY, p.Y+h)
	}
	return r, true
}

// CCW reports whether the triple (a, b, c) makes a counter-clockwise turn.
// Collinear triples report false, which matches the strict crossing
// semantics used by [SegmentsIntersect].
func CCW(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether the open segments ab and cd cross.
// Segments that merely touch at an endpoint or overlap collinearly do not
// count as crossing.
func SegmentsIntersect(a, b, c, d Point) bool {
	return CCW(a, c, d) != CCW(b, c, d) && CCW(a, b, c) != CCW(a, b, d)
}
