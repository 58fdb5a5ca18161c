package geo

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{"UnitX", Point{0, 0}, Point{1, 0}, 1},
		{"Diagonal", Point{0, 0}, Point{3, 4}, 5},
		{"Coincident", Point{2, 2}, Point{2, 2}, MinDistance},
		{"NearlyCoincident", Point{0, 0}, Point{0.01, 0}, MinDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dist(tt.p, tt.q); got != tt.want {
				t.Errorf("Dist(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if IsFinite(math.NaN()) {
		t.Error("NaN should not be finite")
	}
	if IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("infinities should not be finite")
	}
	if !IsFinite(0) || !IsFinite(-1e300) {
		t.Error("ordinary values should be finite")
	}

	if (Point{X: math.NaN(), Y: 0}).IsFinite() {
		t.Error("point with NaN component should not be finite")
	}
	if !(Point{X: 1, Y: 2}).IsFinite() {
		t.Error("ordinary point should be finite")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		want       float64
	}{
		{"Below", -5, 0, 10, 0},
		{"Inside", 5, 0, 10, 5},
		{"Above", 15, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 10}
	c := Point{0, 10}
	d := Point{10, 0}

	tests := []struct {
		name       string
		p1, p2     Point
		p3, p4     Point
		want       bool
	}{
		{"CrossingDiagonals", a, b, c, d, true},
		{"ConvexSides", a, c, b, d, false},
		{"Parallel", Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5}, false},
		{"SharedEndpointTouch", a, b, b, d, false},
		{"TShapedTouch", Point{0, 0}, Point{10, 0}, Point{5, 0}, Point{5, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.p1, tt.p2, tt.p3, tt.p4); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		if _, ok := Bounds(nil, nil); ok {
			t.Error("Bounds of no points should report ok=false")
		}
	})

	t.Run("WithSizes", func(t *testing.T) {
		points := []Point{{0, 0}, {100, 50}}
		sizes := []Point{{10, 10}, {20, 20}}
		r, ok := Bounds(points, sizes)
		if !ok {
			t.Fatal("Bounds returned ok=false")
		}
		if r.MinX != 0 || r.MinY != 0 || r.MaxX != 120 || r.MaxY != 70 {
			t.Errorf("Bounds = %+v, want {0 0 120 70}", r)
		}
		if w, h := r.Width(), r.Height(); w != 120 || h != 70 {
			t.Errorf("Width/Height = %v/%v, want 120/70", w, h)
		}
		if c := r.Center(); c.X != 60 || c.Y != 35 {
			t.Errorf("Center = %v, want {60 35}", c)
		}
	})
}
