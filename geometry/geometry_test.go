package geometry

import (
	"testing"

	"pgregory.net/rapid"
)

func TestFromDrag(t *testing.T) {
	tests := []struct {
		name     string
		p0, p1   Point
		expected Rect
	}{
		{"top-left to bottom-right", Point{100, 100}, Point{300, 250}, Rect{100, 100, 200, 150}},
		{"bottom-right to top-left", Point{300, 250}, Point{100, 100}, Rect{100, 100, 200, 150}},
		{"bottom-left to top-right", Point{100, 250}, Point{300, 100}, Rect{100, 100, 200, 150}},
		{"top-right to bottom-left", Point{300, 100}, Point{100, 250}, Rect{100, 100, 200, 150}},
		{"zero drag", Point{50, 50}, Point{50, 50}, Rect{50, 50, 0, 0}},
		{"negative coordinates", Point{-20, -10}, Point{10, 5}, Rect{-20, -10, 30, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDrag(tt.p0, tt.p1); got != tt.expected {
				t.Errorf("FromDrag(%v, %v) = %v, want %v", tt.p0, tt.p1, got, tt.expected)
			}
		})
	}
}

// For any drag the normalized rectangle has the min corner and absolute spans.
func TestFromDragNormalization(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p0 := Point{
			X: rapid.IntRange(-10000, 10000).Draw(t, "x0"),
			Y: rapid.IntRange(-10000, 10000).Draw(t, "y0"),
		}
		p1 := Point{
			X: rapid.IntRange(-10000, 10000).Draw(t, "x1"),
			Y: rapid.IntRange(-10000, 10000).Draw(t, "y1"),
		}
		r := FromDrag(p0, p1)
		if r.X != min(p0.X, p1.X) || r.Y != min(p0.Y, p1.Y) {
			t.Fatalf("origin %d,%d not min corner of %v %v", r.X, r.Y, p0, p1)
		}
		if r.Width != abs(p1.X-p0.X) || r.Height != abs(p1.Y-p0.Y) {
			t.Fatalf("span %dx%d not |delta| of %v %v", r.Width, r.Height, p0, p1)
		}
		if r.Width < 0 || r.Height < 0 {
			t.Fatalf("negative span: %v", r)
		}
		// Drag direction must not matter.
		if FromDrag(p1, p0) != r {
			t.Fatalf("FromDrag not symmetric for %v %v", p0, p1)
		}
	})
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		w, h     int
		expected Point
	}{
		{"inside", Point{5, 5}, 10, 10, Point{5, 5}},
		{"left of canvas", Point{-3, 5}, 10, 10, Point{0, 5}},
		{"below canvas", Point{5, 42}, 10, 10, Point{5, 9}},
		{"both out", Point{-1, -1}, 10, 10, Point{0, 0}},
		{"far corner", Point{10, 10}, 10, 10, Point{9, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.p, tt.w, tt.h); got != tt.expected {
				t.Errorf("Clamp(%v, %d, %d) = %v, want %v", tt.p, tt.w, tt.h, got, tt.expected)
			}
		})
	}
}

func TestRadius(t *testing.T) {
	if r := Radius(Point{0, 0}, Point{3, 4}); r != 5 {
		t.Errorf("expected radius 5, got %d", r)
	}
	if r := Radius(Point{10, 10}, Point{10, 10}); r != 0 {
		t.Errorf("expected radius 0, got %d", r)
	}
}

func TestFitTransform(t *testing.T) {
	tr := FitTransform(2000, 1000, 1000, 1000)
	if tr.Scale != 0.5 {
		t.Errorf("expected scale 0.5, got %v", tr.Scale)
	}
	// Small images are never upscaled.
	tr = FitTransform(100, 100, 1000, 1000)
	if tr.Scale != 1 {
		t.Errorf("expected scale 1, got %v", tr.Scale)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := Transform{Scale: 1}
		p := Point{
			X: rapid.IntRange(0, 5000).Draw(t, "x"),
			Y: rapid.IntRange(0, 5000).Draw(t, "y"),
		}
		if got := tr.ToCanvas(tr.ToDisplay(p)); got != p {
			t.Fatalf("identity transform changed %v to %v", p, got)
		}
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
