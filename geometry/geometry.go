// Package geometry provides the coordinate types and pure conversion
// functions shared by the region selector, the annotation editor and the
// renderer. Nothing in here holds state.
package geometry

import (
	"image"
	"math"
)

// Point is a pixel position in some coordinate space (screen, canvas or
// display space; the caller keeps track of which).
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle with non-negative width and height.
// Zero-area rectangles are representable; callers that require a usable
// selection filter them with SpanAtLeast.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// FromDrag normalizes the rectangle spanned by two drag endpoints so that
// width and height are non-negative regardless of drag direction.
func FromDrag(p0, p1 Point) Rect {
	x0, x1 := p0.X, p1.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := p0.Y, p1.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// SpanAtLeast reports whether both dimensions reach the given minimum span.
func (r Rect) SpanAtLeast(min int) bool { return r.Width >= min && r.Height >= min }

// ImageRect converts to the stdlib image.Rectangle form.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromImageRect converts a canonicalized image.Rectangle.
func FromImageRect(ir image.Rectangle) Rect {
	ir = ir.Canon()
	return Rect{X: ir.Min.X, Y: ir.Min.Y, Width: ir.Dx(), Height: ir.Dy()}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Clamp constrains p to the half-open pixel grid [0,w) x [0,h).
// Used for the commit-at-clamped-position policy when a drag is released
// outside the canvas.
func Clamp(p Point, w, h int) Point {
	if p.X < 0 {
		p.X = 0
	} else if p.X > w-1 {
		p.X = w - 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y > h-1 {
		p.Y = h - 1
	}
	return p
}

// Radius returns the rounded Euclidean distance between the two points.
// The circle tool derives its radius from the drag center and edge points.
func Radius(center, edge Point) int {
	dx := float64(edge.X - center.X)
	dy := float64(edge.Y - center.Y)
	return int(math.Round(math.Hypot(dx, dy)))
}
