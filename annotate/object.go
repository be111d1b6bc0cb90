// Package annotate holds the in-memory annotation model: an immutable base
// image plus an ordered list of committed annotation objects, and the pure
// rendering pass that composites them into frames.
package annotate

import (
	"image/color"

	"github.com/paulalicante/screenshot-tool/geometry"
)

// Object is a committed annotation. Each variant is immutable once committed;
// the renderer dispatches on the concrete type.
type Object interface {
	isObject()
}

// Highlight is a freehand semi-transparent stroke along a point path.
type Highlight struct {
	Points           []geometry.Point
	Color            color.NRGBA
	Width            int
	LockedHorizontal bool
}

// Line is a straight stroked segment.
type Line struct {
	Start            geometry.Point
	End              geometry.Point
	Color            color.NRGBA
	Width            int
	LockedHorizontal bool
}

// Circle is a stroked outline around a center point.
type Circle struct {
	Center geometry.Point
	Radius int
	Color  color.NRGBA
	Width  int
}

// Text is a string anchored at a point. Size is the font size in pixels.
type Text struct {
	Anchor  geometry.Point
	Content string
	Color   color.NRGBA
	Size    int
}

func (Highlight) isObject() {}
func (Line) isObject()      {}
func (Circle) isObject()    {}
func (Text) isObject()      {}

// valid reports whether an object carries usable geometry. Degenerate
// objects are rejected at commit time so the document never holds anything
// the renderer cannot paint.
func valid(obj Object) bool {
	switch o := obj.(type) {
	case Highlight:
		return len(o.Points) > 0 && o.Width > 0
	case Line:
		return o.Width > 0
	case Circle:
		return o.Radius >= 0 && o.Width > 0
	case Text:
		return o.Content != "" && o.Size > 0
	default:
		return false
	}
}
