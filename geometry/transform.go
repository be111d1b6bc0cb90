package geometry

import "math"

// Transform maps between canvas coordinates (base image pixels) and display
// coordinates (the possibly downscaled view the editor window shows).
// Scale is display pixels per canvas pixel, always in (0, 1].
type Transform struct {
	Scale float64
}

// FitTransform computes the downscale needed to fit an image of imgW x imgH
// into maxW x maxH. Images that already fit are shown 1:1.
func FitTransform(imgW, imgH, maxW, maxH int) Transform {
	if imgW <= 0 || imgH <= 0 {
		return Transform{Scale: 1}
	}
	s := math.Min(1, math.Min(float64(maxW)/float64(imgW), float64(maxH)/float64(imgH)))
	if s <= 0 {
		s = 1
	}
	return Transform{Scale: s}
}

// ToCanvas converts a display-space point into canvas space.
func (t Transform) ToCanvas(p Point) Point {
	return Point{
		X: int(float64(p.X) / t.Scale),
		Y: int(float64(p.Y) / t.Scale),
	}
}

// ToDisplay converts a canvas-space point into display space.
func (t Transform) ToDisplay(p Point) Point {
	return Point{
		X: int(float64(p.X) * t.Scale),
		Y: int(float64(p.Y) * t.Scale),
	}
}

// DisplaySize returns the display dimensions of a w x h canvas.
func (t Transform) DisplaySize(w, h int) (int, int) {
	return int(float64(w) * t.Scale), int(float64(h) * t.Scale)
}
