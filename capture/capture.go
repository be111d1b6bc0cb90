// Package capture acquires raw screen bitmaps. It wraps the platform
// screenshot primitives behind the three capture modes the rest of the
// application understands: a region, the full virtual screen, or one window.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/paulalicante/screenshot-tool/geometry"
)

// Mode identifies the capture source.
type Mode string

const (
	ModeRegion Mode = "region"
	ModeFull   Mode = "full"
	ModeWindow Mode = "window"
)

// ParseMode validates a mode string from config, CLI or wire input.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRegion, ModeFull, ModeWindow:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("capture: unknown mode %q", s)
	}
}

// FullScreen captures the union of all active displays.
func FullScreen() (*image.RGBA, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, &Error{Mode: ModeFull, Err: ErrNoDisplay}
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	img, err := screenshot.CaptureRect(union)
	if err != nil {
		return nil, &Error{Mode: ModeFull, Err: err}
	}
	return img, nil
}

// Region captures a screen rectangle in virtual-screen coordinates.
// Degenerate rectangles are rejected before touching the platform API.
func Region(r geometry.Rect) (*image.RGBA, error) {
	if r.Empty() {
		return nil, &Error{Mode: ModeRegion, Err: fmt.Errorf("%w: %dx%d", ErrDegenerateRegion, r.Width, r.Height)}
	}
	img, err := screenshot.CaptureRect(r.ImageRect())
	if err != nil {
		return nil, &Error{Mode: ModeRegion, Err: err}
	}
	return img, nil
}

// Window captures the window identified by the platform handle. Support is
// platform-specific; unsupported platforms return ErrWindowUnsupported.
func Window(handle uintptr) (*image.RGBA, error) {
	r, err := windowBounds(handle)
	if err != nil {
		return nil, &Error{Mode: ModeWindow, Err: err}
	}
	img, err := screenshot.CaptureRect(r.ImageRect())
	if err != nil {
		// The window may have closed between bounds lookup and capture.
		return nil, &Error{Mode: ModeWindow, Err: err}
	}
	return img, nil
}

// PrimaryBounds returns the bounds of the primary display.
func PrimaryBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	return screenshot.GetDisplayBounds(0), nil
}

// VirtualBounds returns the union rectangle covering every display.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}
