//go:build !windows

package capture

import "github.com/paulalicante/screenshot-tool/geometry"

func ForegroundWindow() (uintptr, error) {
	return 0, ErrWindowUnsupported
}

func windowBounds(handle uintptr) (geometry.Rect, error) {
	return geometry.Rect{}, ErrWindowUnsupported
}
