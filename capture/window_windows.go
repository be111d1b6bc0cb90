//go:build windows

package capture

import (
	"github.com/lxn/win"

	"github.com/paulalicante/screenshot-tool/geometry"
)

// ForegroundWindow returns the handle of the currently focused window.
func ForegroundWindow() (uintptr, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return 0, ErrWindowGone
	}
	return uintptr(hwnd), nil
}

// windowBounds resolves the on-screen rectangle of a window by its HWND.
func windowBounds(handle uintptr) (geometry.Rect, error) {
	hwnd := win.HWND(handle)
	if !win.IsWindow(hwnd) {
		return geometry.Rect{}, ErrWindowGone
	}
	var rect win.RECT
	if !win.GetWindowRect(hwnd, &rect) {
		return geometry.Rect{}, ErrWindowGone
	}
	r := geometry.Rect{
		X:      int(rect.Left),
		Y:      int(rect.Top),
		Width:  int(rect.Right - rect.Left),
		Height: int(rect.Bottom - rect.Top),
	}
	if r.Empty() {
		return geometry.Rect{}, ErrWindowGone
	}
	return r, nil
}
