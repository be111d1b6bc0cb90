// Package tray shows the resident system tray icon and menu. It only works
// when the running fyne app is a desktop app; elsewhere Setup is a no-op.
package tray

import (
	_ "embed"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

//go:embed icon.svg
var iconSVG []byte

// Handlers are the menu actions wired by the event loop.
type Handlers struct {
	CaptureRegion func()
	CaptureFull   func()
	CaptureWindow func()
	EditLast      func()
	Quit          func()
}

// Tray wraps the desktop system tray menu.
type Tray struct {
	app    fyne.App
	menu   *fyne.Menu
	status *fyne.MenuItem
}

// Setup installs the tray icon and menu. Returns nil when the platform has
// no system tray.
func Setup(a fyne.App, h Handlers) *Tray {
	desk, ok := a.(desktop.App)
	if !ok {
		log.Printf("Tray: no system tray on this platform")
		return nil
	}

	t := &Tray{app: a}
	t.status = fyne.NewMenuItem("Screenshot Tool: idle", nil)
	t.status.Disabled = true

	items := []*fyne.MenuItem{
		t.status,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Capture Region", h.CaptureRegion),
		fyne.NewMenuItem("Capture Full Screen", h.CaptureFull),
	}
	if h.CaptureWindow != nil {
		items = append(items, fyne.NewMenuItem("Capture Window", h.CaptureWindow))
	}
	if h.EditLast != nil {
		items = append(items, fyne.NewMenuItem("Edit Last Screenshot", h.EditLast))
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", h.Quit),
	)

	t.menu = fyne.NewMenu("Screenshot Tool", items...)
	desk.SetSystemTrayMenu(t.menu)
	desk.SetSystemTrayIcon(fyne.NewStaticResource("icon.svg", iconSVG))
	log.Printf("Tray: menu installed")
	return t
}

// SetStatus updates the disabled status line at the top of the menu. Safe to
// call from any non-UI goroutine.
func (t *Tray) SetStatus(text string) {
	if t == nil {
		return
	}
	fyne.Do(func() {
		t.status.Label = text
		t.menu.Refresh()
	})
}

// Notify shows a desktop notification.
func Notify(a fyne.App, title, message string) {
	a.SendNotification(fyne.NewNotification(title, message))
}
