package ui

import (
	"context"
	"image"
	"log"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/paulalicante/screenshot-tool/capture"
	"github.com/paulalicante/screenshot-tool/geometry"
	"github.com/paulalicante/screenshot-tool/selector"
)

// Overlay is the fullscreen region picker. It captures the whole virtual
// screen first and lets the user drag a rectangle over the frozen frame, so
// the selected pixels are exactly what was on screen at trigger time.
type Overlay struct {
	app     fyne.App
	minSpan int

	lastCapture *image.RGBA
}

// NewOverlay creates the overlay selector. minSpan <= 0 selects the default.
func NewOverlay(a fyne.App, minSpan int) *Overlay {
	return &Overlay{app: a, minSpan: minSpan}
}

// LastCapture returns the frozen full-screen frame from the most recent
// Select call. The selected region is cropped from this frame, never
// recaptured.
func (o *Overlay) LastCapture() *image.RGBA { return o.lastCapture }

type selResult struct {
	rect      geometry.Rect
	cancelled bool
}

// Select captures the screen, shows the overlay, and blocks until the user
// finishes or ctx is cancelled. Safe to call from any goroutine except the
// UI goroutine.
func (o *Overlay) Select(ctx context.Context) (geometry.Rect, bool, error) {
	screen, err := capture.FullScreen()
	if err != nil {
		return geometry.Rect{}, false, err
	}
	o.lastCapture = screen

	resCh := make(chan selResult, 1)
	var win fyne.Window
	fyne.DoAndWait(func() {
		win = o.open(screen, resCh)
	})

	select {
	case <-ctx.Done():
		fyne.Do(win.Close)
		return geometry.Rect{}, false, ctx.Err()
	case res := <-resCh:
		fyne.Do(win.Close)
		if res.cancelled {
			log.Printf("Overlay: selection cancelled")
		}
		return res.rect, res.cancelled, nil
	}
}

func (o *Overlay) open(screen *image.RGBA, resCh chan<- selResult) fyne.Window {
	w := o.app.NewWindow("Select Region")
	w.SetPadded(false)

	ov := newOverlayCanvas(screen, selector.NewTracker(o.minSpan), resCh)
	w.SetContent(ov)
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			ov.cancel()
		}
	})
	w.SetCloseIntercept(ov.cancel)
	w.SetFullScreen(true)
	w.Show()
	return w
}

// overlayCanvas draws the dimmed frame with the live selection cut out at
// full brightness, and feeds pointer events into the tracker.
type overlayCanvas struct {
	widget.BaseWidget

	screen  *image.RGBA
	dimmed  *image.RGBA
	tracker *selector.Tracker
	resCh   chan<- selResult
	sent    bool

	raster *fynecanvas.Raster
}

func newOverlayCanvas(screen *image.RGBA, tr *selector.Tracker, resCh chan<- selResult) *overlayCanvas {
	oc := &overlayCanvas{
		screen:  screen,
		dimmed:  dim(screen),
		tracker: tr,
		resCh:   resCh,
	}
	tr.Begin()
	oc.raster = fynecanvas.NewRaster(oc.draw)
	oc.raster.ScaleMode = fynecanvas.ImageScalePixels
	oc.ExtendBaseWidget(oc)
	return oc
}

func (oc *overlayCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(oc.raster)
}

// screenPoint maps a widget position onto the captured frame. The overlay is
// fullscreen, so the widget spans the whole frame at display scale.
func (oc *overlayCanvas) screenPoint(pos fyne.Position) geometry.Point {
	size := oc.Size()
	b := oc.screen.Bounds()
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.Point{}
	}
	return geometry.Point{
		X: int(float64(pos.X) * float64(b.Dx()) / float64(size.Width)),
		Y: int(float64(pos.Y) * float64(b.Dy()) / float64(size.Height)),
	}
}

func (oc *overlayCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	oc.tracker.PointerDown(oc.screenPoint(ev.Position))
	oc.raster.Refresh()
}

func (oc *overlayCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	rect, ok := oc.tracker.PointerUp(oc.screenPoint(ev.Position))
	oc.finish(selResult{rect: rect, cancelled: !ok})
}

func (oc *overlayCanvas) Dragged(ev *fyne.DragEvent) {
	oc.tracker.PointerMove(oc.screenPoint(ev.Position))
	oc.raster.Refresh()
}

func (oc *overlayCanvas) DragEnd() {}

func (oc *overlayCanvas) cancel() {
	oc.tracker.Cancel()
	oc.finish(selResult{cancelled: true})
}

func (oc *overlayCanvas) finish(res selResult) {
	if oc.sent {
		return
	}
	oc.sent = true
	oc.resCh <- res
}

func (oc *overlayCanvas) draw(w, h int) image.Image {
	frame := image.NewRGBA(oc.dimmed.Bounds())
	copy(frame.Pix, oc.dimmed.Pix)

	if live, ok := oc.tracker.Live(); ok && !live.Empty() {
		// full-brightness pixels inside the live rectangle
		r := live.ImageRect().Intersect(frame.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			si := oc.screen.PixOffset(r.Min.X, y)
			copy(frame.Pix[si:si+r.Dx()*4], oc.screen.Pix[si:si+r.Dx()*4])
		}
		drawBorder(frame, r)
	}

	b := frame.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return frame
	}
	return scaleNearest(frame, w, h)
}

// dim halves the brightness of every pixel.
func dim(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		out.Pix[i] = src.Pix[i] / 2
		out.Pix[i+1] = src.Pix[i+1] / 2
		out.Pix[i+2] = src.Pix[i+2] / 2
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

// drawBorder traces a one pixel white rectangle.
func drawBorder(dst *image.RGBA, r image.Rectangle) {
	set := func(x, y int) {
		if image.Pt(x, y).In(dst.Bounds()) {
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 255, 255, 255, 255
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}
