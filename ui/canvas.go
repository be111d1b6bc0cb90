package ui

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/paulalicante/screenshot-tool/editor"
	"github.com/paulalicante/screenshot-tool/geometry"
)

// annotCanvas presents one editing session's live preview and feeds pointer
// events into it. Every frame comes straight from the session renderer, so
// what the user sees is exactly what a save would flatten.
type annotCanvas struct {
	widget.BaseWidget

	sess   *editor.Session
	tf     geometry.Transform
	raster *fynecanvas.Raster
	size   fyne.Size

	// onStroke runs after any event that may have changed the document
	onStroke func()
}

func newAnnotCanvas(sess *editor.Session, tf geometry.Transform) *annotCanvas {
	c := &annotCanvas{sess: sess, tf: tf}
	dw, dh := tf.DisplaySize(sess.Document().Width(), sess.Document().Height())
	c.size = fyne.NewSize(float32(dw), float32(dh))
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels
	c.raster.SetMinSize(c.size)
	c.ExtendBaseWidget(c)
	return c
}

func (c *annotCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *annotCanvas) MinSize() fyne.Size { return c.size }

// canvasPoint maps a widget position onto bitmap pixel coordinates.
func (c *annotCanvas) canvasPoint(pos fyne.Position) geometry.Point {
	return c.tf.ToCanvas(geometry.Point{X: int(pos.X), Y: int(pos.Y)})
}

func (c *annotCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.sess.HandlePointerDown(c.canvasPoint(ev.Position))
	c.raster.Refresh()
}

func (c *annotCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.sess.HandlePointerUp(c.canvasPoint(ev.Position))
	c.raster.Refresh()
	if c.onStroke != nil {
		c.onStroke()
	}
}

func (c *annotCanvas) Dragged(ev *fyne.DragEvent) {
	c.sess.HandlePointerMove(c.canvasPoint(ev.Position))
	c.raster.Refresh()
}

// DragEnd is a no-op; the commit happens in MouseUp where the release
// position is known.
func (c *annotCanvas) DragEnd() {}

func (c *annotCanvas) draw(w, h int) image.Image {
	frame := c.sess.Render()
	b := frame.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return frame
	}
	return scaleNearest(frame, w, h)
}

// scaleNearest resizes with nearest-neighbor sampling. Annotation previews
// favor crisp pixels over smoothing.
func scaleNearest(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sb.Dy()/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sb.Dx()/w
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}
