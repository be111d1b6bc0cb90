package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/paulalicante/screenshot-tool/geometry"
)

// HighlightAlpha is the fixed alpha applied to highlight strokes. The stroke
// region is pre-composited into a single mask layer so self-intersections do
// not darken beyond one layer of this alpha.
const HighlightAlpha = 100

// Render composites the document into a displayable frame: base image, then
// every committed object in paint order, then the in-progress geometry (live
// may be nil). The document is not modified.
func Render(doc *Document, live Object) *image.RGBA {
	dst := image.NewRGBA(doc.base.Bounds())
	draw.Draw(dst, dst.Bounds(), doc.base, doc.base.Bounds().Min, draw.Src)
	for _, obj := range doc.objects {
		paintObject(dst, obj)
	}
	if live != nil && valid(live) {
		paintObject(dst, live)
	}
	return dst
}

// Flatten produces the final exportable bitmap: identical to Render without
// the in-progress layer. It is a pure compositing pass and cannot fail on a
// well-formed document.
func Flatten(doc *Document) *image.RGBA {
	return Render(doc, nil)
}

func paintObject(dst *image.RGBA, obj Object) {
	switch o := obj.(type) {
	case Highlight:
		mask := strokeMask(dst.Bounds(), o.Points, o.Width)
		tint := o.Color
		tint.A = HighlightAlpha
		draw.DrawMask(dst, dst.Bounds(), image.NewUniform(tint), image.Point{}, mask, image.Point{}, draw.Over)
	case Line:
		mask := strokeMask(dst.Bounds(), []geometry.Point{o.Start, o.End}, o.Width)
		solid := o.Color
		solid.A = 0xff
		draw.DrawMask(dst, dst.Bounds(), image.NewUniform(solid), image.Point{}, mask, image.Point{}, draw.Over)
	case Circle:
		mask := ringMask(dst.Bounds(), o.Center, o.Radius, o.Width)
		solid := o.Color
		solid.A = 0xff
		draw.DrawMask(dst, dst.Bounds(), image.NewUniform(solid), image.Point{}, mask, image.Point{}, draw.Over)
	case Text:
		paintText(dst, o)
	}
}

// strokeMask rasterizes a stroke path into a binary coverage mask by
// stamping discs along each segment. Single-point paths produce one disc.
func strokeMask(bounds image.Rectangle, pts []geometry.Point, width int) *image.Alpha {
	mask := image.NewAlpha(bounds)
	r := width / 2
	if len(pts) == 1 {
		stampDisc(mask, pts[0].X, pts[0].Y, r)
		return mask
	}
	for i := 1; i < len(pts); i++ {
		stampSegment(mask, pts[i-1], pts[i], r)
	}
	return mask
}

func stampSegment(mask *image.Alpha, a, b geometry.Point, r int) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := maxInt(absInt(dx), absInt(dy))
	if steps == 0 {
		stampDisc(mask, a.X, a.Y, r)
		return
	}
	for i := 0; i <= steps; i++ {
		x := a.X + dx*i/steps
		y := a.Y + dy*i/steps
		stampDisc(mask, x, y, r)
	}
}

func stampDisc(mask *image.Alpha, cx, cy, r int) {
	b := mask.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			ddx, ddy := x-cx, y-cy
			if ddx*ddx+ddy*ddy <= r*r {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
}

// ringMask rasterizes a stroked circle outline as a distance band around the
// radius.
func ringMask(bounds image.Rectangle, center geometry.Point, radius, width int) *image.Alpha {
	mask := image.NewAlpha(bounds)
	half := float64(width) / 2
	outer := float64(radius) + half
	inner := float64(radius) - half
	if inner < 0 {
		inner = 0
	}
	lim := int(math.Ceil(outer)) + 1
	b := mask.Bounds()
	for y := center.Y - lim; y <= center.Y+lim; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := center.X - lim; x <= center.X+lim; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			d := math.Hypot(float64(x-center.X), float64(y-center.Y))
			if d >= inner-0.5 && d <= outer+0.5 {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}

var (
	fontOnce   sync.Once
	fontParsed *sfnt.Font
	fontErr    error

	faceMu sync.Mutex
	faces  = map[int]font.Face{}
)

func fontFace(size int) (font.Face, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fontParsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	faces[size] = f
	return f, nil
}

func paintText(dst *image.RGBA, o Text) {
	face, err := fontFace(o.Size)
	if err != nil {
		return
	}
	solid := o.Color
	solid.A = 0xff
	d := &font.Drawer{Dst: dst, Face: face}
	// 1px dark outline around the glyphs keeps text readable on busy
	// screenshots, matching the editor's visual treatment.
	outline := image.NewUniform(color.NRGBA{A: 150})
	for _, off := range [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		d.Src = outline
		d.Dot = fixed.P(o.Anchor.X+off[0], o.Anchor.Y+off[1])
		d.DrawString(o.Content)
	}
	d.Src = image.NewUniform(solid)
	d.Dot = fixed.P(o.Anchor.X, o.Anchor.Y)
	d.DrawString(o.Content)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
