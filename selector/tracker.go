package selector

import "github.com/paulalicante/screenshot-tool/geometry"

// Tracker is the overlay's drag state machine, kept free of any UI types so
// it can be driven and tested without a window. The platform overlay
// translates its pointer events into these calls and draws the rectangle
// returned by Live.
type Tracker struct {
	minSpan  int
	active   bool
	dragging bool
	anchor   geometry.Point
	current  geometry.Point
}

// NewTracker creates a tracker. minSpan <= 0 selects the default.
func NewTracker(minSpan int) *Tracker {
	if minSpan <= 0 {
		minSpan = MinSelectionSpan
	}
	return &Tracker{minSpan: minSpan}
}

// Begin activates the tracker for a new selection.
func (t *Tracker) Begin() {
	t.active = true
	t.dragging = false
}

// Active reports whether a selection is in progress.
func (t *Tracker) Active() bool { return t.active }

// PointerDown records the drag anchor.
func (t *Tracker) PointerDown(p geometry.Point) {
	if !t.active {
		return
	}
	t.dragging = true
	t.anchor = p
	t.current = p
}

// PointerMove updates the live corner while dragging.
func (t *Tracker) PointerMove(p geometry.Point) {
	if !t.dragging {
		return
	}
	t.current = p
}

// Live returns the current normalized selection rectangle for the overlay's
// preview border. ok is false before the first pointer-down.
func (t *Tracker) Live() (geometry.Rect, bool) {
	if !t.dragging {
		return geometry.Rect{}, false
	}
	return geometry.FromDrag(t.anchor, t.current), true
}

// PointerUp finishes the drag and deactivates the tracker. ok is false when
// the selection never started or is below the minimum span; such releases
// are no-op cancellations rather than captures.
func (t *Tracker) PointerUp(p geometry.Point) (geometry.Rect, bool) {
	if !t.dragging {
		t.active = false
		return geometry.Rect{}, false
	}
	t.current = p
	r := geometry.FromDrag(t.anchor, t.current)
	t.active = false
	t.dragging = false
	if !r.SpanAtLeast(t.minSpan) {
		return geometry.Rect{}, false
	}
	return r, true
}

// Cancel aborts the selection with no result (Escape).
func (t *Tracker) Cancel() {
	t.active = false
	t.dragging = false
}
