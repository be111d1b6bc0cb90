package annotate

import (
	"errors"
	"image"
	"image/draw"
)

// undoDepth bounds the snapshot stack. Snapshots only copy slice headers
// (objects themselves are immutable), so the memory cost per entry is small.
const undoDepth = 64

var ErrInvalidObject = errors.New("annotate: invalid annotation object")

// Document is the annotation model for one editing session: the base image
// and the ordered sequence of committed objects. Insertion order is paint
// order; the front-most object is last. The document is mutated only through
// Commit and Undo, both called from the editor's event goroutine.
type Document struct {
	base    *image.RGBA
	objects []Object
	undo    [][]Object
}

// NewDocument copies src into an owned RGBA base layer. The caller must not
// retain a reference through which src could change afterwards; the document
// never mutates the base in place.
func NewDocument(src image.Image) *Document {
	b := src.Bounds()
	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(base, base.Bounds(), src, b.Min, draw.Src)
	return &Document{base: base}
}

// Base returns the base layer. Callers treat it as read-only.
func (d *Document) Base() *image.RGBA { return d.base }

// Width and Height report the canvas dimensions in pixels.
func (d *Document) Width() int  { return d.base.Bounds().Dx() }
func (d *Document) Height() int { return d.base.Bounds().Dy() }

// Objects returns the committed objects in paint order. The returned slice
// is a copy; mutating it does not affect the document.
func (d *Document) Objects() []Object {
	return append([]Object(nil), d.objects...)
}

// Len returns the number of committed objects.
func (d *Document) Len() int { return len(d.objects) }

// Commit appends an object and pushes an undo snapshot of the prior state.
func (d *Document) Commit(obj Object) error {
	if !valid(obj) {
		return ErrInvalidObject
	}
	snapshot := append([]Object(nil), d.objects...)
	if len(d.undo) == undoDepth {
		copy(d.undo, d.undo[1:])
		d.undo = d.undo[:undoDepth-1]
	}
	d.undo = append(d.undo, snapshot)
	d.objects = append(d.objects, obj)
	return nil
}

// Undo restores the document to the state before the most recent commit.
// It reports false when there is nothing to undo.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	d.objects = d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (d *Document) CanUndo() bool { return len(d.undo) > 0 }
