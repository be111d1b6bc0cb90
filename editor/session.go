// Package editor implements the annotation editor core: the tool state
// machine that turns pointer events into committed annotation objects, the
// editing session that owns one annotation document, and the session manager
// the UI shell talks to. Everything here runs on the single event goroutine;
// no locking is needed or present.
package editor

import (
	"image"
	"log"

	"github.com/google/uuid"

	"github.com/paulalicante/screenshot-tool/annotate"
	"github.com/paulalicante/screenshot-tool/geometry"
)

// State is the tool state machine's current state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

// minCircleRadius filters accidental clicks with the circle tool: a drag
// that never leaves the immediate neighborhood of the center commits nothing.
const minCircleRadius = 2

// Session is one annotation editing session over a single captured image.
// It owns the document exclusively from open until save or cancel.
type Session struct {
	id    uuid.UUID
	doc   *annotate.Document
	tool  Tool
	style Style
	state State

	// in-progress drag geometry, meaningful only in StateDragging
	start geometry.Point
	end   geometry.Point
	path  []geometry.Point

	// OnTextPrompt is invoked when the text tool is clicked; the UI opens a
	// modal entry and calls CommitText on confirm, or nothing on cancel.
	OnTextPrompt func(anchor geometry.Point)
}

// NewSession opens an editing session over base.
func NewSession(base image.Image) *Session {
	return &Session{
		id:    uuid.New(),
		doc:   annotate.NewDocument(base),
		tool:  ToolHighlight,
		style: DefaultStyle(),
	}
}

func (s *Session) ID() uuid.UUID                { return s.id }
func (s *Session) Document() *annotate.Document { return s.doc }
func (s *Session) Tool() Tool                   { return s.tool }
func (s *Session) Style() Style                 { return s.style }
func (s *Session) State() State                 { return s.state }

// SelectTool switches the active tool. Switching mid-drag is a no-op: the
// in-progress stroke keeps its tool until it is committed or aborted.
func (s *Session) SelectTool(t Tool) {
	if s.state == StateDragging {
		log.Printf("Editor: ignoring tool switch to %s during drag", t)
		return
	}
	s.tool = t
}

// SetStyle replaces the current stroke settings.
func (s *Session) SetStyle(st Style) {
	if st.Width <= 0 {
		st.Width = s.style.Width
	}
	if st.FontSize <= 0 {
		st.FontSize = s.style.FontSize
	}
	s.style = st
}

// HandlePointerDown starts a drag for the shape tools, or requests a text
// prompt for the text tool. Points are clamped to the canvas.
func (s *Session) HandlePointerDown(p geometry.Point) {
	p = s.clamp(p)
	if s.tool == ToolText {
		if s.OnTextPrompt != nil {
			s.OnTextPrompt(p)
		}
		return
	}
	if s.state == StateDragging {
		return
	}
	s.state = StateDragging
	s.start = p
	s.end = p
	s.path = s.path[:0]
	s.path = append(s.path, p)
}

// HandlePointerMove extends the in-progress geometry. Outside a drag it is
// ignored.
func (s *Session) HandlePointerMove(p geometry.Point) {
	if s.state != StateDragging {
		return
	}
	p = s.lock(s.clamp(p))
	s.end = p
	if s.tool == ToolHighlight {
		if last := s.path[len(s.path)-1]; last != p {
			s.path = append(s.path, p)
		}
	}
}

// HandlePointerUp commits the in-progress stroke as an immutable object.
// Releases outside the canvas arrive already clamped (commit-at-clamped-
// position policy), so the committed geometry always lies within bounds.
func (s *Session) HandlePointerUp(p geometry.Point) {
	if s.state != StateDragging {
		return
	}
	s.HandlePointerMove(p)
	obj := s.buildObject()
	s.resetDrag()
	if obj == nil {
		return
	}
	if err := s.doc.Commit(obj); err != nil {
		log.Printf("Editor: dropping degenerate %s commit: %v", s.tool, err)
	}
}

// AbortStroke discards the in-progress geometry without committing
// (Escape during a drag).
func (s *Session) AbortStroke() {
	if s.state != StateDragging {
		return
	}
	log.Printf("Editor: aborting in-progress %s stroke", s.tool)
	s.resetDrag()
}

// CommitText commits a text annotation at the given anchor. Empty input is
// the modal's cancel path and commits nothing.
func (s *Session) CommitText(anchor geometry.Point, content string) {
	if content == "" {
		return
	}
	obj := annotate.Text{
		Anchor:  s.clamp(anchor),
		Content: content,
		Color:   s.style.Color,
		Size:    s.style.FontSize,
	}
	if err := s.doc.Commit(obj); err != nil {
		log.Printf("Editor: text commit rejected: %v", err)
	}
}

// Undo reverts the most recent commit. It has no effect during a drag.
func (s *Session) Undo() bool {
	if s.state == StateDragging {
		return false
	}
	return s.doc.Undo()
}

// LiveObject returns the uncommitted in-progress geometry styled exactly as
// it will be once committed, or nil outside a drag.
func (s *Session) LiveObject() annotate.Object {
	if s.state != StateDragging {
		return nil
	}
	return s.buildObject()
}

// Render produces the live preview frame: document plus in-progress stroke.
func (s *Session) Render() *image.RGBA {
	return annotate.Render(s.doc, s.LiveObject())
}

// Save flattens the document into the final bitmap. Flatten is total over
// well-formed documents; persistence failures are the caller's concern and
// leave the session open for retry.
func (s *Session) Save() *image.RGBA {
	return annotate.Flatten(s.doc)
}

func (s *Session) buildObject() annotate.Object {
	switch s.tool {
	case ToolHighlight:
		return annotate.Highlight{
			Points:           append([]geometry.Point(nil), s.path...),
			Color:            s.style.Color,
			Width:            s.style.Width,
			LockedHorizontal: s.style.LockedHorizontal,
		}
	case ToolLine:
		return annotate.Line{
			Start:            s.start,
			End:              s.lock(s.end),
			Color:            s.style.Color,
			Width:            s.style.Width,
			LockedHorizontal: s.style.LockedHorizontal,
		}
	case ToolCircle:
		r := geometry.Radius(s.start, s.end)
		if r < minCircleRadius {
			return nil
		}
		return annotate.Circle{
			Center: s.start,
			Radius: r,
			Color:  s.style.Color,
			Width:  s.style.Width,
		}
	default:
		return nil
	}
}

func (s *Session) resetDrag() {
	s.state = StateIdle
	s.path = nil
	s.start = geometry.Point{}
	s.end = geometry.Point{}
}

func (s *Session) clamp(p geometry.Point) geometry.Point {
	return geometry.Clamp(p, s.doc.Width(), s.doc.Height())
}

// lock applies the locked-horizontal constraint: the end point's vertical
// coordinate is forced to the start point's, both for the live preview and
// at commit time.
func (s *Session) lock(p geometry.Point) geometry.Point {
	if s.style.LockedHorizontal && (s.tool == ToolHighlight || s.tool == ToolLine) {
		p.Y = s.start.Y
	}
	return p
}
