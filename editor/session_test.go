package editor

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/paulalicante/screenshot-tool/annotate"
	"github.com/paulalicante/screenshot-tool/geometry"
)

func newTestSession(w, h int) *Session {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 3), B: 64, A: 255})
		}
	}
	return NewSession(img)
}

func drag(s *Session, pts ...geometry.Point) {
	s.HandlePointerDown(pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		s.HandlePointerMove(p)
	}
	s.HandlePointerUp(pts[len(pts)-1])
}

func TestHighlightDragCommits(t *testing.T) {
	s := newTestSession(100, 100)
	drag(s, geometry.Point{X: 10, Y: 20}, geometry.Point{X: 30, Y: 22}, geometry.Point{X: 50, Y: 25})

	objs := s.Document().Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 committed object, got %d", len(objs))
	}
	hl, ok := objs[0].(annotate.Highlight)
	if !ok {
		t.Fatalf("expected Highlight, got %T", objs[0])
	}
	if len(hl.Points) != 3 {
		t.Errorf("expected 3 path points, got %d", len(hl.Points))
	}
	if s.State() != StateIdle {
		t.Error("session did not return to Idle after release")
	}
}

func TestLineDragCommits(t *testing.T) {
	s := newTestSession(100, 100)
	s.SelectTool(ToolLine)
	drag(s, geometry.Point{X: 10, Y: 10}, geometry.Point{X: 80, Y: 60})

	objs := s.Document().Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	ln := objs[0].(annotate.Line)
	if ln.Start != (geometry.Point{X: 10, Y: 10}) || ln.End != (geometry.Point{X: 80, Y: 60}) {
		t.Errorf("unexpected line geometry: %+v", ln)
	}
}

func TestCircleDragCommitsRadius(t *testing.T) {
	s := newTestSession(100, 100)
	s.SelectTool(ToolCircle)
	drag(s, geometry.Point{X: 50, Y: 50}, geometry.Point{X: 53, Y: 54})

	objs := s.Document().Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	c := objs[0].(annotate.Circle)
	if c.Center != (geometry.Point{X: 50, Y: 50}) || c.Radius != 5 {
		t.Errorf("unexpected circle: %+v", c)
	}
}

func TestCircleClickWithoutDragCommitsNothing(t *testing.T) {
	s := newTestSession(100, 100)
	s.SelectTool(ToolCircle)
	drag(s, geometry.Point{X: 50, Y: 50}, geometry.Point{X: 50, Y: 50})
	if s.Document().Len() != 0 {
		t.Error("zero-radius circle must not be committed")
	}
}

// Undo is the exact inverse of the most recent commit.
func TestUndoInverseOfCommit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestSession(200, 200)
		tools := []Tool{ToolHighlight, ToolLine, ToolCircle}

		// Build an arbitrary committed document.
		n := rapid.IntRange(0, 6).Draw(t, "setup_commits")
		for i := 0; i < n; i++ {
			s.SelectTool(tools[rapid.IntRange(0, 2).Draw(t, "tool")])
			drag(s, randPoint(t, "a"), randPoint(t, "b"))
		}
		before := s.Document().Objects()

		// One more commit, then undo: the document must match exactly.
		s.SelectTool(ToolLine)
		drag(s, randPoint(t, "c"), randPoint(t, "d"))
		if s.Document().Len() != len(before)+1 {
			t.Fatalf("commit did not append exactly one object")
		}
		if !s.Undo() {
			t.Fatal("undo failed after a commit")
		}
		if diff := cmp.Diff(before, s.Document().Objects()); diff != "" {
			t.Fatalf("undo(commit(D)) != D (-want +got):\n%s", diff)
		}
	})
}

func randPoint(t *rapid.T, label string) geometry.Point {
	return geometry.Point{
		X: rapid.IntRange(0, 199).Draw(t, label+"_x"),
		Y: rapid.IntRange(0, 199).Draw(t, label+"_y"),
	}
}

// With lockedHorizontal set, the committed end point's vertical coordinate
// equals the start point's regardless of pointer movement.
func TestLockedHorizontalProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestSession(200, 200)
		s.SelectTool(ToolLine)
		st := s.Style()
		st.LockedHorizontal = true
		s.SetStyle(st)

		start := randPoint(t, "start")
		end := randPoint(t, "end")
		drag(s, start, end)

		objs := s.Document().Objects()
		if len(objs) != 1 {
			t.Fatalf("expected 1 object, got %d", len(objs))
		}
		ln := objs[0].(annotate.Line)
		if ln.End.Y != ln.Start.Y {
			t.Fatalf("locked-horizontal violated: start %v end %v", ln.Start, ln.End)
		}
		if ln.End.X != end.X {
			t.Fatalf("horizontal coordinate altered: want %d got %d", end.X, ln.End.X)
		}
	})
}

func TestLockedHorizontalHighlightPath(t *testing.T) {
	s := newTestSession(100, 100)
	st := s.Style()
	st.LockedHorizontal = true
	s.SetStyle(st)

	drag(s, geometry.Point{X: 10, Y: 40}, geometry.Point{X: 30, Y: 70}, geometry.Point{X: 60, Y: 5})

	hl := s.Document().Objects()[0].(annotate.Highlight)
	for i, p := range hl.Points {
		if p.Y != 40 {
			t.Errorf("path point %d not locked to y=40: %v", i, p)
		}
	}
}

// Scenario from the spec: highlight, then circle, then one undo leaves
// exactly the highlight.
func TestUndoScenario(t *testing.T) {
	s := newTestSession(100, 100)
	drag(s, geometry.Point{X: 5, Y: 5}, geometry.Point{X: 40, Y: 5})
	s.SelectTool(ToolCircle)
	drag(s, geometry.Point{X: 50, Y: 50}, geometry.Point{X: 70, Y: 50})

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	objs := s.Document().Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	if _, ok := objs[0].(annotate.Highlight); !ok {
		t.Errorf("expected the highlight to survive, got %T", objs[0])
	}
}

func TestUndoDuringDragHasNoEffect(t *testing.T) {
	s := newTestSession(100, 100)
	drag(s, geometry.Point{X: 5, Y: 5}, geometry.Point{X: 40, Y: 5})

	s.HandlePointerDown(geometry.Point{X: 10, Y: 10})
	s.HandlePointerMove(geometry.Point{X: 20, Y: 20})
	if s.Undo() {
		t.Error("undo must have no effect while dragging")
	}
	if s.Document().Len() != 1 {
		t.Error("committed object disappeared during drag")
	}
	s.HandlePointerUp(geometry.Point{X: 30, Y: 30})
}

func TestSelectToolMidDragIsNoOp(t *testing.T) {
	s := newTestSession(100, 100)
	s.HandlePointerDown(geometry.Point{X: 10, Y: 10})
	s.SelectTool(ToolCircle)
	if s.Tool() != ToolHighlight {
		t.Error("tool switch must be ignored mid-drag")
	}
	s.HandlePointerUp(geometry.Point{X: 40, Y: 40})
	if _, ok := s.Document().Objects()[0].(annotate.Highlight); !ok {
		t.Error("in-progress stroke lost its tool")
	}
	// After the drag completes the switch is honored.
	s.SelectTool(ToolCircle)
	if s.Tool() != ToolCircle {
		t.Error("tool switch rejected while idle")
	}
}

func TestOffCanvasReleaseClampsAndCommits(t *testing.T) {
	s := newTestSession(100, 100)
	s.SelectTool(ToolLine)
	s.HandlePointerDown(geometry.Point{X: 50, Y: 50})
	s.HandlePointerUp(geometry.Point{X: 500, Y: -30})

	objs := s.Document().Objects()
	if len(objs) != 1 {
		t.Fatal("off-canvas release must commit at the clamped position")
	}
	ln := objs[0].(annotate.Line)
	if ln.End != (geometry.Point{X: 99, Y: 0}) {
		t.Errorf("end point not clamped to canvas: %v", ln.End)
	}
}

func TestAbortStrokeDiscardsWithoutCommit(t *testing.T) {
	s := newTestSession(100, 100)
	s.HandlePointerDown(geometry.Point{X: 10, Y: 10})
	s.HandlePointerMove(geometry.Point{X: 50, Y: 50})
	s.AbortStroke()
	if s.Document().Len() != 0 {
		t.Error("aborted stroke was committed")
	}
	if s.State() != StateIdle {
		t.Error("session stuck in Dragging after abort")
	}
}

func TestTextToolPromptsAndCommits(t *testing.T) {
	s := newTestSession(200, 100)
	s.SelectTool(ToolText)

	var prompted *geometry.Point
	s.OnTextPrompt = func(anchor geometry.Point) { prompted = &anchor }
	s.HandlePointerDown(geometry.Point{X: 30, Y: 40})
	if prompted == nil {
		t.Fatal("text click did not request a prompt")
	}
	if s.State() != StateIdle {
		t.Error("text click must not start a drag")
	}

	s.CommitText(*prompted, "hello")
	s.CommitText(*prompted, "world")
	objs := s.Document().Objects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 text objects, got %d", len(objs))
	}
	// Same anchor, different strings: distinct, order-preserved objects.
	if objs[0].(annotate.Text).Content != "hello" || objs[1].(annotate.Text).Content != "world" {
		t.Errorf("text commit order lost: %v", objs)
	}
}

func TestTextCancelCommitsNothing(t *testing.T) {
	s := newTestSession(100, 100)
	s.CommitText(geometry.Point{X: 10, Y: 10}, "")
	if s.Document().Len() != 0 {
		t.Error("cancelled text entry committed an object")
	}
}

// save on a document with zero annotations produces the base pixel-for-pixel.
func TestSaveWithoutAnnotationsEqualsBase(t *testing.T) {
	s := newTestSession(32, 24)
	out := s.Save()
	if !bytes.Equal(out.Pix, s.Document().Base().Pix) {
		t.Error("save of an untouched document altered pixels")
	}
}

// A configured session style flows through to the objects the user commits.
func TestConfiguredStyleReachesCommits(t *testing.T) {
	s := newTestSession(100, 100)
	s.SetStyle(StyleFor("red", 30, 36))

	s.SelectTool(ToolLine)
	drag(s, geometry.Point{X: 10, Y: 10}, geometry.Point{X: 80, Y: 60})
	s.CommitText(geometry.Point{X: 5, Y: 5}, "note")

	objs := s.Document().Objects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}
	ln := objs[0].(annotate.Line)
	if ln.Color != Palette["red"] || ln.Width != 30 {
		t.Errorf("configured style lost on line: %+v", ln)
	}
	txt := objs[1].(annotate.Text)
	if txt.Color != Palette["red"] || txt.Size != 36 {
		t.Errorf("configured style lost on text: %+v", txt)
	}
}

func TestLivePreviewMatchesCommittedTreatment(t *testing.T) {
	s := newTestSession(60, 60)
	s.SelectTool(ToolLine)
	s.HandlePointerDown(geometry.Point{X: 5, Y: 30})
	s.HandlePointerMove(geometry.Point{X: 55, Y: 30})

	preview := s.Render()
	s.HandlePointerUp(geometry.Point{X: 55, Y: 30})
	final := s.Save()

	if !bytes.Equal(preview.Pix, final.Pix) {
		t.Error("live preview differs from the committed rendering")
	}
}
