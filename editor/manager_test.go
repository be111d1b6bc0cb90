package editor

import (
	"image"
	"testing"
)

func TestManagerSingleActiveSession(t *testing.T) {
	m := NewManager()
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))

	s, err := m.Open(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if m.Active() != s {
		t.Error("active session mismatch")
	}
	if _, err := m.Open(base); err != ErrSessionActive {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}
}

func TestManagerLifecycleEvents(t *testing.T) {
	m := NewManager()
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))

	var savedPath string
	var cancelled bool
	m.OnSaved = func(path string) { savedPath = path }
	m.OnCancelled = func() { cancelled = true }

	if _, err := m.Open(base); err != nil {
		t.Fatal(err)
	}
	m.FinishSaved("/tmp/screenshot_20250101_120000.png")
	if savedPath != "/tmp/screenshot_20250101_120000.png" {
		t.Errorf("OnSaved not fired, path=%q", savedPath)
	}
	if m.Active() != nil {
		t.Error("session still active after save")
	}

	if _, err := m.Open(base); err != nil {
		t.Fatal(err)
	}
	m.FinishCancelled()
	if !cancelled {
		t.Error("OnCancelled not fired")
	}
	if m.Active() != nil {
		t.Error("session still active after cancel")
	}
}
