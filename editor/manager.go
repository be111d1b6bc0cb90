package editor

import (
	"errors"
	"image"
	"log"
)

// ErrSessionActive is returned when a capture completes while an editor
// session is already open.
var ErrSessionActive = errors.New("editor: another session is active")

// Manager holds at most one active editing session. It replaces ambient
// global state: the UI shell receives the manager by reference and asks it
// for the active session instead of touching package globals.
type Manager struct {
	active *Session

	// OnSaved and OnCancelled are the session lifecycle events exposed to
	// the shell.
	OnSaved     func(path string)
	OnCancelled func()
}

func NewManager() *Manager { return &Manager{} }

// Open creates a session for a completed capture. Only one session may be
// active per capture.
func (m *Manager) Open(base image.Image) (*Session, error) {
	if m.active != nil {
		return nil, ErrSessionActive
	}
	s := NewSession(base)
	m.active = s
	log.Printf("Editor: opened session %s (%dx%d)", s.ID(), s.doc.Width(), s.doc.Height())
	return s, nil
}

// Active returns the current session, or nil.
func (m *Manager) Active() *Session { return m.active }

// FinishSaved closes the active session after a successful save and fires
// the lifecycle event.
func (m *Manager) FinishSaved(path string) {
	if m.active == nil {
		return
	}
	log.Printf("Editor: session %s saved to %s", m.active.ID(), path)
	m.active = nil
	if m.OnSaved != nil {
		m.OnSaved(path)
	}
}

// FinishCancelled discards the active session without persisting.
func (m *Manager) FinishCancelled() {
	if m.active == nil {
		return
	}
	log.Printf("Editor: session %s cancelled", m.active.ID())
	m.active = nil
	if m.OnCancelled != nil {
		m.OnCancelled()
	}
}
