package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDisplay reports that no active display is attached.
	ErrNoDisplay = errors.New("no active displays found")

	// ErrDegenerateRegion reports a zero-area capture rectangle.
	ErrDegenerateRegion = errors.New("degenerate capture region")

	// ErrWindowUnsupported reports that window capture is not available on
	// this platform.
	ErrWindowUnsupported = errors.New("window capture not supported on this platform")

	// ErrWindowGone reports that the target window vanished mid-capture.
	ErrWindowGone = errors.New("window no longer exists")
)

// Error is a capture failure tagged with the mode that was attempted.
// The session is aborted and no document is created when one is returned.
type Error struct {
	Mode Mode
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("capture %s: %v", e.Mode, e.Err) }
func (e *Error) Unwrap() error { return e.Err }
