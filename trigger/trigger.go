// Package trigger provides single-instance ownership plus capture delegation.
// A resident process owns a loopback TCP port; later invocations hand their
// capture request to the resident instead of racing it for hotkeys and tray.
package trigger

import (
	"context"

	"github.com/paulalicante/screenshot-tool/capture"
)

// Server owns the TCP endpoint and answers capture requests.
type Server interface {
	// Start begins listening on the start port of the configured range.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted connection as a Conn, or ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn represents one client connection and exposes request + response API.
type Conn interface {
	// Request returns the parsed client request.
	Request() Request
	// RespondSaved reports the path the flattened screenshot was written to.
	RespondSaved(path string) error
	// RespondCancelled reports that the user dismissed the capture.
	RespondCancelled() error
	// RespondError sends an error with human-readable message.
	RespondError(msg string) error
	// Close closes the underlying connection.
	Close() error
}

// Request is a single delegated capture request.
type Request struct {
	Mode capture.Mode
}

// Client attempts to delegate a capture to a resident server.
type Client interface {
	// TryCapture scans the configured port range, performs handshake, and
	// delegates to the resident. If no resident is found, returns
	// delegated=false, err=nil.
	TryCapture(ctx context.Context, mode capture.Mode) (delegated bool, path string, err error)
}

// NewServer returns TCP implementation.
func NewServer() Server { return newTcpServer() }

// NewClient returns TCP implementation.
func NewClient() Client { return newTcpClient() }
