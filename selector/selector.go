// Package selector implements region selection: a pure drag tracker that
// turns pointer events into a normalized rectangle, and the Selector
// interface the event loop uses to run the platform overlay.
package selector

import (
	"context"
	"errors"

	"github.com/paulalicante/screenshot-tool/geometry"
)

// ErrSelectionCancelled reports that the user dismissed the overlay.
var ErrSelectionCancelled = errors.New("selection cancelled")

// Selector runs one region selection. The call blocks and MUST be invoked
// only from the event-loop goroutine. Returns (region, cancelled, error);
// when cancelled is true the region is undefined and err is nil.
type Selector interface {
	Select(ctx context.Context) (geometry.Rect, bool, error)
}

// MinSelectionSpan is the default minimum span in pixels; selections below
// it in either dimension are treated as a no-op cancellation, not a capture.
const MinSelectionSpan = 2
