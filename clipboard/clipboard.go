package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

var mu sync.Mutex

func Init() error {
	return clipboard.Init()
}

// WriteImage places a flattened screenshot on the system clipboard as PNG.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("clipboard: encode png: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	// Write returns a done channel, not an error
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// WritePath copies a saved file path as text, used by the tray's recent menu.
func WritePath(path string) error {
	mu.Lock()
	defer mu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(path))
	return nil
}
