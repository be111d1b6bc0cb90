package app

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/paulalicante/screenshot-tool/store"
)

func testImage(fill uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: fill, G: fill, B: fill, A: 255})
		}
	}
	return img
}

func TestLoadLatestReturnsNewest(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	if _, err := st.Save(testImage(10), "screenshot_20240315_094501.png"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := st.Save(testImage(200), "screenshot_20240315_094502.png"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	img, err := loadLatest(st)
	if err != nil {
		t.Fatalf("loadLatest failed: %v", err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 200 {
		t.Errorf("loadLatest returned the older screenshot (r=%d)", r>>8)
	}
}

func TestLoadLatestEmptyStore(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	if _, err := loadLatest(st); err == nil {
		t.Fatal("expected an error for an empty store")
	}
}

// countdown must return promptly, reporting false, once the context is gone.
func TestCountdownStopsOnCancel(t *testing.T) {
	l := &Loop{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if l.countdown(ctx, 30) {
		t.Error("countdown reported completion under a cancelled context")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("countdown blocked %v after cancellation", elapsed)
	}
}

func TestCountdownCompletes(t *testing.T) {
	l := &Loop{}
	if !l.countdown(context.Background(), 1) {
		t.Error("countdown did not complete with a live context")
	}
}
