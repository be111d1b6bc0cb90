// Package app is the single-threaded coordinator. One goroutine owns the
// busy flag, the session manager and all trigger sources (hotkeys, tray,
// delegated TCP requests); every other component posts into its channels.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"fyne.io/fyne/v2"

	"github.com/paulalicante/screenshot-tool/capture"
	"github.com/paulalicante/screenshot-tool/clipboard"
	"github.com/paulalicante/screenshot-tool/config"
	"github.com/paulalicante/screenshot-tool/editor"
	"github.com/paulalicante/screenshot-tool/hotkey"
	"github.com/paulalicante/screenshot-tool/store"
	"github.com/paulalicante/screenshot-tool/tray"
	"github.com/paulalicante/screenshot-tool/trigger"
	"github.com/paulalicante/screenshot-tool/ui"
	"github.com/paulalicante/screenshot-tool/worker"
)

const idleStatus = "Screenshot Tool: idle"

// Loop is the resident event loop.
type Loop struct {
	cfg  *config.Config
	fy   fyne.App
	mgr  *editor.Manager
	ovl  *ui.Overlay
	pool *worker.Pool
	st   *store.Store
	srv  trigger.Server
	tr   *tray.Tray

	requests chan request
	results  chan result
	busy     bool
}

type request struct {
	mode     capture.Mode
	conn     trigger.Conn // nil when triggered locally
	editLast bool         // re-open the newest saved screenshot instead of capturing
}

type result struct {
	path      string
	err       error
	cancelled bool
	conn      trigger.Conn
	// uiDone reports save completion back to the editor window; it must run
	// on the UI goroutine.
	uiDone func(err error)
}

// New builds the loop. The fyne app must already exist; Run does not block
// on it.
func New(cfg *config.Config, fy fyne.App) (*Loop, error) {
	st, err := store.New(cfg.SaveDir)
	if err != nil {
		return nil, err
	}
	mgr := editor.NewManager()
	mgr.OnSaved = func(path string) {
		tray.Notify(fy, "Screenshot saved", path)
	}
	mgr.OnCancelled = func() {
		log.Printf("App: editing cancelled, nothing persisted")
	}
	return &Loop{
		cfg:      cfg,
		fy:       fy,
		mgr:      mgr,
		ovl:      ui.NewOverlay(fy, cfg.MinSelectionSpan),
		pool:     worker.New(0),
		st:       st,
		requests: make(chan request, 4),
		results:  make(chan result, 1),
	}, nil
}

// Run starts the trigger server, hotkeys and tray, then processes requests
// until ctx is cancelled. It must not run on the UI goroutine.
func (l *Loop) Run(ctx context.Context) error {
	if err := clipboard.Init(); err != nil {
		log.Printf("App: clipboard unavailable: %v", err)
	}

	l.srv = trigger.NewServer()
	if err := l.srv.Start(ctx); err != nil {
		return fmt.Errorf("app: another instance may be resident: %w", err)
	}
	defer l.srv.Close()
	defer l.pool.Close()
	if p := l.srv.Port(); p > 0 {
		log.Printf("App: resident listening on 127.0.0.1:%d", p)
	}

	l.tr = tray.Setup(l.fy, tray.Handlers{
		CaptureRegion: func() { l.post(capture.ModeRegion, nil) },
		CaptureFull:   func() { l.post(capture.ModeFull, nil) },
		CaptureWindow: func() { l.post(capture.ModeWindow, nil) },
		EditLast:      func() { l.postEdit() },
		Quit:          func() { l.fy.Quit() },
	})
	l.tr.SetStatus(idleStatus)

	hotkey.Listen([]hotkey.Binding{
		{Combo: l.cfg.HotkeyFull, Action: func() { l.post(capture.ModeFull, nil) }},
		{Combo: l.cfg.HotkeyRegion, Action: func() { l.post(capture.ModeRegion, nil) }},
	})

	l.watchStore(ctx)

	// Accept delegated requests in the background so result handling never
	// starves the listener.
	go func() {
		for {
			conn, err := l.srv.Next(ctx)
			if err != nil {
				return
			}
			l.post(conn.Request().Mode, conn)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-l.requests:
			l.handleRequest(ctx, req)
		case res := <-l.results:
			l.handleResult(res)
		}
	}
}

// postEdit enqueues a request to re-open the most recent saved screenshot.
func (l *Loop) postEdit() {
	select {
	case l.requests <- request{editLast: true}:
	default:
		log.Printf("App: dropping edit request, queue full")
	}
}

// post enqueues a capture request from any goroutine.
func (l *Loop) post(mode capture.Mode, conn trigger.Conn) {
	select {
	case l.requests <- request{mode: mode, conn: conn}:
	default:
		log.Printf("App: dropping %s request, queue full", mode)
		if conn != nil {
			_ = conn.RespondError("busy, please retry")
			_ = conn.Close()
		}
	}
}

func (l *Loop) handleRequest(ctx context.Context, req request) {
	if l.busy {
		log.Printf("App: busy, rejecting %s request", req.mode)
		if req.conn != nil {
			_ = req.conn.RespondError("busy, please retry")
			_ = req.conn.Close()
		} else {
			tray.Notify(l.fy, "Screenshot Tool", "Busy, please retry")
		}
		return
	}

	var img image.Image
	if req.editLast {
		var err error
		img, err = loadLatest(l.st)
		if err != nil {
			log.Printf("App: cannot re-open last screenshot: %v", err)
			tray.Notify(l.fy, "Screenshot Tool", err.Error())
			return
		}
	} else {
		if l.cfg.CaptureDelaySec > 0 && !l.countdown(ctx, l.cfg.CaptureDelaySec) {
			log.Printf("App: %s capture delay interrupted", req.mode)
			if req.conn != nil {
				_ = req.conn.RespondCancelled()
				_ = req.conn.Close()
			}
			return
		}

		var cancelled bool
		var err error
		img, cancelled, err = l.acquire(ctx, req.mode)
		if err != nil {
			log.Printf("App: %s capture failed: %v", req.mode, err)
			if req.conn != nil {
				_ = req.conn.RespondError(err.Error())
				_ = req.conn.Close()
			} else {
				tray.Notify(l.fy, "Capture failed", err.Error())
			}
			return
		}
		if cancelled {
			log.Printf("App: %s capture cancelled", req.mode)
			if req.conn != nil {
				_ = req.conn.RespondCancelled()
				_ = req.conn.Close()
			}
			return
		}
	}

	sess, err := l.mgr.Open(img)
	if err != nil {
		if req.conn != nil {
			_ = req.conn.RespondError(err.Error())
			_ = req.conn.Close()
		}
		return
	}
	sess.SetStyle(editor.StyleFor(l.cfg.DefaultColor, l.cfg.BrushSize, l.cfg.FontSize))

	l.setBusy(true)
	conn := req.conn
	fyne.Do(func() {
		ui.ShowEditor(l.fy, sess, ui.EditorCallbacks{
			Save: func(flat *image.RGBA, done func(error)) {
				ok := l.pool.Submit(ctx, flat, l.persist, func(path string, err error) {
					l.results <- result{path: path, err: err, conn: conn, uiDone: done}
				})
				if !ok {
					done(errors.New("a save is already in progress"))
				}
			},
			Cancel: func() {
				l.results <- result{cancelled: true, conn: conn}
			},
		})
	})
}

// acquire produces the bitmap to annotate. For region mode the pixels come
// from the overlay's frozen frame, never a second capture.
func (l *Loop) acquire(ctx context.Context, mode capture.Mode) (image.Image, bool, error) {
	switch mode {
	case capture.ModeRegion:
		rect, cancelled, err := l.ovl.Select(ctx)
		if err != nil {
			return nil, false, err
		}
		if cancelled {
			return nil, true, nil
		}
		return l.ovl.LastCapture().SubImage(rect.ImageRect()), false, nil
	case capture.ModeFull:
		img, err := capture.FullScreen()
		return img, false, err
	case capture.ModeWindow:
		handle, err := capture.ForegroundWindow()
		if err != nil {
			log.Printf("App: window capture unavailable, using full screen: %v", err)
			img, ferr := capture.FullScreen()
			return img, false, ferr
		}
		img, err := capture.Window(handle)
		if err != nil {
			return nil, false, err
		}
		return img, false, nil
	default:
		return nil, false, fmt.Errorf("app: unknown capture mode %q", mode)
	}
}

func (l *Loop) handleResult(res result) {
	if res.cancelled {
		l.mgr.FinishCancelled()
		l.setBusy(false)
		if res.conn != nil {
			_ = res.conn.RespondCancelled()
			_ = res.conn.Close()
		}
		return
	}

	if res.err != nil {
		// The session and its window stay open so the user can retry.
		log.Printf("App: persist failed, session stays open: %v", res.err)
		if res.uiDone != nil {
			done, err := res.uiDone, res.err
			fyne.Do(func() { done(err) })
		}
		return
	}

	l.mgr.FinishSaved(res.path)
	l.setBusy(false)
	if res.uiDone != nil {
		done := res.uiDone
		fyne.Do(func() { done(nil) })
	}
	if res.conn != nil {
		_ = res.conn.RespondSaved(res.path)
		_ = res.conn.Close()
	}
}

// persist runs on a worker goroutine: write the PNG, then copy it to the
// clipboard. A clipboard failure is logged but does not fail the save.
func (l *Loop) persist(_ context.Context, img image.Image) (string, error) {
	path, err := l.st.Save(img, "")
	if err != nil {
		return "", err
	}
	if err := clipboard.WriteImage(img); err != nil {
		log.Printf("App: clipboard copy failed: %v", err)
	}
	return path, nil
}

// countdown delays the capture, ticking the tray status once per second.
// Returns false when ctx is cancelled before the delay elapses.
func (l *Loop) countdown(ctx context.Context, sec int) bool {
	log.Printf("App: delaying capture %d seconds", sec)
	defer l.tr.SetStatus(idleStatus)
	for i := sec; i > 0; i-- {
		l.tr.SetStatus(fmt.Sprintf("Capturing in %d...", i))
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
		}
	}
	return true
}

// loadLatest decodes the newest saved screenshot for re-editing.
func loadLatest(st *store.Store) (image.Image, error) {
	files, err := st.List()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no saved screenshots to edit")
	}
	return st.LoadImage(files[0])
}

func (l *Loop) setBusy(b bool) {
	l.busy = b
	if b {
		l.tr.SetStatus("Screenshot Tool: editing...")
	} else {
		l.tr.SetStatus(idleStatus)
	}
}

// watchStore keeps the tray status in sync with external changes to the save
// directory.
func (l *Loop) watchStore(ctx context.Context) {
	events, err := l.st.Watch(ctx)
	if err != nil {
		log.Printf("App: store watch unavailable: %v", err)
		return
	}
	go func() {
		for range events {
			files, err := l.st.List()
			if err != nil {
				continue
			}
			l.tr.SetStatus(fmt.Sprintf("Screenshot Tool: %d saved in %s", len(files), l.st.Dir()))
		}
	}()
}
