// Package ui holds the fyne windows: the annotation editor and the region
// selection overlay. All functions here must run on the fyne UI goroutine
// unless noted otherwise.
package ui

import (
	"image"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/paulalicante/screenshot-tool/editor"
	"github.com/paulalicante/screenshot-tool/geometry"
)

// editorMaxW/H cap the canvas display size; larger captures are scaled down
// for display while annotations stay in bitmap coordinates.
const (
	editorMaxW = 1600
	editorMaxH = 900
)

// EditorCallbacks connects the editor window to the event loop.
type EditorCallbacks struct {
	// Save persists the flattened image off the UI goroutine and reports
	// back through done (which must be called on the UI goroutine). A
	// non-nil error keeps the editor open for retry.
	Save func(img *image.RGBA, done func(err error))
	// Cancel runs when the user dismisses the editor without saving.
	Cancel func()
}

// ShowEditor opens the annotation window for sess. Must run on the UI
// goroutine.
func ShowEditor(a fyne.App, sess *editor.Session, cb EditorCallbacks) fyne.Window {
	doc := sess.Document()
	tf := geometry.FitTransform(doc.Width(), doc.Height(), editorMaxW, editorMaxH)
	cv := newAnnotCanvas(sess, tf)

	win := a.NewWindow("Annotate Screenshot")

	sess.OnTextPrompt = func(anchor geometry.Point) {
		entry := widget.NewEntry()
		items := []*widget.FormItem{widget.NewFormItem("Text", entry)}
		dialog.ShowForm("Add Text", "Add", "Cancel", items, func(ok bool) {
			if !ok {
				return
			}
			sess.CommitText(anchor, entry.Text)
			cv.Refresh()
		}, win)
	}

	var undoBtn *widget.Button
	syncUndo := func() {
		if doc.CanUndo() {
			undoBtn.Enable()
		} else {
			undoBtn.Disable()
		}
	}
	undoBtn = widget.NewButton("Undo", func() {
		sess.Undo()
		cv.Refresh()
		syncUndo()
	})
	cv.onStroke = syncUndo

	toolSel := widget.NewSelect(
		[]string{"highlight", "line", "circle", "text"},
		func(name string) {
			switch name {
			case "highlight":
				sess.SelectTool(editor.ToolHighlight)
			case "line":
				sess.SelectTool(editor.ToolLine)
			case "circle":
				sess.SelectTool(editor.ToolCircle)
			case "text":
				sess.SelectTool(editor.ToolText)
			}
		})
	toolSel.SetSelected(sess.Tool().String())

	colorSel := widget.NewSelect(editor.PaletteOrder, func(name string) {
		st := sess.Style()
		st.Color = editor.Palette[name]
		sess.SetStyle(st)
	})
	if name, ok := editor.PaletteName(sess.Style().Color); ok {
		colorSel.SetSelected(name)
	} else {
		colorSel.SetSelected("yellow")
	}

	widthLabel := widget.NewLabel(strconv.Itoa(sess.Style().Width))
	widthSlider := widget.NewSlider(5, 50)
	widthSlider.SetValue(float64(sess.Style().Width))
	widthSlider.OnChanged = func(v float64) {
		st := sess.Style()
		st.Width = int(v)
		sess.SetStyle(st)
		widthLabel.SetText(strconv.Itoa(int(v)))
	}

	lockCheck := widget.NewCheck("Lock horizontal", func(on bool) {
		st := sess.Style()
		st.LockedHorizontal = on
		sess.SetStyle(st)
	})

	saving := false
	doSave := func() {
		if saving {
			return
		}
		saving = true
		cb.Save(sess.Save(), func(err error) {
			saving = false
			if err != nil {
				log.Printf("UI: save failed, editor stays open: %v", err)
				dialog.ShowError(err, win)
				return
			}
			win.Close()
		})
	}
	doCancel := func() {
		win.Close()
		cb.Cancel()
	}

	saveBtn := widget.NewButton("Save", doSave)
	saveBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton("Cancel", doCancel)

	toolbar := container.NewHBox(
		widget.NewLabel("Tool"), toolSel,
		widget.NewLabel("Color"), colorSel,
		widget.NewLabel("Width"), widthSlider, widthLabel,
		lockCheck,
		undoBtn,
	)
	actions := container.NewHBox(saveBtn, cancelBtn)
	win.SetContent(container.NewBorder(toolbar, actions, nil, nil, container.NewCenter(cv)))

	win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) {
			sess.Undo()
			cv.Refresh()
			syncUndo()
		})
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			if sess.State() == editor.StateDragging {
				sess.AbortStroke()
				cv.Refresh()
				return
			}
			doCancel()
		case fyne.KeyReturn, fyne.KeyEnter:
			doSave()
		}
	})
	win.SetCloseIntercept(doCancel)

	syncUndo()
	win.Show()
	return win
}
