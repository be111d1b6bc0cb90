package editor

import "image/color"

// Tool identifies the active annotation tool.
type Tool int

const (
	ToolHighlight Tool = iota
	ToolLine
	ToolCircle
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolHighlight:
		return "highlight"
	case ToolLine:
		return "line"
	case ToolCircle:
		return "circle"
	case ToolText:
		return "text"
	default:
		return "unknown"
	}
}

// DragTool reports whether the tool interprets pointer input as a drag.
// The text tool commits from a single click through a modal prompt instead.
func (t Tool) DragTool() bool { return t != ToolText }

// Style holds the current stroke settings applied at commit time.
type Style struct {
	Color            color.NRGBA
	Width            int
	FontSize         int
	LockedHorizontal bool
}

// Palette is the set of highlight colors offered by the editor.
var Palette = map[string]color.NRGBA{
	"yellow": {R: 255, G: 255, B: 0, A: 255},
	"green":  {R: 0, G: 255, B: 0, A: 255},
	"blue":   {R: 0, G: 150, B: 255, A: 255},
	"red":    {R: 255, G: 0, B: 0, A: 255},
}

// PaletteOrder fixes the palette presentation order for the toolbar.
var PaletteOrder = []string{"yellow", "green", "blue", "red"}

// DefaultStyle is the style a fresh session starts with.
func DefaultStyle() Style {
	return Style{
		Color:    Palette["yellow"],
		Width:    20,
		FontSize: 24,
	}
}

// StyleFor builds a session style from configured values. Unknown color names
// and non-positive sizes fall back to the defaults.
func StyleFor(colorName string, brushSize, fontSize int) Style {
	st := DefaultStyle()
	if c, ok := Palette[colorName]; ok {
		st.Color = c
	}
	if brushSize > 0 {
		st.Width = brushSize
	}
	if fontSize > 0 {
		st.FontSize = fontSize
	}
	return st
}

// PaletteName maps a palette color back to its name, for toolbar display.
func PaletteName(c color.NRGBA) (string, bool) {
	for _, name := range PaletteOrder {
		if Palette[name] == c {
			return name, true
		}
	}
	return "", false
}
