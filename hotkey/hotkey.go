package hotkey

import (
	"log"
	"strings"

	gohook "github.com/robotn/gohook"
)

// Binding pairs a hotkey combo string like "Ctrl+Shift+S" with its action.
// Actions run on the hook goroutine; they should only post to a channel.
type Binding struct {
	Combo  string
	Action func()
}

// combo is a parsed binding tracked against live key state.
type combo struct {
	modifiers []string
	key       uint16
	action    func()
	pressed   map[uint16]bool
}

// Rawcodes for modifier keys, left and right variants.
var modifierCodes = map[string][]uint16{
	"ctrl":  {162, 163},
	"alt":   {164, 165},
	"shift": {160, 161},
	"cmd":   {91, 92},
}

// Listen starts a goroutine watching global key events and fires the matching
// binding when all its keys are down. Multiple bindings share one hook.
func Listen(bindings []Binding) {
	combos := make([]*combo, 0, len(bindings))
	for _, b := range bindings {
		c, ok := parseCombo(b.Combo)
		if !ok {
			log.Printf("Hotkey: ignoring unparseable combo %q", b.Combo)
			continue
		}
		c.action = b.Action
		combos = append(combos, c)
		log.Printf("Hotkey: registered %q", b.Combo)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}

		for ev := range evChan {
			if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp {
				continue
			}
			down := ev.Kind == gohook.KeyDown
			for _, c := range combos {
				if !c.tracks(ev.Rawcode) {
					continue
				}
				c.pressed[ev.Rawcode] = down
				if down && c.satisfied() {
					log.Printf("Hotkey: combo fired (rawcode %d)", ev.Rawcode)
					c.action()
					c.reset()
				}
			}
		}
		log.Printf("Hotkey: event channel closed")
	}()
}

func (c *combo) tracks(rawcode uint16) bool {
	if rawcode == c.key {
		return true
	}
	for _, mod := range c.modifiers {
		for _, code := range modifierCodes[mod] {
			if code == rawcode {
				return true
			}
		}
	}
	return false
}

func (c *combo) satisfied() bool {
	if !c.pressed[c.key] {
		return false
	}
	for _, mod := range c.modifiers {
		any := false
		for _, code := range modifierCodes[mod] {
			if c.pressed[code] {
				any = true
			}
		}
		if !any {
			return false
		}
	}
	return true
}

func (c *combo) reset() {
	for code := range c.pressed {
		c.pressed[code] = false
	}
}

// parseCombo converts "Ctrl+Shift+s" into tracked modifier names plus the
// final key's rawcode. Only single-letter terminal keys are supported.
func parseCombo(spec string) (*combo, bool) {
	parts := strings.Split(strings.ToLower(spec), "+")
	c := &combo{pressed: make(map[uint16]bool)}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "alt", "shift":
			c.modifiers = append(c.modifiers, part)
		case "win", "cmd", "super":
			c.modifiers = append(c.modifiers, "cmd")
		default:
			if len(part) != 1 || part[0] < 'a' || part[0] > 'z' {
				return nil, false
			}
			if c.key != 0 {
				return nil, false
			}
			// Letter rawcodes match uppercase ASCII
			c.key = uint16(part[0] - 'a' + 'A')
		}
	}
	if c.key == 0 {
		return nil, false
	}
	return c, true
}
