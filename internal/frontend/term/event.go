// Package term is the tcell terminal surface: it translates terminal
// key events for the input pipeline and renders the stack, the active
// grid, the input box and notifications. All decisions live in the core
// packages; this one only draws and forwards.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mfagan/keypad/internal/input/key"
)

// specialKeys maps tcell keys that have a canonical name. Entries here
// take precedence over the Ctrl-letter range below, which matters for
// the keys that share control codes (Tab is Ctrl-I, Enter is Ctrl-M).
var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyEsc:        "Escape",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
}

// translate converts a tcell key event into a raw key event. The second
// return value is false for keys the frontend does not forward.
func translate(ev *tcell.EventKey) (key.RawEvent, bool) {
	mods := ev.Modifiers()
	raw := key.RawEvent{
		Ctrl: mods&tcell.ModCtrl != 0,
		Alt:  mods&tcell.ModAlt != 0,
		Meta: mods&tcell.ModMeta != 0,
	}

	k := ev.Key()
	if name, ok := specialKeys[k]; ok {
		raw.Name = name
		// The control code arrives with ModCtrl on some terminals; the
		// named key already expresses it.
		raw.Ctrl = false
		return raw, true
	}

	switch {
	case k == tcell.KeyRune:
		raw.Name = string(ev.Rune())
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		raw.Ctrl = true
		raw.Name = string(rune('a' + k - tcell.KeyCtrlA))
	case k == tcell.KeyCtrlUnderscore:
		raw.Ctrl = true
		raw.Name = "_"
	default:
		return key.RawEvent{}, false
	}
	return raw, true
}
