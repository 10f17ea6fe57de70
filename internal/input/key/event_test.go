package key

import "testing"

func TestFromEventModifierMapping(t *testing.T) {
	tests := []struct {
		os   HostOS
		ev   RawEvent
		want string
	}{
		// Alt is Meta everywhere except macOS.
		{OSLinux, RawEvent{Name: "x", Alt: true}, "M-x"},
		{OSWindows, RawEvent{Name: "x", Alt: true}, "M-x"},
		{OSMac, RawEvent{Name: "x", Alt: true}, "s-x"},

		// The OS key is Super everywhere except macOS, where Command is Meta.
		{OSLinux, RawEvent{Name: "x", Meta: true}, "s-x"},
		{OSWindows, RawEvent{Name: "x", Meta: true}, "s-x"},
		{OSMac, RawEvent{Name: "x", Meta: true}, "M-x"},

		// Ctrl is Ctrl on every platform.
		{OSLinux, RawEvent{Name: "u", Ctrl: true}, "C-u"},
		{OSMac, RawEvent{Name: "u", Ctrl: true}, "C-u"},

		// Combined physical modifiers.
		{OSLinux, RawEvent{Name: "x", Ctrl: true, Alt: true, Meta: true}, "C-M-s-x"},
		{OSMac, RawEvent{Name: "x", Ctrl: true, Alt: true, Meta: true}, "C-M-s-x"},
	}

	for _, tt := range tests {
		in, ok := FromEvent(tt.ev, tt.os)
		if !ok {
			t.Errorf("FromEvent(%+v, %v) not delivered", tt.ev, tt.os)
			continue
		}
		if got := in.Syntax(); got != tt.want {
			t.Errorf("FromEvent(%+v, %v) = %q, want %q", tt.ev, tt.os, got, tt.want)
		}
	}
}

func TestFromEventDropsModifierPresses(t *testing.T) {
	names := []string{"Shift", "Control", "Alt", "Meta", "Super", "Hyper", "AltGraph", "CapsLock"}

	for _, name := range names {
		if _, ok := FromEvent(RawEvent{Name: name}, OSLinux); ok {
			t.Errorf("FromEvent(%q) delivered, want dropped", name)
		}
	}
}

func TestFromEventPlainKey(t *testing.T) {
	in, ok := FromEvent(RawEvent{Name: "Escape"}, OSLinux)
	if !ok {
		t.Fatal("FromEvent(Escape) not delivered")
	}
	if !in.IsEscape() {
		t.Errorf("IsEscape() = false for %q", in.Syntax())
	}
}
