package key

import (
	"unicode"
	"unicode/utf8"
)

// Input is a normalized key press. It is an immutable value: construct a
// fresh one per physical key event and never mutate it.
type Input struct {
	// Key is the base key name: a single character ("x", "-") or a
	// special key name ("Escape", "Enter", "Tab", "Backspace").
	Key string

	// Mods contains the logical modifiers held during the press.
	Mods Mod
}

// New constructs a normalized Input from a base key name and modifiers.
//
// Normalization rules:
//   - Letter keys are lowercased when any modifier is held, so "C-S"
//     and "C-s" resolve to the same binding.
//   - Ctrl-i becomes Tab and Ctrl-m becomes Enter, matching the Emacs
//     treatment of the corresponding control characters.
func New(name string, mods Mod) Input {
	if !mods.IsEmpty() {
		if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsLetter(r) {
			name = string(unicode.ToLower(r))
		}
	}

	if mods.HasCtrl() {
		switch name {
		case "i":
			name = "Tab"
			mods = mods.Without(ModCtrl)
		case "m":
			name = "Enter"
			mods = mods.Without(ModCtrl)
		}
	}

	return Input{Key: name, Mods: mods}
}

// Syntax returns the canonical Emacs-style string form, e.g. "C-M-x".
// This string is the lookup key for all grid shortcut tables.
func (in Input) Syntax() string {
	return in.Mods.Prefix() + in.Key
}

// String returns the canonical string form.
func (in Input) String() string {
	return in.Syntax()
}

// IsEscape returns true if this is the bare Escape key.
func (in Input) IsEscape() bool {
	return in.Key == "Escape" && in.Mods.IsEmpty()
}

// IsEnter returns true if this is the bare Enter key.
func (in Input) IsEnter() bool {
	return in.Key == "Enter" && in.Mods.IsEmpty()
}

// Rune returns the character for single-character keys, or 0 for special
// keys and modified presses.
func (in Input) Rune() rune {
	if !in.Mods.IsEmpty() {
		return 0
	}
	if r, size := utf8.DecodeRuneInString(in.Key); size == len(in.Key) {
		return r
	}
	return 0
}

// Digit returns the decimal digit for keys "0" through "9". The second
// return value reports whether the key is a digit, regardless of
// modifiers.
func (in Input) Digit() (int, bool) {
	if len(in.Key) == 1 && in.Key[0] >= '0' && in.Key[0] <= '9' {
		return int(in.Key[0] - '0'), true
	}
	return 0, false
}
