package key

import "strings"

// Mod represents the logical modifier keys attached to an input.
//
// Shift is intentionally absent: for character keys Shift is part of the
// character itself, and the backend never distinguishes shifted specials.
type Mod uint8

const (
	// ModNone indicates no modifiers.
	ModNone Mod = 0

	// ModCtrl indicates the Control key ("C-" prefix).
	ModCtrl Mod = 1 << iota

	// ModMeta indicates the Meta key ("M-" prefix). Alt on most
	// platforms, Command on macOS.
	ModMeta

	// ModSuper indicates the Super key ("s-" prefix). The OS key on most
	// platforms, Option on macOS.
	ModSuper
)

// Has returns true if m contains the specified modifier.
func (m Mod) Has(mod Mod) bool {
	return m&mod != 0
}

// HasCtrl returns true if Control is held.
func (m Mod) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasMeta returns true if Meta is held.
func (m Mod) HasMeta() bool {
	return m.Has(ModMeta)
}

// HasSuper returns true if Super is held.
func (m Mod) HasSuper() bool {
	return m.Has(ModSuper)
}

// With returns a new Mod with the specified modifier added.
func (m Mod) With(mod Mod) Mod {
	return m | mod
}

// Without returns a new Mod with the specified modifier removed.
func (m Mod) Without(mod Mod) Mod {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Mod) IsEmpty() bool {
	return m == ModNone
}

// Prefix returns the canonical modifier prefix, e.g. "C-M-" for
// Ctrl+Meta. Prefixes appear in the fixed order C, M, s.
func (m Mod) Prefix() string {
	if m == ModNone {
		return ""
	}

	var b strings.Builder
	if m.HasCtrl() {
		b.WriteString("C-")
	}
	if m.HasMeta() {
		b.WriteString("M-")
	}
	if m.HasSuper() {
		b.WriteString("s-")
	}
	return b.String()
}

// String returns a human-readable representation like "Ctrl+Meta".
func (m Mod) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	if m.HasSuper() {
		parts = append(parts, "Super")
	}
	return strings.Join(parts, "+")
}
