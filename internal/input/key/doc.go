// Package key defines the normalized keyboard input value used throughout
// the frontend.
//
// A raw platform key event is converted into an Input exactly once, at the
// edge of the system. Everything downstream (the dispatch chain, the
// modifier delegates, the grid key tables) works with the canonical
// Emacs-style string form, e.g. "C-M-x", "Escape", "Tab". Modifier
// prefixes always appear in the fixed order "C-", "M-", "s-" and the
// string form is case-sensitive.
package key
