package key

import (
	"errors"
	"fmt"
	"strings"
)

// Syntax parse errors. A malformed key string is a configuration defect,
// not a runtime user error, so callers fail fast on these.
var (
	ErrEmptySyntax   = errors.New("empty key syntax")
	ErrInvalidSyntax = errors.New("invalid key syntax")
)

// ParseSyntax parses a canonical key string back into an Input. The
// grammar is the optional prefixes "C-", "M-", "s-" in exactly that
// order, followed by the base key name. Unknown or out-of-order modifier
// prefixes fail with an error wrapping ErrInvalidSyntax.
func ParseSyntax(s string) (Input, error) {
	if s == "" {
		return Input{}, ErrEmptySyntax
	}

	rest := s
	var mods Mod
	if strings.HasPrefix(rest, "C-") && len(rest) > 2 {
		mods = mods.With(ModCtrl)
		rest = rest[2:]
	}
	if strings.HasPrefix(rest, "M-") && len(rest) > 2 {
		mods = mods.With(ModMeta)
		rest = rest[2:]
	}
	if strings.HasPrefix(rest, "s-") && len(rest) > 2 {
		mods = mods.With(ModSuper)
		rest = rest[2:]
	}

	// A remaining hyphen inside a multi-character key means a prefix we
	// did not recognize (wrong letter, wrong case, or wrong order).
	// A lone "-" is the minus key and is fine.
	if len(rest) > 1 && strings.Contains(rest, "-") {
		return Input{}, fmt.Errorf("%w: bad modifier prefix in %q", ErrInvalidSyntax, s)
	}

	// Re-normalize so "C-S" parses to the same Input as "C-s".
	return New(rest, mods), nil
}

// MustParseSyntax parses a key string and panics on error. Use only for
// known-valid strings in initialization code.
func MustParseSyntax(s string) Input {
	in, err := ParseSyntax(s)
	if err != nil {
		panic("invalid key syntax: " + s + ": " + err.Error())
	}
	return in
}
