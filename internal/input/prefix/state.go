// Package prefix implements the Emacs-style numeric prefix argument as an
// explicit state machine. The argument is entered before a command key
// (C-u for the multiplier, C-<digit> or C-- to start a number) and is
// attached to the next command dispatched.
package prefix

import (
	"fmt"

	"github.com/mfagan/keypad/internal/input/key"
)

// Tag identifies a prefix-argument state variant.
type Tag uint8

const (
	// TagDefault is the idle state: no prefix argument.
	TagDefault Tag = iota
	// TagMultiplier counts C-u presses; the effective value is 4*k.
	TagMultiplier
	// TagNumerical accumulates an explicit number.
	TagNumerical
	// TagNegativeInput is the state after a minus with no digits yet.
	TagNegativeInput
)

// String returns a string representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagMultiplier:
		return "multiplier"
	case TagNumerical:
		return "numerical"
	case TagNegativeInput:
		return "negative-input"
	default:
		return "default"
	}
}

// State is one prefix-argument state. It is a tagged value: use the
// constructors and switch on Tag rather than inspecting fields directly.
type State struct {
	tag Tag

	// count is the C-u press count in TagMultiplier.
	count int

	// value is the accumulated number in TagNumerical.
	value int
}

// Default returns the idle state.
func Default() State {
	return State{tag: TagDefault}
}

// Multiplier returns the state after k presses of C-u.
func Multiplier(k int) State {
	return State{tag: TagMultiplier, count: k}
}

// Numerical returns the state holding the accumulated number n.
func Numerical(n int) State {
	return State{tag: TagNumerical, value: n}
}

// NegativeInput returns the state after a minus with no digits yet.
func NegativeInput() State {
	return State{tag: TagNegativeInput}
}

// Tag returns the state's variant tag.
func (s State) Tag() Tag {
	return s.tag
}

// PrefixArgument returns the externally visible effective value: nil in
// the default state, 4*k for the multiplier, the accumulated number, or
// -1 while negative input has no digits yet.
func (s State) PrefixArgument() *int {
	var n int
	switch s.tag {
	case TagMultiplier:
		n = 4 * s.count
	case TagNumerical:
		n = s.value
	case TagNegativeInput:
		n = -1
	default:
		return nil
	}
	return &n
}

// String returns a debug representation of the state.
func (s State) String() string {
	switch s.tag {
	case TagMultiplier:
		return fmt.Sprintf("Multiplier(%d)", s.count)
	case TagNumerical:
		return fmt.Sprintf("Numerical(%d)", s.value)
	case TagNegativeInput:
		return "NegativeInput"
	default:
		return "Default"
	}
}

// inputClass is the machine's view of a key event.
type inputClass uint8

const (
	classOther inputClass = iota
	classCtrlU
	classPlainDigit
	classModifiedDigit
	classPlainMinus
	classCtrlMinus
	classEscape
)

// classify reduces a key event to the alphabet the machine cares about.
func classify(in key.Input) (inputClass, int) {
	if d, ok := in.Digit(); ok {
		if in.Mods.HasCtrl() || in.Mods.HasMeta() {
			return classModifiedDigit, d
		}
		if in.Mods.IsEmpty() {
			return classPlainDigit, d
		}
		return classOther, 0
	}

	switch in.Syntax() {
	case "C-u":
		return classCtrlU, 0
	case "-":
		return classPlainMinus, 0
	case "C--":
		return classCtrlMinus, 0
	case "Escape":
		return classEscape, 0
	}
	return classOther, 0
}

// transition is the pure transition function. It returns the successor
// state and whether the input was handled. An unhandled input leaves the
// state unchanged and must propagate to the next handler; a handled input
// is consumed even when the state does not change (an absorbed no-op).
func (s State) transition(in key.Input) (State, bool) {
	class, digit := classify(in)
	if class == classOther {
		return s, false
	}

	switch s.tag {
	case TagDefault:
		switch class {
		case classCtrlU:
			return Multiplier(1), true
		case classModifiedDigit:
			return Numerical(digit), true
		case classCtrlMinus:
			return NegativeInput(), true
		}
		// Plain digits, plain minus and Escape mean nothing here; let
		// them reach the grid.
		return s, false

	case TagMultiplier:
		switch class {
		case classCtrlU:
			return Multiplier(s.count + 1), true
		case classPlainDigit, classModifiedDigit:
			return Numerical(digit), true
		case classPlainMinus, classCtrlMinus:
			return NegativeInput(), true
		case classEscape:
			return Default(), true
		}
		return s, false

	case TagNegativeInput:
		switch class {
		case classPlainDigit, classModifiedDigit:
			return Numerical(-digit), true
		case classEscape:
			return Default(), true
		case classCtrlU, classPlainMinus, classCtrlMinus:
			// Absorbed: consumed without a state change.
			return s, true
		}
		return s, false

	case TagNumerical:
		switch class {
		case classPlainDigit, classModifiedDigit:
			return Numerical(appendDigit(s.value, digit)), true
		case classEscape:
			return Default(), true
		case classCtrlU, classPlainMinus, classCtrlMinus:
			return s, true
		}
		return s, false
	}

	return s, false
}

// appendDigit appends a decimal digit to an accumulated value, keeping
// the sign: -5 followed by 2 yields -52.
func appendDigit(n, d int) int {
	if n < 0 {
		return n*10 - d
	}
	return n*10 + d
}
