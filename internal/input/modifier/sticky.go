package modifier

import (
	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
)

// Default sticky-flag bindings. Uppercase so they do not shadow the
// lowercase command shortcuts on the grids.
const (
	keepKey       = "K"
	hyperbolicKey = "H"
	inverseKey    = "I"
)

// StickyDelegate toggles the keep, hyperbolic and inverse flags on
// dedicated key presses. A flag persists across key presses until toggled
// off or consumed by a command (via ResetModifiers).
type StickyDelegate struct {
	keep       bool
	hyperbolic bool
	inverse    bool

	onChange func(ButtonModifiers)
}

// NewStickyDelegate creates a sticky-flag delegate. onChange, if non-nil,
// is invoked with the new snapshot after every toggle so the UI can
// refresh its flag indicators.
func NewStickyDelegate(onChange func(ButtonModifiers)) *StickyDelegate {
	return &StickyDelegate{onChange: onChange}
}

// Modifiers returns the current sticky-flag snapshot.
func (s *StickyDelegate) Modifiers() ButtonModifiers {
	return ButtonModifiers{
		KeepModifier:       s.keep,
		HyperbolicModifier: s.hyperbolic,
		InverseModifier:    s.inverse,
	}
}

// ResetModifiers clears all sticky flags.
func (s *StickyDelegate) ResetModifiers() {
	changed := s.keep || s.hyperbolic || s.inverse
	s.keep = false
	s.hyperbolic = false
	s.inverse = false
	if changed {
		s.notify()
	}
}

// OnKeyDown toggles the flag bound to the pressed key. Toggle, not set:
// pressing the key twice returns the flag to its previous state.
func (s *StickyDelegate) OnKeyDown(in key.Input) dispatch.Disposition {
	if !in.Mods.IsEmpty() {
		return dispatch.Pass
	}

	switch in.Key {
	case keepKey:
		s.keep = !s.keep
	case hyperbolicKey:
		s.hyperbolic = !s.hyperbolic
	case inverseKey:
		s.inverse = !s.inverse
	default:
		return dispatch.Pass
	}

	s.notify()
	return dispatch.Block
}

func (s *StickyDelegate) notify() {
	if s.onChange != nil {
		s.onChange(s.Modifiers())
	}
}
