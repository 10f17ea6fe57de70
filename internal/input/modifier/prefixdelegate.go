package modifier

import (
	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
	"github.com/mfagan/keypad/internal/input/prefix"
)

// PrefixDelegate exposes a prefix.Machine as a modifier delegate so the
// numeric argument joins the chain's monoid fold.
type PrefixDelegate struct {
	machine *prefix.Machine
}

// NewPrefixDelegate wraps a prefix-argument machine.
func NewPrefixDelegate(machine *prefix.Machine) *PrefixDelegate {
	return &PrefixDelegate{machine: machine}
}

// Modifiers returns a snapshot carrying only the prefix argument.
func (p *PrefixDelegate) Modifiers() ButtonModifiers {
	return ButtonModifiers{PrefixArgument: p.machine.PrefixArgument()}
}

// ResetModifiers resets the machine to its default state.
func (p *PrefixDelegate) ResetModifiers() {
	p.machine.ResetModifiers()
}

// OnKeyDown forwards to the machine.
func (p *PrefixDelegate) OnKeyDown(in key.Input) dispatch.Disposition {
	return p.machine.OnKeyDown(in)
}
