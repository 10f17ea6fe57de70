package prefix

import (
	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
)

// Change describes a state transition for UI refresh.
type Change struct {
	// Old is the state before the transition.
	Old State
	// New is the state after the transition.
	New State
}

// ChangeCallback is notified on every state change.
type ChangeCallback func(Change)

// Machine owns the prefix-argument state for one UI session. It is a key
// handler: inputs relevant to the prefix argument are consumed (Block),
// everything else passes through unchanged.
type Machine struct {
	state     State
	callbacks []ChangeCallback
}

// NewMachine creates a machine in the default state.
func NewMachine() *Machine {
	return &Machine{state: Default()}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// PrefixArgument returns the current effective value, nil when absent.
func (m *Machine) PrefixArgument() *int {
	return m.state.PrefixArgument()
}

// OnChange registers a callback invoked after every state change.
func (m *Machine) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// OnKeyDown runs the transition function. A handled input is consumed
// even when the state is unchanged (absorbed no-ops in the numeric
// states).
func (m *Machine) OnKeyDown(in key.Input) dispatch.Disposition {
	next, handled := m.state.transition(in)
	if !handled {
		return dispatch.Pass
	}
	m.setState(next)
	return dispatch.Block
}

// ResetModifiers returns the machine to the default state. Called after
// every command dispatch and on Escape.
func (m *Machine) ResetModifiers() {
	m.setState(Default())
}

// setState installs the new state and notifies on actual changes.
func (m *Machine) setState(next State) {
	if next == m.state {
		return
	}
	change := Change{Old: m.state, New: next}
	m.state = next
	for _, cb := range m.callbacks {
		cb(change)
	}
}
