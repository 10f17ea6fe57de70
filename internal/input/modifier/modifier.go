// Package modifier tracks the transient modifiers attached to the next
// backend command: the Emacs-style numeric prefix argument and the sticky
// keep/hyperbolic/inverse flags.
package modifier

import (
	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
)

// ButtonModifiers is the modifier snapshot sent with every backend
// command. It forms a monoid under Combine with Identity as the unit.
type ButtonModifiers struct {
	// PrefixArgument is the numeric prefix argument, nil when absent.
	PrefixArgument *int

	// KeepModifier requests that the consumed stack elements be kept.
	KeepModifier bool

	// HyperbolicModifier selects the hyperbolic variant of a function.
	HyperbolicModifier bool

	// InverseModifier selects the inverse variant of a function.
	InverseModifier bool
}

// Identity returns the empty modifier set: no prefix argument, all flags
// clear.
func Identity() ButtonModifiers {
	return ButtonModifiers{}
}

// Combine merges two modifier sets. Boolean flags combine with OR; for
// the prefix argument the left operand wins when both are set.
func Combine(a, b ButtonModifiers) ButtonModifiers {
	out := ButtonModifiers{
		KeepModifier:       a.KeepModifier || b.KeepModifier,
		HyperbolicModifier: a.HyperbolicModifier || b.HyperbolicModifier,
		InverseModifier:    a.InverseModifier || b.InverseModifier,
	}
	if a.PrefixArgument != nil {
		out.PrefixArgument = a.PrefixArgument
	} else {
		out.PrefixArgument = b.PrefixArgument
	}
	return out
}

// WithPrefixArgument returns a copy with the prefix argument set.
func (m ButtonModifiers) WithPrefixArgument(n int) ButtonModifiers {
	m.PrefixArgument = &n
	return m
}

// IsIdentity returns true if the set carries no information.
func (m ButtonModifiers) IsIdentity() bool {
	return m.PrefixArgument == nil && !m.KeepModifier && !m.HyperbolicModifier && !m.InverseModifier
}

// Delegate is one source of button modifiers in the chain. A delegate
// may intercept key events to update its own state.
type Delegate interface {
	dispatch.Handler

	// Modifiers returns the delegate's current modifier snapshot.
	Modifiers() ButtonModifiers

	// ResetModifiers clears the delegate's transient state. Called after
	// every command dispatch.
	ResetModifiers()
}

// Chain composes delegates in priority order. Its modifier snapshot is
// the monoid fold of all children, so a flag set by any child is visible;
// key events run through the children sequentially with first-Block-wins
// semantics.
type Chain struct {
	delegates []Delegate
}

// NewChain creates a delegate chain. Order is significant: earlier
// delegates see key events first and win prefix-argument conflicts.
func NewChain(delegates ...Delegate) *Chain {
	return &Chain{delegates: delegates}
}

// Modifiers folds all children's snapshots through Combine.
func (c *Chain) Modifiers() ButtonModifiers {
	out := Identity()
	for _, d := range c.delegates {
		out = Combine(out, d.Modifiers())
	}
	return out
}

// ResetModifiers resets every child.
func (c *Chain) ResetModifiers() {
	for _, d := range c.delegates {
		d.ResetModifiers()
	}
}

// OnKeyDown offers the event to each child in order, stopping at the
// first Block.
func (c *Chain) OnKeyDown(in key.Input) dispatch.Disposition {
	for _, d := range c.delegates {
		if d.OnKeyDown(in) == dispatch.Block {
			return dispatch.Block
		}
	}
	return dispatch.Pass
}
