// Package backend defines the contract with the external computation
// engine. The engine owns the value stack, command semantics and undo
// history; this frontend only issues commands and queries.
package backend

import (
	"context"

	"github.com/mfagan/keypad/internal/input/modifier"
)

// Options is the modifier payload attached to every command invocation.
// It mirrors the frontend's ButtonModifiers snapshot.
type Options struct {
	// PrefixArgument is the numeric prefix argument, nil when absent.
	PrefixArgument *int `json:"prefixArgument"`

	// KeepModifier keeps the consumed stack elements.
	KeepModifier bool `json:"keepModifier"`

	// HyperbolicModifier selects the hyperbolic function variant.
	HyperbolicModifier bool `json:"hyperbolicModifier"`

	// InverseModifier selects the inverse function variant.
	InverseModifier bool `json:"inverseModifier"`
}

// OptionsFrom builds the wire options from a modifier snapshot.
func OptionsFrom(m modifier.ButtonModifiers) Options {
	return Options{
		PrefixArgument:     m.PrefixArgument,
		KeepModifier:       m.KeepModifier,
		HyperbolicModifier: m.HyperbolicModifier,
		InverseModifier:    m.InverseModifier,
	}
}

// ValidatorKind selects a backend-side value validator.
type ValidatorKind string

const (
	// ValidatorVariable checks that a value is usable as a variable name.
	ValidatorVariable ValidatorKind = "variable"
	// ValidatorExpression checks that a value parses as an expression.
	ValidatorExpression ValidatorKind = "expression"
)

// QueryKind selects a backend-side stack predicate.
type QueryKind string

const (
	// QueryIsGraphable asks whether the element can be plotted.
	QueryIsGraphable QueryKind = "is_graphable"
	// QueryHasBasisVector asks whether the element is a vector.
	QueryHasBasisVector QueryKind = "has_basis_vector"
)

// UndoDirection selects the direction of an undo action.
type UndoDirection string

const (
	// UndoAction undoes the most recent change.
	UndoAction UndoDirection = "undo"
	// RedoAction reapplies the most recently undone change.
	RedoAction UndoDirection = "redo"
)

// Backend is the command engine collaborator. Invoke is fire-and-forget
// from the dispatcher's point of view; the query and validation calls are
// awaited by multi-step input flows.
type Backend interface {
	// Invoke runs a named command with positional arguments and the
	// modifier options.
	Invoke(ctx context.Context, name string, args []string, opts Options) error

	// Validate asks whether value passes the given validator. A false
	// result silently aborts the calling input flow.
	Validate(ctx context.Context, value string, kind ValidatorKind) (bool, error)

	// ValidateStackSize asks whether the stack holds at least expected
	// elements.
	ValidateStackSize(ctx context.Context, expected int) (bool, error)

	// QueryStack evaluates a predicate against the stack element at
	// index (0 is top of stack).
	QueryStack(ctx context.Context, index int, kind QueryKind) (bool, error)

	// EditableElem returns the editable text form of the stack element
	// at index.
	EditableElem(ctx context.Context, index int) (string, error)

	// Undo performs an undo or redo action.
	Undo(ctx context.Context, direction UndoDirection) error
}
