// Package dispatch provides the composition primitives for the key
// dispatch chain. Handlers are tried in a caller-supplied order; the
// first handler to claim (Block) an event stops propagation.
package dispatch

import "github.com/mfagan/keypad/internal/input/key"

// Disposition is the outcome of offering a key event to a handler.
type Disposition uint8

const (
	// Pass forwards the event to the next handler in the chain.
	Pass Disposition = iota
	// Block consumes the event and stops propagation.
	Block
)

// String returns a string representation of the disposition.
func (d Disposition) String() string {
	if d == Block {
		return "block"
	}
	return "pass"
}

// Handler consumes key events.
type Handler interface {
	// OnKeyDown offers a key event to the handler.
	OnKeyDown(in key.Input) Disposition
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(in key.Input) Disposition

// OnKeyDown calls f.
func (f HandlerFunc) OnKeyDown(in key.Input) Disposition {
	return f(in)
}

// sequential tries each child in order, short-circuiting on Block.
type sequential struct {
	handlers []Handler
}

// Sequential composes handlers into one. The first child to return Block
// wins and later children are not invoked; if every child passes, the
// composite passes.
func Sequential(handlers ...Handler) Handler {
	return &sequential{handlers: handlers}
}

func (s *sequential) OnKeyDown(in key.Input) Disposition {
	for _, h := range s.handlers {
		if h.OnKeyDown(in) == Block {
			return Block
		}
	}
	return Pass
}

// filtered gates a handler behind a predicate.
type filtered struct {
	handler Handler
	pred    func(in key.Input) bool
}

// Filtered invokes handler only when pred holds for the event; otherwise
// the event passes through without the handler seeing it.
func Filtered(handler Handler, pred func(in key.Input) bool) Handler {
	return &filtered{handler: handler, pred: pred}
}

func (f *filtered) OnKeyDown(in key.Input) Disposition {
	if !f.pred(in) {
		return Pass
	}
	return f.handler.OnKeyDown(in)
}
