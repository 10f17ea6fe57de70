// Package inputbox manages the single-line text entry surface used by
// multi-step command flows (value entry, variable names, expressions).
// At most one session is active at a time; while active it captures all
// key input.
package inputbox

import (
	"log"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
)

// Kind classifies what a session is collecting, so renderers and
// validators can treat value entry and name entry differently.
type Kind string

const (
	// KindExpression collects a value or expression to push.
	KindExpression Kind = "expression"
	// KindVariable collects a variable name.
	KindVariable Kind = "variable"
)

// DoneFunc receives the session outcome. ok is false when the session
// was cancelled; text is then empty.
type DoneFunc func(text string, ok bool)

// session is one in-flight text entry.
type session struct {
	id     string
	prompt string
	kind   Kind
	buffer string
	done   DoneFunc
}

// Manager owns the input-box state. It is a key handler meant to sit
// first in the dispatch order, filtered on Active, so an open session
// captures every key before the grids see it. Driven from the single UI
// event loop; not safe for concurrent use.
type Manager struct {
	active *session

	// OnRender, if set, is called with the prompt and current text after
	// every visible change, and with empty strings when the box closes.
	OnRender func(prompt, text string)
}

// NewManager creates an input-box manager with no active session.
func NewManager() *Manager {
	return &Manager{}
}

// Active reports whether a session is open. Use this as the predicate
// for a filtered dispatch handler.
func (m *Manager) Active() bool {
	return m.active != nil
}

// Show opens a session. An already-open session is cancelled first, as
// if the user had pressed Escape.
func (m *Manager) Show(prompt string, kind Kind, initial string, done DoneFunc) {
	if m.active != nil {
		m.Cancel()
	}
	m.active = &session{
		id:     uuid.NewString(),
		prompt: prompt,
		kind:   kind,
		buffer: initial,
		done:   done,
	}
	log.Printf("input box %s opened (%s): %s", m.active.id, kind, prompt)
	m.render()
}

// Cancel closes the open session with a negative outcome. No-op when
// nothing is open.
func (m *Manager) Cancel() {
	if m.active == nil {
		return
	}
	m.finish("", false)
}

// Text returns the current buffer, empty when no session is open.
func (m *Manager) Text() string {
	if m.active == nil {
		return ""
	}
	return m.active.buffer
}

// Prompt returns the current prompt, empty when no session is open.
func (m *Manager) Prompt() string {
	if m.active == nil {
		return ""
	}
	return m.active.prompt
}

// Kind returns the open session's kind, empty when no session is open.
func (m *Manager) Kind() Kind {
	if m.active == nil {
		return ""
	}
	return m.active.kind
}

// OnKeyDown edits the buffer. Every key is consumed while a session is
// open: Enter submits, Escape cancels, Backspace deletes, printable
// characters append, anything else is absorbed.
func (m *Manager) OnKeyDown(in key.Input) dispatch.Disposition {
	if m.active == nil {
		return dispatch.Pass
	}

	switch {
	case in.IsEnter():
		m.finish(m.active.buffer, true)
	case in.IsEscape():
		m.finish("", false)
	case in.Key == "Backspace" && in.Mods.IsEmpty():
		m.active.buffer = trimLastRune(m.active.buffer)
		m.render()
	default:
		if r := in.Rune(); r != 0 {
			m.active.buffer += string(r)
			m.render()
		}
	}
	return dispatch.Block
}

// finish closes the session before invoking the callback, so a callback
// may immediately open a follow-up session.
func (m *Manager) finish(text string, ok bool) {
	s := m.active
	m.active = nil
	log.Printf("input box %s closed (ok=%v)", s.id, ok)
	if m.OnRender != nil {
		m.OnRender("", "")
	}
	if s.done != nil {
		s.done(text, ok)
	}
}

func (m *Manager) render() {
	if m.OnRender != nil {
		m.OnRender(m.active.prompt, m.active.buffer)
	}
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
