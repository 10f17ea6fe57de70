package grid

import (
	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
	"github.com/mfagan/keypad/internal/input/modifier"
	"github.com/mfagan/keypad/internal/notify"
)

// CommandSink receives fired commands together with the invoking
// modifier snapshot.
type CommandSink interface {
	Dispatch(name string, args []string, mods modifier.ButtonModifiers)
}

// interactionMode is the manager's position in the navigation state
// machine.
type interactionMode uint8

const (
	// modeRoot: the root grid is active and modifier keys are live.
	modeRoot interactionMode = iota
	// modeSubgrid: a subgrid is active; keys go straight to cell lookup.
	modeSubgrid
	// modeSubcommand: a pending query consumes the next selection.
	modeSubcommand
)

// pendingQuery is an in-flight subcommand request. The invoking
// modifier snapshot lives in the FireContext the callback closed over.
type pendingQuery struct {
	callback func(id string)
	prevMode interactionMode
}

// Manager routes key events to the active grid and runs the navigation
// and subcommand state machines. It is driven from the single UI event
// loop and is not safe for concurrent use.
type Manager struct {
	root     *Grid
	active   *Grid
	mode     interactionMode
	pending  *pendingQuery
	chain    modifier.Delegate
	sink     CommandSink
	notifier notify.Notifier

	// OnGridChange, if set, is called whenever the active grid changes.
	OnGridChange func(*Grid)
}

// NewManager creates a grid manager rooted at root. The chain supplies
// and consumes modifier state; fired commands go to sink. A nil notifier
// discards messages.
func NewManager(root *Grid, chain modifier.Delegate, sink CommandSink, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{
		root:     root,
		active:   root,
		mode:     modeRoot,
		chain:    chain,
		sink:     sink,
		notifier: notifier,
	}
}

// ActiveGrid returns the currently displayed grid.
func (m *Manager) ActiveGrid() *Grid {
	return m.active
}

// SetActiveGrid replaces the displayed grid, for programmatic switches
// such as installing a freshly loaded grid set. Modifier state is not
// affected. Replacing the root grid itself re-roots the manager.
func (m *Manager) SetActiveGrid(g *Grid) {
	if g == m.root {
		m.setActive(g, modeRoot)
		return
	}
	m.setActive(g, modeSubgrid)
}

// SetRootGrid installs a new root grid and activates it, cancelling any
// pending subcommand. Used when grid definitions are reloaded.
func (m *Manager) SetRootGrid(g *Grid) {
	if m.pending != nil {
		m.pending = nil
		m.notifier.Hide()
	}
	m.root = g
	m.setActive(g, modeRoot)
}

// Modifiers returns the chain's current modifier snapshot.
func (m *Manager) Modifiers() modifier.ButtonModifiers {
	return m.chain.Modifiers()
}

// ResetState returns to the root grid, cancels any pending subcommand
// and clears all modifier state.
func (m *Manager) ResetState() {
	if m.pending != nil {
		m.pending = nil
		m.notifier.Hide()
	}
	m.setActive(m.root, modeRoot)
	m.chain.ResetModifiers()
}

// FireCell fires a cell as if it were clicked: the current modifier
// snapshot applies and subcommand entry is honored. This is the pointer
// input path; key presses go through OnKeyDown.
func (m *Manager) FireCell(cell Cell) {
	if m.mode == modeSubcommand {
		m.selectSubcommand(cell)
		return
	}
	cell.Fire(m.fireContext())
}

// OnKeyDown routes a key press. At the root grid modifier delegates see
// the key first; everywhere a matching cell shortcut fires the cell.
// During subcommand entry all keys are consumed: a valid selection
// resolves the query, Escape cancels it, anything else is absorbed.
func (m *Manager) OnKeyDown(in key.Input) dispatch.Disposition {
	switch m.mode {
	case modeSubcommand:
		return m.subcommandKey(in)
	case modeRoot:
		if m.chain.OnKeyDown(in) == dispatch.Block {
			return dispatch.Block
		}
	}

	cell := m.active.Lookup(in.Syntax())
	if cell == nil {
		if m.active.Unhandled != nil {
			return m.active.Unhandled(in, m.fireContext())
		}
		return dispatch.Pass
	}
	cell.Fire(m.fireContext())
	return dispatch.Block
}

func (m *Manager) subcommandKey(in key.Input) dispatch.Disposition {
	if in.IsEscape() {
		q := m.pending
		m.pending = nil
		m.mode = q.prevMode
		m.notifier.Hide()
		return dispatch.Block
	}

	// A query raised from a subgrid still selects among the root grid's
	// operators, so the lookup falls back there.
	cell := m.active.Lookup(in.Syntax())
	if cell == nil && m.active != m.root {
		cell = m.root.Lookup(in.Syntax())
	}
	if cell == nil {
		// Absorbed: stray keys must not leak past a pending query.
		return dispatch.Block
	}
	m.selectSubcommand(cell)
	return dispatch.Block
}

// selectSubcommand resolves the pending query against the chosen cell.
// The query is closed before the callback runs so a callback may open a
// follow-up query immediately.
func (m *Manager) selectSubcommand(cell Cell) {
	q := m.pending
	spec := cell.Subcommand()

	m.pending = nil
	m.mode = q.prevMode
	m.notifier.Hide()

	switch spec.Kind {
	case SubcommandPass:
		cell.Fire(m.fireContext())
	case SubcommandID:
		q.callback(spec.ID)
	default:
		m.notifier.Show("Invalid subcommand")
	}
}

func (m *Manager) fireContext() *FireContext {
	return &FireContext{mgr: m, Modifiers: m.chain.Modifiers()}
}

func (m *Manager) setActive(g *Grid, mode interactionMode) {
	changed := m.active != g
	m.active = g
	m.mode = mode
	if changed && m.OnGridChange != nil {
		m.OnGridChange(g)
	}
}

// FireContext is handed to a firing cell. It carries the modifier
// snapshot taken at invocation time and gives the cell controlled access
// to the manager.
type FireContext struct {
	mgr *Manager

	// Modifiers is the snapshot in effect when the cell fired.
	Modifiers modifier.ButtonModifiers
}

// dispatch sends a command with the context's snapshot, then resets
// navigation and modifier state unless the cell asked to keep it.
func (c *FireContext) dispatch(name string, args []string, keepModifiers bool) {
	c.mgr.sink.Dispatch(name, args, c.Modifiers)
	if !keepModifiers {
		c.mgr.ResetState()
	}
}

// Dispatch sends a command with the context's modifier snapshot and
// resets grid and modifier state, the normal post-command behavior.
func (c *FireContext) Dispatch(name string, args []string) {
	c.dispatch(name, args, false)
}

// Activate switches to another grid. Modifier state is untouched so a
// prefix argument survives navigation.
func (c *FireContext) Activate(g *Grid) {
	c.mgr.SetActiveGrid(g)
}

// Back returns to the root grid without touching modifier state.
func (c *FireContext) Back() {
	c.mgr.setActive(c.mgr.root, modeRoot)
}

// QuerySubcommand asks for one subcommand selection from the active
// grid. The label is shown while the query is pending; the callback
// receives the selected identity. The invoking modifiers stay available
// through the context for the eventual dispatch.
func (c *FireContext) QuerySubcommand(label string, callback func(id string)) {
	c.mgr.pending = &pendingQuery{
		callback: callback,
		prevMode: c.mgr.mode,
	}
	c.mgr.mode = modeSubcommand
	c.mgr.notifier.Show(label)
}

// ResetState resets the manager, identical to Manager.ResetState.
func (c *FireContext) ResetState() {
	c.mgr.ResetState()
}

// Notify shows a transient message.
func (c *FireContext) Notify(message string) {
	c.mgr.notifier.Show(message)
}
