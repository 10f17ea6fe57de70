package grid

import (
	"testing"

	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
	"github.com/mfagan/keypad/internal/input/modifier"
	"github.com/mfagan/keypad/internal/input/prefix"
)

// recordingSink captures dispatched commands.
type recordingSink struct {
	calls []sinkCall
}

type sinkCall struct {
	name string
	args []string
	mods modifier.ButtonModifiers
}

func (s *recordingSink) Dispatch(name string, args []string, mods modifier.ButtonModifiers) {
	s.calls = append(s.calls, sinkCall{name: name, args: args, mods: mods})
}

// captureNotifier records shows and hides in order.
type captureNotifier struct {
	events []string
}

func (n *captureNotifier) Show(msg string) { n.events = append(n.events, "show:"+msg) }
func (n *captureNotifier) Hide()           { n.events = append(n.events, "hide") }

func press(t *testing.T, m *Manager, syntaxes ...string) dispatch.Disposition {
	t.Helper()
	var d dispatch.Disposition
	for _, syntax := range syntaxes {
		in, err := key.ParseSyntax(syntax)
		if err != nil {
			t.Fatalf("ParseSyntax(%q): %v", syntax, err)
		}
		d = m.OnKeyDown(in)
	}
	return d
}

func newTestChain() *modifier.Chain {
	return modifier.NewChain(
		modifier.NewPrefixDelegate(prefix.NewMachine()),
		modifier.NewStickyDelegate(nil),
	)
}

func testGrids() (*Grid, *Grid) {
	sub := &Grid{
		Name:    "ops",
		Columns: 2,
		Rows: [][]Cell{
			{
				&DispatchCell{Text: "sin", Key: "s", Command: "sin", SubID: "sin"},
				&BackCell{Text: "back", Key: "Escape"},
			},
		},
	}
	root := &Grid{
		Name:    "root",
		Columns: 4,
	}
	root.Rows = [][]Cell{
		{
			&DispatchCell{Text: "+", Key: "+", Command: "+", SubID: "+"},
			&DispatchCell{Text: "*", Key: "*", Command: "*", SubID: "*"},
			&DispatchCell{Text: "dup", Key: "Enter", Command: "dup"},
			&GotoCell{Text: "ops", Key: "o", Target: sub},
		},
		{
			&QueryCell{
				Text:    "reduce",
				Key:     "r",
				Prompts: []string{"Reduce with:"},
				Build: func(ids []string) (string, []string) {
					return "reduce", []string{ids[0]}
				},
			},
			&QueryCell{
				Text:    "inner",
				Key:     "i",
				Prompts: []string{"Multiply with:", "Reduce with:"},
				Build: func(ids []string) (string, []string) {
					return "inner", []string{ids[0], ids[1]}
				},
			},
			&DispatchCell{Text: "map", Key: "m", Command: "map"},
			SpacerCell{},
		},
	}
	return root, sub
}

func TestShortcutDispatchesAndResets(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	chain := newTestChain()
	m := NewManager(root, chain, sink, nil)

	// C-u C-u sets the multiplied prefix argument, then + fires with it.
	press(t, m, "C-u")
	press(t, m, "C-u")
	if got := press(t, m, "+"); got != dispatch.Block {
		t.Fatalf("disposition = %v, want Block", got)
	}

	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.name != "+" {
		t.Errorf("command = %q, want %q", call.name, "+")
	}
	if call.mods.PrefixArgument == nil || *call.mods.PrefixArgument != 8 {
		t.Errorf("prefix argument = %v, want 8", call.mods.PrefixArgument)
	}

	// Dispatch consumes the modifiers.
	if got := m.Modifiers(); !got.IsIdentity() {
		t.Errorf("modifiers after dispatch = %+v, want identity", got)
	}
}

func TestUnboundKeyPasses(t *testing.T) {
	root, _ := testGrids()
	m := NewManager(root, newTestChain(), &recordingSink{}, nil)

	if got := press(t, m, "z"); got != dispatch.Pass {
		t.Errorf("disposition = %v, want Pass", got)
	}
}

func TestUnhandledHookRuns(t *testing.T) {
	root, _ := testGrids()
	var seen []string
	root.Unhandled = func(in key.Input, _ *FireContext) dispatch.Disposition {
		seen = append(seen, in.Syntax())
		return dispatch.Block
	}
	m := NewManager(root, newTestChain(), &recordingSink{}, nil)

	if got := press(t, m, "z"); got != dispatch.Block {
		t.Errorf("disposition = %v, want Block", got)
	}
	if len(seen) != 1 || seen[0] != "z" {
		t.Errorf("hook saw %v, want [z]", seen)
	}
}

func TestNavigationKeepsModifiers(t *testing.T) {
	root, sub := testGrids()
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	press(t, m, "C-u") // prefix argument 4
	press(t, m, "o")   // enter the ops subgrid
	if m.ActiveGrid() != sub {
		t.Fatalf("active grid = %s, want ops", m.ActiveGrid().Name)
	}

	press(t, m, "s") // sin fires with the surviving prefix
	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	if pa := sink.calls[0].mods.PrefixArgument; pa == nil || *pa != 4 {
		t.Errorf("prefix argument = %v, want 4", pa)
	}

	// Dispatch returns to the root grid.
	if m.ActiveGrid() != root {
		t.Errorf("active grid after dispatch = %s, want root", m.ActiveGrid().Name)
	}
}

func TestSubgridEscapeGoesBack(t *testing.T) {
	root, sub := testGrids()
	m := NewManager(root, newTestChain(), &recordingSink{}, nil)

	press(t, m, "o")
	if m.ActiveGrid() != sub {
		t.Fatalf("active grid = %s, want ops", m.ActiveGrid().Name)
	}
	press(t, m, "Escape")
	if m.ActiveGrid() != root {
		t.Errorf("active grid = %s, want root", m.ActiveGrid().Name)
	}
}

func TestStickyKeyInactiveOnSubgrid(t *testing.T) {
	root, _ := testGrids()
	m := NewManager(root, newTestChain(), &recordingSink{}, nil)

	press(t, m, "o")
	// Modifier delegates only see keys at the root grid, and the ops grid
	// has no K binding, so the press falls through.
	if got := press(t, m, "K"); got != dispatch.Pass {
		t.Errorf("disposition = %v, want Pass", got)
	}
	if m.Modifiers().KeepModifier {
		t.Error("keep flag set from a subgrid key press")
	}
}

func TestSubcommandSelection(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	notifier := &captureNotifier{}
	m := NewManager(root, newTestChain(), sink, notifier)

	press(t, m, "C-u")
	press(t, m, "r") // reduce: queries for an operator
	if len(notifier.events) == 0 || notifier.events[len(notifier.events)-1] != "show:Reduce with:" {
		t.Fatalf("notifier events = %v, want trailing show of the prompt", notifier.events)
	}

	press(t, m, "*")
	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.name != "reduce" || len(call.args) != 1 || call.args[0] != "*" {
		t.Errorf("dispatched %s %v, want reduce [*]", call.name, call.args)
	}
	// The invoking modifiers, not the post-query state, ride along.
	if pa := call.mods.PrefixArgument; pa == nil || *pa != 4 {
		t.Errorf("prefix argument = %v, want 4", pa)
	}
	if notifier.events[len(notifier.events)-1] != "hide" {
		t.Errorf("notifier events = %v, want trailing hide", notifier.events)
	}
}

func TestSubcommandEscapeCancels(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	press(t, m, "r")
	if got := press(t, m, "Escape"); got != dispatch.Block {
		t.Fatalf("disposition = %v, want Block", got)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("got %d dispatches after cancel, want 0", len(sink.calls))
	}

	// The grid is interactive again.
	press(t, m, "+")
	if len(sink.calls) != 1 || sink.calls[0].name != "+" {
		t.Errorf("dispatches after cancel = %+v, want [+]", sink.calls)
	}
}

func TestSubcommandAbsorbsStrayKeys(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	press(t, m, "r")
	if got := press(t, m, "z"); got != dispatch.Block {
		t.Errorf("disposition = %v, want Block", got)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("stray key dispatched %+v", sink.calls)
	}

	// The query is still pending.
	press(t, m, "+")
	if len(sink.calls) != 1 || sink.calls[0].name != "reduce" {
		t.Errorf("dispatches = %+v, want [reduce]", sink.calls)
	}
}

func TestSubcommandInvalidCell(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	notifier := &captureNotifier{}
	m := NewManager(root, newTestChain(), sink, notifier)

	press(t, m, "r")
	press(t, m, "m") // map has no subcommand identity
	if len(sink.calls) != 0 {
		t.Fatalf("invalid selection dispatched %+v", sink.calls)
	}
	if notifier.events[len(notifier.events)-1] != "show:Invalid subcommand" {
		t.Errorf("notifier events = %v, want trailing invalid-subcommand message", notifier.events)
	}
}

func TestSubcommandChaining(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	notifier := &captureNotifier{}
	m := NewManager(root, newTestChain(), sink, notifier)

	press(t, m, "i") // inner: two chained queries
	press(t, m, "*")
	if len(sink.calls) != 0 {
		t.Fatalf("dispatched after first selection: %+v", sink.calls)
	}
	if notifier.events[len(notifier.events)-1] != "show:Reduce with:" {
		t.Fatalf("notifier events = %v, want second prompt shown", notifier.events)
	}

	press(t, m, "+")
	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.name != "inner" || len(call.args) != 2 || call.args[0] != "*" || call.args[1] != "+" {
		t.Errorf("dispatched %s %v, want inner [* +]", call.name, call.args)
	}
}

func TestResetStateCancelsEverything(t *testing.T) {
	root, _ := testGrids()
	m := NewManager(root, newTestChain(), &recordingSink{}, nil)

	press(t, m, "C-u")
	press(t, m, "o")
	m.ResetState()

	if m.ActiveGrid() != root {
		t.Errorf("active grid = %s, want root", m.ActiveGrid().Name)
	}
	if !m.Modifiers().IsIdentity() {
		t.Errorf("modifiers = %+v, want identity", m.Modifiers())
	}
}

func TestFireCellClickPath(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	press(t, m, "K") // sticky keep flag
	m.FireCell(root.Lookup("+"))

	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	if !sink.calls[0].mods.KeepModifier {
		t.Error("keep modifier not carried on click dispatch")
	}
}

func TestDefaultGridReduceFlow(t *testing.T) {
	root, _ := Defaults(DefaultsConfig{})
	sink := &recordingSink{}
	notifier := &captureNotifier{}
	m := NewManager(root, newTestChain(), sink, notifier)

	// Reduce lives on the vector grid; its operator is picked from the
	// root grid's cells.
	press(t, m, "v", "r", "+")

	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.name != "reduce" || len(call.args) != 1 || call.args[0] != "+" {
		t.Errorf("dispatched %s %v, want reduce [+]", call.name, call.args)
	}
	if notifier.events[len(notifier.events)-1] != "hide" {
		t.Errorf("notifier events = %v, want trailing hide", notifier.events)
	}
}

func TestDefaultGridInnerFlow(t *testing.T) {
	root, _ := Defaults(DefaultsConfig{})
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	press(t, m, "v", "i", "*", "+")

	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.name != "inner" || len(call.args) != 2 || call.args[0] != "*" || call.args[1] != "+" {
		t.Errorf("dispatched %s %v, want inner [* +]", call.name, call.args)
	}
}

func TestDefaultGridInvalidSubcommandSelection(t *testing.T) {
	root, _ := Defaults(DefaultsConfig{})
	sink := &recordingSink{}
	notifier := &captureNotifier{}
	m := NewManager(root, newTestChain(), sink, notifier)

	// pack carries no subcommand identity; picking it aborts the query.
	press(t, m, "v", "r", "p")

	if len(sink.calls) != 0 {
		t.Fatalf("invalid selection dispatched %+v", sink.calls)
	}
	if notifier.events[len(notifier.events)-1] != "show:Invalid subcommand" {
		t.Errorf("notifier events = %v, want trailing invalid-subcommand message", notifier.events)
	}
}

func TestSetActiveGridProgrammatic(t *testing.T) {
	root, sub := testGrids()
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	press(t, m, "C-u")
	m.SetActiveGrid(sub)

	if m.ActiveGrid() != sub {
		t.Fatalf("active grid = %s, want ops", m.ActiveGrid().Name)
	}
	// Modifiers survive the switch, and the grid is keyed as a subgrid.
	press(t, m, "s")
	if len(sink.calls) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(sink.calls))
	}
	if pa := sink.calls[0].mods.PrefixArgument; pa == nil || *pa != 4 {
		t.Errorf("prefix argument = %v, want 4", pa)
	}

	m.SetActiveGrid(root)
	if m.ActiveGrid() != root {
		t.Errorf("active grid = %s, want root", m.ActiveGrid().Name)
	}
}

func TestSetRootGridReplacesGridSet(t *testing.T) {
	root, _ := testGrids()
	sink := &recordingSink{}
	m := NewManager(root, newTestChain(), sink, nil)

	// A pending query must not survive a grid-set reload.
	press(t, m, "r")

	newRoot := &Grid{
		Name:    "root2",
		Columns: 1,
		Rows: [][]Cell{
			{&DispatchCell{Text: "neg", Key: "n", Command: "neg"}},
		},
	}
	m.SetRootGrid(newRoot)

	if m.ActiveGrid() != newRoot {
		t.Fatalf("active grid = %s, want root2", m.ActiveGrid().Name)
	}
	press(t, m, "n")
	if len(sink.calls) != 1 || sink.calls[0].name != "neg" {
		t.Errorf("dispatches = %+v, want [neg]", sink.calls)
	}
}

func TestGridChangeCallback(t *testing.T) {
	root, sub := testGrids()
	m := NewManager(root, newTestChain(), &recordingSink{}, nil)

	var changes []string
	m.OnGridChange = func(g *Grid) { changes = append(changes, g.Name) }

	press(t, m, "o")
	press(t, m, "Escape")
	if len(changes) != 2 || changes[0] != sub.Name || changes[1] != root.Name {
		t.Errorf("grid changes = %v, want [ops root]", changes)
	}
}
