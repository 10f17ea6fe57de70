// Package app wires the input pipeline together: input box, undo keys,
// modifier delegates and the button grids, in that priority order.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mfagan/keypad/internal/backend"
	"github.com/mfagan/keypad/internal/config"
	"github.com/mfagan/keypad/internal/grid"
	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
	"github.com/mfagan/keypad/internal/input/modifier"
	"github.com/mfagan/keypad/internal/input/prefix"
	"github.com/mfagan/keypad/internal/inputbox"
	"github.com/mfagan/keypad/internal/notify"
	"github.com/mfagan/keypad/internal/script"
	"github.com/mfagan/keypad/internal/stackview"
)

// validateTimeout bounds the awaited backend validations inside input
// flows. These are quick queries; a stuck backend should not freeze the
// input pipeline for long.
const validateTimeout = 5 * time.Second

// Controller owns the frontend input pipeline. It is driven from the
// single UI event loop and is not safe for concurrent use.
type Controller struct {
	backend    backend.Backend
	dispatcher *backend.Dispatcher
	notifier   notify.Notifier

	// cfgMu guards hostOS, which ApplyConfig may rewrite from the config
	// watcher goroutine while the event loop reads it.
	cfgMu  sync.RWMutex
	hostOS key.HostOS

	box       *inputbox.Manager
	grids     *grid.Manager
	overrides *keyOverrides
	engine    *script.Engine
	plots     *stackview.PlotCache

	handler dispatch.Handler
}

// New builds a controller from the configuration. A nil notifier
// discards messages.
func New(b backend.Backend, notifier notify.Notifier, cfg config.Config) (*Controller, error) {
	if notifier == nil {
		notifier = notify.Nop{}
	}

	plots, err := stackview.NewPlotCache(cfg.Plot.CacheSize)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		backend:    b,
		dispatcher: backend.NewDispatcher(b, notifier),
		notifier:   notifier,
		hostOS:     cfg.HostOS(),
		box:        inputbox.NewManager(),
		overrides:  newKeyOverrides(),
		engine:     script.NewEngine(),
		plots:      plots,
	}
	if err := c.overrides.Replace(cfg.Input.Bindings); err != nil {
		c.engine.Close()
		return nil, err
	}

	root, err := c.buildGrids(cfg)
	if err != nil {
		c.engine.Close()
		return nil, err
	}

	chain := modifier.NewChain(
		modifier.NewPrefixDelegate(prefix.NewMachine()),
		modifier.NewStickyDelegate(nil),
	)
	c.grids = grid.NewManager(root, chain, c.dispatcher, notifier)

	c.handler = dispatch.Sequential(
		dispatch.Filtered(c.box, func(key.Input) bool { return c.box.Active() }),
		dispatch.HandlerFunc(c.undoKeys),
		dispatch.HandlerFunc(c.overrideKeys),
		c.grids,
	)
	return c, nil
}

// ApplyConfig applies a reloaded configuration to the running
// controller: key bindings and the host modifier mapping take effect
// immediately. Grid definitions and the plot cache keep their startup
// values. Safe to call from the config watcher goroutine.
func (c *Controller) ApplyConfig(cfg config.Config) error {
	if err := c.overrides.Replace(cfg.Input.Bindings); err != nil {
		return err
	}
	c.cfgMu.Lock()
	c.hostOS = cfg.HostOS()
	c.cfgMu.Unlock()
	log.Printf("configuration applied: %d key bindings", len(cfg.Input.Bindings))
	return nil
}

// Close releases the controller's resources.
func (c *Controller) Close() {
	c.engine.Close()
}

func (c *Controller) buildGrids(cfg config.Config) (*grid.Grid, error) {
	if cfg.Grids.File != "" {
		loader := grid.Loader{ScriptFactory: c.engine.CellFactory()}
		_, root, err := loader.LoadFile(cfg.Grids.File)
		if err != nil {
			return nil, err
		}
		return root, nil
	}

	root, _ := grid.Defaults(grid.DefaultsConfig{
		NumericEntry:  c.numericEntry,
		EnterValue:    func(ctx *grid.FireContext) { c.enterValue(ctx, "") },
		StoreVariable: c.storeVariable,
		EditElem:      c.editElem,
	})
	return root, nil
}

// HandleRaw maps a physical key event through the host modifier mapping
// and feeds it to the pipeline. Pure modifier presses are dropped.
func (c *Controller) HandleRaw(ev key.RawEvent) dispatch.Disposition {
	c.cfgMu.RLock()
	hostOS := c.hostOS
	c.cfgMu.RUnlock()

	in, ok := key.FromEvent(ev, hostOS)
	if !ok {
		return dispatch.Pass
	}
	return c.HandleKey(in)
}

// HandleKey feeds a normalized key event to the pipeline.
func (c *Controller) HandleKey(in key.Input) dispatch.Disposition {
	return c.handler.OnKeyDown(in)
}

// Grids exposes the grid manager for rendering and click dispatch.
func (c *Controller) Grids() *grid.Manager {
	return c.grids
}

// Box exposes the input-box manager for rendering.
func (c *Controller) Box() *inputbox.Manager {
	return c.box
}

// Plots exposes the plot image cache.
func (c *Controller) Plots() *stackview.PlotCache {
	return c.plots
}

// Wait blocks until detached backend invocations settle. Test hook.
func (c *Controller) Wait() {
	c.dispatcher.Wait()
}

// undoKeys handles the Emacs undo bindings: C-/ and C-_ undo, C-? redo.
func (c *Controller) undoKeys(in key.Input) dispatch.Disposition {
	if !in.Mods.HasCtrl() || in.Mods.Has(key.ModMeta) || in.Mods.Has(key.ModSuper) {
		return dispatch.Pass
	}
	switch in.Key {
	case "/", "_":
		c.dispatcher.Undo(backend.UndoAction)
	case "?":
		c.dispatcher.Undo(backend.RedoAction)
	default:
		return dispatch.Pass
	}
	return dispatch.Block
}

// overrideKeys dispatches user-configured shortcut bindings. They sit
// between the undo chords and the grids, so an override can shadow a
// grid shortcut but not the built-in undo keys. The current modifier
// snapshot applies, and state resets as after any fired command.
func (c *Controller) overrideKeys(in key.Input) dispatch.Disposition {
	b, ok := c.overrides.lookup(in.Syntax())
	if !ok {
		return dispatch.Pass
	}
	c.dispatcher.Dispatch(b.name, b.args, c.grids.Modifiers())
	c.grids.ResetState()
	return dispatch.Block
}

// numericEntry opens the value entry flow when an unbound digit or point
// is pressed on the root grid.
func (c *Controller) numericEntry(in key.Input, ctx *grid.FireContext) dispatch.Disposition {
	r := in.Rune()
	if (r < '0' || r > '9') && r != '.' {
		return dispatch.Pass
	}
	c.enterValue(ctx, string(r))
	return dispatch.Block
}

// enterValue prompts for a value, validates it as an expression and
// pushes it. A failed validation aborts silently; the stack is
// untouched.
func (c *Controller) enterValue(ctx *grid.FireContext, initial string) {
	mods := ctx.Modifiers
	c.box.Show("Value:", inputbox.KindExpression, initial, func(text string, ok bool) {
		if !ok || text == "" {
			return
		}
		if !c.validate(text, backend.ValidatorExpression) {
			return
		}
		c.dispatcher.Dispatch("push", []string{text}, mods)
		ctx.ResetState()
	})
}

// storeVariable prompts for a variable name and stores the top element.
func (c *Controller) storeVariable(ctx *grid.FireContext) {
	mods := ctx.Modifiers
	c.box.Show("Store to:", inputbox.KindVariable, "", func(text string, ok bool) {
		if !ok || text == "" {
			return
		}
		if !c.validate(text, backend.ValidatorVariable) {
			return
		}
		c.dispatcher.Dispatch("store", []string{text}, mods)
		ctx.ResetState()
	})
}

// editElem fetches the editable form of the top element, lets the user
// modify it and replaces the element on submit.
func (c *Controller) editElem(ctx *grid.FireContext) {
	cctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	current, err := c.backend.EditableElem(cctx, 0)
	if err != nil {
		log.Printf("fetching editable element: %v", err)
		c.notifier.Show("Error: " + err.Error())
		return
	}

	mods := ctx.Modifiers
	c.box.Show("Edit:", inputbox.KindExpression, current, func(text string, ok bool) {
		if !ok || text == "" {
			return
		}
		if !c.validate(text, backend.ValidatorExpression) {
			return
		}
		c.dispatcher.Dispatch("edit", []string{text}, mods)
		ctx.ResetState()
	})
}

// PlotTop plots the top stack element if the backend reports it
// graphable.
func (c *Controller) PlotTop() {
	cctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	ok, err := c.backend.QueryStack(cctx, 0, backend.QueryIsGraphable)
	if err != nil {
		log.Printf("graphability query: %v", err)
		c.notifier.Show("Error: " + err.Error())
		return
	}
	if !ok {
		c.notifier.Show("Top of stack is not graphable")
		return
	}
	c.dispatcher.Dispatch("plot", nil, c.grids.Modifiers())
}

// RequireStack checks that the stack holds at least n elements,
// notifying on shortfall. Input flows that consume several elements call
// this before prompting.
func (c *Controller) RequireStack(n int) bool {
	cctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	ok, err := c.backend.ValidateStackSize(cctx, n)
	if err != nil {
		log.Printf("stack size check: %v", err)
		c.notifier.Show("Error: " + err.Error())
		return false
	}
	if !ok {
		c.notifier.Show(fmt.Sprintf("Need at least %d stack elements", n))
	}
	return ok
}

// validate runs an awaited backend validation. False aborts the calling
// flow without any user-visible noise; only transport errors surface.
func (c *Controller) validate(value string, kind backend.ValidatorKind) bool {
	cctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	ok, err := c.backend.Validate(cctx, value, kind)
	if err != nil {
		log.Printf("validating %q as %s: %v", value, kind, err)
		c.notifier.Show("Error: " + err.Error())
		return false
	}
	return ok
}
