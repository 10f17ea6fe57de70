package script

import (
	"log"

	"github.com/mfagan/keypad/internal/grid"
)

// Cell is a grid cell whose command is computed by a Lua script.
type Cell struct {
	// Text is the display label.
	Text string
	// Key is the canonical shortcut.
	Key string

	prog *Program
}

// NewCell compiles source into a script cell.
func (e *Engine) NewCell(label, shortcut, source string) (*Cell, error) {
	prog, err := e.Compile(label, source)
	if err != nil {
		return nil, err
	}
	return &Cell{Text: label, Key: shortcut, prog: prog}, nil
}

// CellFactory adapts the engine to the grid loader's script hook.
func (e *Engine) CellFactory() func(label, shortcut, source string) (grid.Cell, error) {
	return func(label, shortcut, source string) (grid.Cell, error) {
		return e.NewCell(label, shortcut, source)
	}
}

// Label returns the display text.
func (c *Cell) Label() string { return c.Text }

// Shortcut returns the bound key.
func (c *Cell) Shortcut() string { return c.Key }

// Fire runs the script and dispatches its command. A failing script
// surfaces as a notification; nothing is dispatched and modifier state
// is left alone so the user can retry.
func (c *Cell) Fire(ctx *grid.FireContext) {
	name, args, err := c.prog.Run(ctx.Modifiers)
	if err != nil {
		log.Printf("script cell %s: %v", c.Text, err)
		ctx.Notify("Script error: " + err.Error())
		return
	}
	ctx.Dispatch(name, args)
}

// Subcommand declares the cell invalid as a subcommand.
func (c *Cell) Subcommand() grid.SubcommandSpec {
	return grid.SubcommandSpec{Kind: grid.SubcommandInvalid}
}
