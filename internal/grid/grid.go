// Package grid implements the button-grid layer: rectangular layouts of
// command cells, shortcut lookup, subgrid navigation and the subcommand
// entry flow.
package grid

import (
	"log"

	"github.com/mfagan/keypad/internal/input/dispatch"
	"github.com/mfagan/keypad/internal/input/key"
)

// UnhandledFunc is a grid's fallback for keys that match no cell
// shortcut. Returning Pass forwards the key to later handlers.
type UnhandledFunc func(in key.Input, ctx *FireContext) dispatch.Disposition

// Grid is a rectangular layout of cells. Grids are built once at startup
// and never mutated afterward, so the shortcut table is computed lazily
// and cached.
type Grid struct {
	// Name identifies the grid in definitions and logs.
	Name string

	// Columns is the rendered width in cells.
	Columns int

	// Rows holds the cells in render order.
	Rows [][]Cell

	// Unhandled, if set, handles keys with no matching shortcut.
	Unhandled UnhandledFunc

	keyTable map[string]Cell
}

// Lookup finds the cell bound to a canonical key string, or nil.
func (g *Grid) Lookup(syntax string) Cell {
	if g.keyTable == nil {
		g.buildKeyTable()
	}
	return g.keyTable[syntax]
}

func (g *Grid) buildKeyTable() {
	g.keyTable = make(map[string]Cell)
	for _, row := range g.Rows {
		for _, cell := range row {
			shortcut := cell.Shortcut()
			if shortcut == "" {
				continue
			}
			if _, ok := g.keyTable[shortcut]; ok {
				log.Printf("grid %s: duplicate shortcut %q, keeping the later cell", g.Name, shortcut)
			}
			g.keyTable[shortcut] = cell
		}
	}
}

// Walk calls fn for every cell in render order with its row and column.
// Spacer slots are included so renderers can lay out the full rectangle.
func (g *Grid) Walk(fn func(row, col int, cell Cell)) {
	for r, row := range g.Rows {
		for c, cell := range row {
			fn(r, c, cell)
		}
	}
}
