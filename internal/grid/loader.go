package grid

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader errors.
var (
	// ErrNoGrids is returned when a definition file declares no grids.
	ErrNoGrids = errors.New("no grids defined")
	// ErrUnknownGrid is returned when a goto cell or the root reference
	// names a grid that does not exist.
	ErrUnknownGrid = errors.New("unknown grid")
	// ErrBadCell is returned when a cell definition is ambiguous or
	// incomplete.
	ErrBadCell = errors.New("bad cell definition")
)

// FileSet is the YAML shape of a grid definition file.
type FileSet struct {
	// Root names the grid to activate at startup.
	Root string `yaml:"root"`

	// Grids holds the grid definitions.
	Grids []GridDef `yaml:"grids"`
}

// GridDef is one grid in a definition file.
type GridDef struct {
	Name    string    `yaml:"name"`
	Columns int       `yaml:"columns"`
	Cells   []CellDef `yaml:"cells"`
}

// CellDef is one cell in a definition file. Exactly one of Command,
// Goto, Back, Spacer or Script selects the cell variant.
type CellDef struct {
	Label      string   `yaml:"label"`
	Key        string   `yaml:"key"`
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	Subcommand string   `yaml:"subcommand"`
	Pass       bool     `yaml:"pass"`
	Keep       bool     `yaml:"keep"`
	Goto       string   `yaml:"goto"`
	Back       bool     `yaml:"back"`
	Spacer     bool     `yaml:"spacer"`
	Script     string   `yaml:"script"`
}

// Loader builds grids from YAML definitions.
type Loader struct {
	// ScriptFactory builds a cell from an inline script source. Required
	// only when the definitions use script cells.
	ScriptFactory func(label, shortcut, source string) (Cell, error)
}

// LoadFile reads and parses a grid definition file. It returns the grid
// set by name and the root grid.
func (l *Loader) LoadFile(path string) (map[string]*Grid, *Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading grid definitions: %w", err)
	}
	return l.Load(data)
}

// Load parses grid definitions from YAML bytes.
func (l *Loader) Load(data []byte) (map[string]*Grid, *Grid, error) {
	var file FileSet
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parsing grid definitions: %w", err)
	}
	if len(file.Grids) == 0 {
		return nil, nil, ErrNoGrids
	}

	grids := make(map[string]*Grid, len(file.Grids))

	// Goto targets may reference grids defined later in the file, so
	// resolution happens after all grids exist.
	type fixup struct {
		cell *GotoCell
		grid string
		name string
	}
	var fixups []fixup

	for _, def := range file.Grids {
		cols := def.Columns
		if cols < 1 {
			cols = 1
		}
		g := &Grid{Name: def.Name, Columns: cols}

		var row []Cell
		for i, cd := range def.Cells {
			cell, err := l.buildCell(cd)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %s cell %d: %w", def.Name, i, err)
			}
			if gc, ok := cell.(*GotoCell); ok {
				fixups = append(fixups, fixup{cell: gc, grid: def.Name, name: cd.Goto})
			}
			row = append(row, cell)
			if len(row) == cols {
				g.Rows = append(g.Rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			for len(row) < cols {
				row = append(row, SpacerCell{})
			}
			g.Rows = append(g.Rows, row)
		}
		grids[def.Name] = g
	}

	for _, f := range fixups {
		target, ok := grids[f.name]
		if !ok {
			return nil, nil, fmt.Errorf("grid %s: goto %q: %w", f.grid, f.name, ErrUnknownGrid)
		}
		f.cell.Target = target
	}

	rootName := file.Root
	if rootName == "" {
		rootName = file.Grids[0].Name
	}
	root, ok := grids[rootName]
	if !ok {
		return nil, nil, fmt.Errorf("root %q: %w", rootName, ErrUnknownGrid)
	}
	return grids, root, nil
}

func (l *Loader) buildCell(cd CellDef) (Cell, error) {
	switch {
	case cd.Spacer:
		return SpacerCell{}, nil
	case cd.Back:
		return &BackCell{Text: cd.Label, Key: cd.Key}, nil
	case cd.Goto != "":
		return &GotoCell{Text: cd.Label, Key: cd.Key}, nil
	case cd.Script != "":
		if l.ScriptFactory == nil {
			return nil, fmt.Errorf("%w: script cell with no script factory", ErrBadCell)
		}
		return l.ScriptFactory(cd.Label, cd.Key, cd.Script)
	case cd.Command != "":
		return &DispatchCell{
			Text:          cd.Label,
			Key:           cd.Key,
			Command:       cd.Command,
			Args:          cd.Args,
			SubID:         cd.Subcommand,
			PassThrough:   cd.Pass,
			KeepModifiers: cd.Keep,
		}, nil
	default:
		return nil, fmt.Errorf("%w: no variant selected", ErrBadCell)
	}
}
