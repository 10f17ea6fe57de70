package grid

// DefaultsConfig injects the interactive behaviors the built-in grids
// cannot express on their own.
type DefaultsConfig struct {
	// NumericEntry handles digit and point keys on the root grid by
	// opening the value entry flow. Optional.
	NumericEntry UnhandledFunc

	// EnterValue starts the explicit value entry flow (the "enter" cell).
	// Optional; the cell is omitted when nil.
	EnterValue func(ctx *FireContext)

	// StoreVariable starts the store-to-variable flow. Optional.
	StoreVariable func(ctx *FireContext)

	// EditElem starts the edit flow for the top stack element. Optional.
	EditElem func(ctx *FireContext)
}

// Defaults builds the built-in grid set and returns the root grid plus
// all grids by name. Arithmetic cells double as subcommand operators so
// reduce-style composites can reference them.
func Defaults(cfg DefaultsConfig) (*Grid, map[string]*Grid) {
	functions := &Grid{
		Name:    "functions",
		Columns: 4,
		Rows: [][]Cell{
			{
				&DispatchCell{Text: "sin", Key: "s", Command: "sin", SubID: "sin"},
				&DispatchCell{Text: "cos", Key: "c", Command: "cos", SubID: "cos"},
				&DispatchCell{Text: "tan", Key: "t", Command: "tan", SubID: "tan"},
				&DispatchCell{Text: "ln", Key: "l", Command: "ln", SubID: "ln"},
			},
			{
				&DispatchCell{Text: "exp", Key: "e", Command: "exp", SubID: "exp"},
				&DispatchCell{Text: "sqrt", Key: "q", Command: "sqrt", SubID: "sqrt"},
				&DispatchCell{Text: "pow", Key: "p", Command: "pow", SubID: "pow"},
				&BackCell{Text: "back", Key: "Escape"},
			},
		},
	}

	vector := &Grid{
		Name:    "vector",
		Columns: 4,
		Rows: [][]Cell{
			{
				&DispatchCell{Text: "pack", Key: "p", Command: "pack"},
				&DispatchCell{Text: "unpack", Key: "u", Command: "unpack"},
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
			},
			{
				&DispatchCell{Text: "map", Key: "m", Command: "map"},
				SpacerCell{},
				SpacerCell{},
				&BackCell{Text: "back", Key: "Escape"},
			},
		},
	}

	root := &Grid{
		Name:      "root",
		Columns:   5,
		Unhandled: cfg.NumericEntry,
	}
	root.Rows = [][]Cell{
		{
			&DispatchCell{Text: "+", Key: "+", Command: "+", SubID: "+"},
			&DispatchCell{Text: "-", Key: "-", Command: "-", SubID: "-"},
			&DispatchCell{Text: "*", Key: "*", Command: "*", SubID: "*"},
			&DispatchCell{Text: "/", Key: "/", Command: "/", SubID: "/"},
			&DispatchCell{Text: "mod", Key: "%", Command: "%", SubID: "%"},
		},
		{
			&DispatchCell{Text: "div", Key: "\\", Command: "\\", SubID: "\\"},
			&DispatchCell{Text: "pop", Key: "Backspace", Command: "pop"},
			&DispatchCell{Text: "swap", Key: "Tab", Command: "swap"},
			&DispatchCell{Text: "dup", Key: "Enter", Command: "dup"},
			&GotoCell{Text: "fn", Key: "f", Target: functions},
		},
		{
			&GotoCell{Text: "vec", Key: "v", Target: vector},
			optionalInput("enter", "=", cfg.EnterValue),
			optionalInput("sto", "x", cfg.StoreVariable),
			optionalInput("edit", "`", cfg.EditElem),
			SpacerCell{},
		},
	}

	grids := map[string]*Grid{
		root.Name:      root,
		functions.Name: functions,
		vector.Name:    vector,
	}
	return root, grids
}

// optionalInput builds an input-trigger cell, or a spacer when the flow
// is not wired.
func optionalInput(label, shortcut string, run func(ctx *FireContext)) Cell {
	if run == nil {
		return SpacerCell{}
	}
	return &InputCell{Text: label, Key: shortcut, Run: run}
}
