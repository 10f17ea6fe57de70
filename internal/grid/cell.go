package grid

// SubcommandKind classifies how a cell behaves when selected during
// subcommand entry.
type SubcommandKind uint8

const (
	// SubcommandInvalid means the cell cannot serve as a subcommand;
	// selecting it aborts the flow with an error notification.
	SubcommandInvalid SubcommandKind = iota
	// SubcommandPass means the cell fires normally even during
	// subcommand entry (navigation cells, for example).
	SubcommandPass
	// SubcommandID means the cell contributes its identity to the
	// pending subcommand callback.
	SubcommandID
)

// SubcommandSpec is a cell's declared subcommand behavior.
type SubcommandSpec struct {
	// Kind is the behavior class.
	Kind SubcommandKind
	// ID is the subcommand identity for SubcommandID cells.
	ID string
}

// Cell is one slot in a command grid. Cells are polymorphic over
// dispatch, navigation, spacer and input-trigger behavior.
type Cell interface {
	// Label is the display text, empty for spacers.
	Label() string

	// Shortcut is the canonical key string bound to the cell, empty
	// when the cell is click-only.
	Shortcut() string

	// Fire invokes the cell's behavior.
	Fire(ctx *FireContext)

	// Subcommand declares the cell's behavior during subcommand entry.
	Subcommand() SubcommandSpec
}

// DispatchCell fires a backend command.
type DispatchCell struct {
	// Text is the display label.
	Text string
	// Key is the canonical shortcut, empty for none.
	Key string
	// Command is the backend command name.
	Command string
	// Args are fixed positional arguments.
	Args []string
	// SubID, when non-empty, makes the cell usable as a subcommand with
	// this identity.
	SubID string
	// PassThrough marks the cell as firing normally during subcommand
	// entry instead of contributing an identity.
	PassThrough bool
	// KeepModifiers skips the post-dispatch state reset, leaving the
	// prefix argument and sticky flags for the next command.
	KeepModifiers bool
}

// Label returns the display text.
func (c *DispatchCell) Label() string { return c.Text }

// Shortcut returns the bound key.
func (c *DispatchCell) Shortcut() string { return c.Key }

// Fire dispatches the command with the invoking modifiers.
func (c *DispatchCell) Fire(ctx *FireContext) {
	ctx.dispatch(c.Command, c.Args, c.KeepModifiers)
}

// Subcommand declares the cell's subcommand behavior.
func (c *DispatchCell) Subcommand() SubcommandSpec {
	if c.PassThrough {
		return SubcommandSpec{Kind: SubcommandPass}
	}
	if c.SubID != "" {
		return SubcommandSpec{Kind: SubcommandID, ID: c.SubID}
	}
	return SubcommandSpec{Kind: SubcommandInvalid}
}

// GotoCell activates another grid.
type GotoCell struct {
	// Text is the display label.
	Text string
	// Key is the canonical shortcut.
	Key string
	// Target is the grid to activate.
	Target *Grid
}

// Label returns the display text.
func (c *GotoCell) Label() string { return c.Text }

// Shortcut returns the bound key.
func (c *GotoCell) Shortcut() string { return c.Key }

// Fire activates the target grid. Modifiers are untouched.
func (c *GotoCell) Fire(ctx *FireContext) {
	ctx.Activate(c.Target)
}

// Subcommand declares navigation as pass-through.
func (c *GotoCell) Subcommand() SubcommandSpec {
	return SubcommandSpec{Kind: SubcommandPass}
}

// BackCell returns to the root grid. Bound to Escape on subgrids.
type BackCell struct {
	// Text is the display label.
	Text string
	// Key is the canonical shortcut, conventionally "Escape".
	Key string
}

// Label returns the display text.
func (c *BackCell) Label() string { return c.Text }

// Shortcut returns the bound key.
func (c *BackCell) Shortcut() string { return c.Key }

// Fire returns to the root grid. Modifiers are untouched.
func (c *BackCell) Fire(ctx *FireContext) {
	ctx.Back()
}

// Subcommand declares navigation as pass-through.
func (c *BackCell) Subcommand() SubcommandSpec {
	return SubcommandSpec{Kind: SubcommandPass}
}

// SpacerCell is an empty slot.
type SpacerCell struct{}

// Label returns the empty string.
func (SpacerCell) Label() string { return "" }

// Shortcut returns the empty string.
func (SpacerCell) Shortcut() string { return "" }

// Fire does nothing.
func (SpacerCell) Fire(*FireContext) {}

// Subcommand declares the spacer invalid as a subcommand.
func (SpacerCell) Subcommand() SubcommandSpec {
	return SubcommandSpec{Kind: SubcommandInvalid}
}

// InputCell starts an interactive input flow (prompting, validation,
// dispatch). The flow itself lives with the caller; the cell only
// triggers it.
type InputCell struct {
	// Text is the display label.
	Text string
	// Key is the canonical shortcut.
	Key string
	// Run is the input flow to start.
	Run func(ctx *FireContext)
}

// Label returns the display text.
func (c *InputCell) Label() string { return c.Text }

// Shortcut returns the bound key.
func (c *InputCell) Shortcut() string { return c.Key }

// Fire starts the input flow.
func (c *InputCell) Fire(ctx *FireContext) {
	if c.Run != nil {
		c.Run(ctx)
	}
}

// Subcommand declares the cell invalid as a subcommand.
func (c *InputCell) Subcommand() SubcommandSpec {
	return SubcommandSpec{Kind: SubcommandInvalid}
}

// QueryCell fires a command that needs one or more follow-up subcommand
// selections (e.g. a reduce operator, or two operators for an
// inner-product style composite). Each prompt queries once; the built
// command dispatches with the original invoking modifiers.
type QueryCell struct {
	// Text is the display label.
	Text string
	// Key is the canonical shortcut.
	Key string
	// Prompts holds one transient label per follow-up selection.
	Prompts []string
	// Build maps the collected subcommand identities to the command to
	// dispatch.
	Build func(ids []string) (name string, args []string)
}

// Label returns the display text.
func (c *QueryCell) Label() string { return c.Text }

// Shortcut returns the bound key.
func (c *QueryCell) Shortcut() string { return c.Key }

// Fire chains one subcommand query per prompt, then dispatches.
func (c *QueryCell) Fire(ctx *FireContext) {
	if len(c.Prompts) == 0 || c.Build == nil {
		return
	}

	ids := make([]string, 0, len(c.Prompts))
	var step func()
	step = func() {
		ctx.QuerySubcommand(c.Prompts[len(ids)], func(id string) {
			ids = append(ids, id)
			if len(ids) < len(c.Prompts) {
				step()
				return
			}
			name, args := c.Build(ids)
			ctx.dispatch(name, args, false)
		})
	}
	step()
}

// Subcommand declares the cell invalid as a subcommand.
func (c *QueryCell) Subcommand() SubcommandSpec {
	return SubcommandSpec{Kind: SubcommandInvalid}
}
