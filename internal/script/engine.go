// Package script runs user-defined Lua cells. A script computes the
// command to dispatch, so a single cell can pick its command from the
// current modifiers.
package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mfagan/keypad/internal/input/modifier"
)

// ErrBadResult is returned when a script does not return a command name
// string and an optional argument table.
var ErrBadResult = errors.New("script: expected return of (command, args)")

// Engine owns the Lua state shared by all script cells. The state is not
// goroutine-safe; the engine runs on the UI event loop like everything
// else that touches it.
type Engine struct {
	L *lua.LState
}

// NewEngine creates a sandboxed engine. Only the base, table, string and
// math libraries are available; file, OS and chunk-loading access is
// removed.
func NewEngine() *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	// The base library still exposes chunk loaders; a script must not
	// escape its inline source.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return &Engine{L: L}
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.L.Close()
}

// Program is a compiled script. A script is a chunk returning a command
// name and, optionally, a table of string arguments:
//
//	return "pow", {"2"}
//
// The global table `modifiers` exposes the invoking snapshot: `prefix`
// (number or nil), `keep`, `hyperbolic` and `inverse` (booleans).
type Program struct {
	engine *Engine
	fn     *lua.LFunction
	name   string
}

// Compile parses a script chunk. name identifies the script in error
// messages.
func (e *Engine) Compile(name, source string) (*Program, error) {
	fn, err := e.L.LoadString(source)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return &Program{engine: e, fn: fn, name: name}, nil
}

// Run executes the script with the given modifier snapshot and returns
// the command to dispatch.
func (p *Program) Run(mods modifier.ButtonModifiers) (string, []string, error) {
	L := p.engine.L
	L.SetGlobal("modifiers", modifierTable(L, mods))

	base := L.GetTop()
	L.Push(p.fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.SetTop(base)
		return "", nil, fmt.Errorf("script %s: %w", p.name, err)
	}
	nret := L.GetTop() - base
	defer L.SetTop(base)

	if nret < 1 {
		return "", nil, fmt.Errorf("script %s: %w", p.name, ErrBadResult)
	}

	nameV, ok := L.Get(base + 1).(lua.LString)
	if !ok {
		return "", nil, fmt.Errorf("script %s: %w", p.name, ErrBadResult)
	}

	var args []string
	if nret >= 2 {
		switch v := L.Get(base + 2).(type) {
		case *lua.LNilType:
		case *lua.LTable:
			for i := 1; i <= v.Len(); i++ {
				args = append(args, lua.LVAsString(v.RawGetInt(i)))
			}
		default:
			return "", nil, fmt.Errorf("script %s: %w", p.name, ErrBadResult)
		}
	}

	return string(nameV), args, nil
}

func modifierTable(L *lua.LState, mods modifier.ButtonModifiers) *lua.LTable {
	t := L.NewTable()
	if mods.PrefixArgument != nil {
		t.RawSetString("prefix", lua.LNumber(*mods.PrefixArgument))
	}
	t.RawSetString("keep", lua.LBool(mods.KeepModifier))
	t.RawSetString("hyperbolic", lua.LBool(mods.HyperbolicModifier))
	t.RawSetString("inverse", lua.LBool(mods.InverseModifier))
	return t
}
