package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mfagan/keypad/internal/input/key"
)

// keyOverrides holds the user-configured shortcut bindings. Dispatch
// runs on the UI event loop, but the table is replaced wholesale when
// the configuration file reloads, so it carries its own lock.
type keyOverrides struct {
	mu    sync.RWMutex
	table map[string]overrideBinding
}

// overrideBinding is one parsed binding value: a backend command name
// and its fixed arguments.
type overrideBinding struct {
	name string
	args []string
}

func newKeyOverrides() *keyOverrides {
	return &keyOverrides{table: map[string]overrideBinding{}}
}

// Replace swaps in a new binding set. Chords are canonicalized so any
// accepted spelling matches the normalized event syntax. On error the
// previous table stays in effect.
func (o *keyOverrides) Replace(bindings map[string]string) error {
	table := make(map[string]overrideBinding, len(bindings))
	for chord, command := range bindings {
		in, err := key.ParseSyntax(chord)
		if err != nil {
			return fmt.Errorf("binding %q: %w", chord, err)
		}
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return fmt.Errorf("binding %q maps to an empty command", chord)
		}
		table[in.Syntax()] = overrideBinding{name: fields[0], args: fields[1:]}
	}

	o.mu.Lock()
	o.table = table
	o.mu.Unlock()
	return nil
}

// lookup resolves a canonical key syntax against the current table.
func (o *keyOverrides) lookup(syntax string) (overrideBinding, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	b, ok := o.table[syntax]
	return b, ok
}
