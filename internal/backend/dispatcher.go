package backend

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfagan/keypad/internal/input/modifier"
	"github.com/mfagan/keypad/internal/notify"
)

// Dispatcher sends commands to the backend without blocking the UI event
// loop. Each invocation runs in a detached goroutine: completion order is
// not guaranteed to match invocation order, and the backend is
// responsible for serializing effects on the stack.
type Dispatcher struct {
	backend  Backend
	notifier notify.Notifier
	timeout  time.Duration

	// inflight tracks detached invocations so tests can await them
	// deterministically instead of sleeping.
	inflight sync.WaitGroup
}

// DefaultTimeout bounds a single backend invocation.
const DefaultTimeout = 30 * time.Second

// NewDispatcher creates a command dispatcher. A nil notifier discards
// error notifications.
func NewDispatcher(b Backend, notifier notify.Notifier) *Dispatcher {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Dispatcher{
		backend:  b,
		notifier: notifier,
		timeout:  DefaultTimeout,
	}
}

// Dispatch fires a command with the given modifier snapshot and returns
// immediately. A rejected invocation means the operation did not
// complete: no frontend state changed, and the failure surfaces only
// through the notification channel.
func (d *Dispatcher) Dispatch(name string, args []string, mods modifier.ButtonModifiers) {
	opts := OptionsFrom(mods)
	id := uuid.NewString()

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.backend.Invoke(ctx, name, args, opts); err != nil {
			log.Printf("command %s (%s) failed: %v", name, id, err)
			d.notifier.Show("Error: " + err.Error())
		}
	}()
}

// Undo fires an undo or redo action, detached like Dispatch.
func (d *Dispatcher) Undo(direction UndoDirection) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.backend.Undo(ctx, direction); err != nil {
			log.Printf("%s failed: %v", direction, err)
			d.notifier.Show("Error: " + err.Error())
		}
	}()
}

// Wait blocks until every detached invocation has completed. This is a
// test synchronization hook; production code never calls it.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}
