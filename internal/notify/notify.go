// Package notify defines the transient notification surface. Messages
// are fire-and-forget: the core never waits on them.
package notify

import "log"

// Notifier shows transient messages to the user.
type Notifier interface {
	// Show displays a message, replacing any currently shown one.
	Show(message string)

	// Hide clears the current message.
	Hide()
}

// Nop is a Notifier that discards everything. Useful in tests.
type Nop struct{}

// Show discards the message.
func (Nop) Show(string) {}

// Hide does nothing.
func (Nop) Hide() {}

// Logger is a Notifier that writes messages to the standard logger.
// Used when no UI surface is attached.
type Logger struct{}

// Show logs the message.
func (Logger) Show(message string) {
	log.Printf("notify: %s", message)
}

// Hide does nothing.
func (Logger) Hide() {}
