// Package undo provides the command-based undo/redo engine.
//
// Every reversible mutation in the application is expressed as a Command:
// an immutable value bundling a forward effect and its inverse. Commands
// are submitted to a Coordinator, which runs their effects and records them
// in a bounded History so they can be undone and redone uniformly. The
// engine knows nothing about the entities a command touches; producers
// close over their own repositories and state.
package undo

import (
	"context"
	"errors"
	"time"
)

// Kind is a string discriminator identifying what a command does.
// Producers use dotted names such as "entry.create" or "project.rename".
type Kind string

// Command is an immutable description of one reversible unit of work.
//
// A Command closes over external mutable state (repositories, snapshots)
// but the command value itself is never mutated after construction.
// Execute performs the forward effect. Undo must fully reverse it through
// the same read path other consumers observe, not merely revert a cache.
//
// Because Execute also serves as the default redo (see Redoer), it must be
// safe to call a second time to restore the same externally observable
// state: creation commands capture a pre-allocated identifier and write
// with upsert semantics rather than insert-then-generate.
type Command interface {
	// ID returns the command's opaque unique token.
	ID() string

	// Kind returns the command's discriminator.
	Kind() Kind

	// CreatedAt returns the timestamp assigned when the command was built.
	CreatedAt() time.Time

	// Execute performs the forward effect.
	Execute(ctx context.Context) error

	// Undo reverses the effect.
	Undo(ctx context.Context) error
}

// Redoer is an optional interface for commands whose redo differs from a
// repeated Execute. When a command does not implement it, the engine calls
// Execute again on redo.
type Redoer interface {
	Redo(ctx context.Context) error
}

// Labeler is an optional interface exposing a human-readable description
// of a command. The engine never inspects it; the UI uses it for toasts
// and the history panel.
type Labeler interface {
	Label() string
}

// ErrBusy is returned when an execute, undo, or redo is requested while
// another operation on the same coordinator is still in flight. The
// history is untouched and the flags are exactly as before the call.
var ErrBusy = errors.New("undo: operation already in flight")

// LabelOf returns the command's Label when it implements Labeler, falling
// back to its kind.
func LabelOf(cmd Command) string {
	if cmd == nil {
		return ""
	}
	if l, ok := cmd.(Labeler); ok {
		return l.Label()
	}
	return string(cmd.Kind())
}
