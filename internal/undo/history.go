package undo

import "context"

// DefaultCapacity bounds past+present when no explicit capacity is given.
const DefaultCapacity = 100

// History is the bounded, ordered record of applied and undone commands.
//
// It is encoded as a past/present/future triple:
//
//   - past holds applied commands beneath the present one, oldest first.
//   - present is the most recently applied command not yet superseded by
//     an undo; it may be unset.
//   - future holds undone commands awaiting redo, soonest first. It is
//     populated only by Undo and cleared unconditionally by the next
//     Execute, which represents divergence from the undone branch.
//
// capacity bounds len(past) plus the present slot. Exceeding it evicts
// the oldest entry of past, permanently losing the ability to undo that
// step. Eviction is silent and is not an error.
//
// Each transition runs the relevant command effect itself and commits the
// triple only after the effect returns nil. On an effect error the triple
// is left exactly as it was before the attempt.
//
// History is not safe for concurrent use; the Coordinator serializes
// access to it.
type History struct {
	past     []Command
	present  Command
	future   []Command
	capacity int
}

// NewHistory creates an empty history. Capacities of zero or below fall
// back to DefaultCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Execute runs cmd's forward effect and records it as the new present.
// On success the prior present (if any) is pushed onto past — evicting
// the oldest past entry first when the capacity bound would be exceeded —
// and future is cleared. On failure the error is returned as-is and the
// history is untouched.
func (h *History) Execute(ctx context.Context, cmd Command) error {
	if err := cmd.Execute(ctx); err != nil {
		return err
	}

	if h.present != nil {
		h.past = append(h.past, h.present)
	}
	for len(h.past) > h.capacity-1 {
		h.past = h.past[1:]
	}
	h.present = cmd
	h.future = nil
	return nil
}

// Undo reverses the most recently applied command and moves it to the
// head of future. When present is unset the tail of past is popped and
// undone instead; present stays unset. Returns the command acted on, or
// (nil, nil) when there is nothing to undo. On an effect error the
// attempted command is returned alongside the error and the history is
// untouched.
func (h *History) Undo(ctx context.Context) (Command, error) {
	if h.present != nil {
		cmd := h.present
		if err := cmd.Undo(ctx); err != nil {
			return cmd, err
		}
		h.future = append([]Command{cmd}, h.future...)
		h.present = nil
		return cmd, nil
	}

	if len(h.past) == 0 {
		return nil, nil
	}

	cmd := h.past[len(h.past)-1]
	if err := cmd.Undo(ctx); err != nil {
		return cmd, err
	}
	h.past = h.past[:len(h.past)-1]
	h.future = append([]Command{cmd}, h.future...)
	return cmd, nil
}

// Redo reapplies the head of future via its Redo effect, or Execute when
// the command implements no distinct redo. On success the prior present
// (if any) is pushed onto past and the reapplied command becomes present.
// Returns (nil, nil) when future is empty. No eviction can occur here:
// undo and redo conserve the total count that Execute already bounded.
func (h *History) Redo(ctx context.Context) (Command, error) {
	if len(h.future) == 0 {
		return nil, nil
	}

	cmd := h.future[0]
	if err := redoEffect(ctx, cmd); err != nil {
		return cmd, err
	}
	h.future = h.future[1:]
	if h.present != nil {
		h.past = append(h.past, h.present)
	}
	h.present = cmd
	return cmd, nil
}

// redoEffect prefers a command's dedicated Redo over re-running Execute.
func redoEffect(ctx context.Context, cmd Command) error {
	if r, ok := cmd.(Redoer); ok {
		return r.Redo(ctx)
	}
	return cmd.Execute(ctx)
}

// Clear resets the history to empty. Retained commands are dropped
// without invoking their Undo.
func (h *History) Clear() {
	h.past = nil
	h.present = nil
	h.future = nil
}

// CanUndo reports whether an undo would act on a command.
func (h *History) CanUndo() bool {
	return h.present != nil || len(h.past) > 0
}

// CanRedo reports whether a redo would act on a command.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Len returns the number of commands currently retained across past,
// present, and future.
func (h *History) Len() int {
	n := len(h.past) + len(h.future)
	if h.present != nil {
		n++
	}
	return n
}

// Capacity returns the bound on past plus present.
func (h *History) Capacity() int {
	return h.capacity
}

// Past returns a copy of the applied commands beneath present, oldest
// first.
func (h *History) Past() []Command {
	return append([]Command(nil), h.past...)
}

// Present returns the current present command, or nil when unset.
func (h *History) Present() Command {
	return h.present
}

// Future returns a copy of the undone commands awaiting redo, soonest
// first.
func (h *History) Future() []Command {
	return append([]Command(nil), h.future...)
}
