package undo

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/pubsub"
	"github.com/zjrosen/stint/internal/tracing"
)

// Config holds configuration for creating a Coordinator.
type Config struct {
	// History is the record the coordinator transitions over.
	// When nil a fresh history with DefaultCapacity is created.
	History *History

	// Tracer emits spans around transitions. When nil a no-op tracer
	// is used.
	Tracer trace.Tracer
}

// Coordinator orchestrates execute/undo/redo/clear transitions over one
// History instance and exposes the derived CanUndo/CanRedo flags.
//
// Mutating operations serialize against the history: a call that arrives
// while another is still in flight is rejected with ErrBusy rather than
// interleaved or queued, so an inverse always targets the command the
// caller saw on top. CanUndo and CanRedo never block; they read flags
// snapshotted when a transition commits, so a failed or rejected
// operation leaves them exactly as they were before the attempt.
//
// Effect errors from commands propagate to the caller unwrapped. The
// coordinator never inspects command metadata; surfacing failures to the
// operator is the caller's job.
type Coordinator struct {
	hist   *History
	tracer trace.Tracer
	broker *pubsub.Broker[Event]

	mu      sync.Mutex
	canUndo atomic.Bool
	canRedo atomic.Bool
}

// New creates a Coordinator over the configured history.
func New(cfg Config) *Coordinator {
	hist := cfg.History
	if hist == nil {
		hist = NewHistory(DefaultCapacity)
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	c := &Coordinator{
		hist:   hist,
		tracer: tracer,
		broker: pubsub.NewBroker[Event](),
	}
	c.refreshFlags()
	return c
}

// Broker returns the broker publishing an Event per committed transition.
func (c *Coordinator) Broker() *pubsub.Broker[Event] {
	return c.broker
}

// ExecuteCommand runs cmd's forward effect and records it on success.
// The producer's error is returned unwrapped on failure, with the
// history untouched. Returns ErrBusy while another operation is in
// flight.
func (c *Coordinator) ExecuteCommand(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return nil
	}
	if !c.mu.TryLock() {
		return ErrBusy
	}
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, tracing.SpanPrefixUndo+"execute",
		trace.WithAttributes(
			attribute.String(tracing.AttrCommandKind, string(cmd.Kind())),
			attribute.String(tracing.AttrCommandID, cmd.ID()),
		))
	defer span.End()

	if err := c.hist.Execute(ctx, cmd); err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatUndo, "execute failed", err, "kind", cmd.Kind(), "id", cmd.ID())
		return err
	}

	c.refreshFlags()
	log.Debug(log.CatUndo, "executed command", "kind", cmd.Kind(), "id", cmd.ID())
	c.broker.Publish(Event{Action: ActionExecuted, Kind: cmd.Kind(), ID: cmd.ID(), Label: LabelOf(cmd)})
	return nil
}

// Undo reverses the most recently applied command. Returns (nil, nil)
// when there is nothing to undo. On failure the attempted command is
// returned alongside the unwrapped effect error and the history is
// untouched. Returns ErrBusy while another operation is in flight.
func (c *Coordinator) Undo(ctx context.Context) (Command, error) {
	if !c.mu.TryLock() {
		return nil, ErrBusy
	}
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, tracing.SpanPrefixUndo+"undo")
	defer span.End()

	cmd, err := c.hist.Undo(ctx)
	if err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatUndo, "undo failed", err, "kind", kindOf(cmd))
		return cmd, err
	}
	if cmd == nil {
		return nil, nil
	}

	span.SetAttributes(
		attribute.String(tracing.AttrCommandKind, string(cmd.Kind())),
		attribute.String(tracing.AttrCommandID, cmd.ID()),
	)
	c.refreshFlags()
	log.Debug(log.CatUndo, "undid command", "kind", cmd.Kind(), "id", cmd.ID())
	c.broker.Publish(Event{Action: ActionUndone, Kind: cmd.Kind(), ID: cmd.ID(), Label: LabelOf(cmd)})
	return cmd, nil
}

// Redo reapplies the most recently undone command. Returns (nil, nil)
// when there is nothing to redo. On failure the attempted command is
// returned alongside the unwrapped effect error and the history is
// untouched. Returns ErrBusy while another operation is in flight.
func (c *Coordinator) Redo(ctx context.Context) (Command, error) {
	if !c.mu.TryLock() {
		return nil, ErrBusy
	}
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, tracing.SpanPrefixUndo+"redo")
	defer span.End()

	cmd, err := c.hist.Redo(ctx)
	if err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatUndo, "redo failed", err, "kind", kindOf(cmd))
		return cmd, err
	}
	if cmd == nil {
		return nil, nil
	}

	span.SetAttributes(
		attribute.String(tracing.AttrCommandKind, string(cmd.Kind())),
		attribute.String(tracing.AttrCommandID, cmd.ID()),
	)
	c.refreshFlags()
	log.Debug(log.CatUndo, "redid command", "kind", cmd.Kind(), "id", cmd.ID())
	c.broker.Publish(Event{Action: ActionRedone, Kind: cmd.Kind(), ID: cmd.ID(), Label: LabelOf(cmd)})
	return cmd, nil
}

// ClearHistory drops all retained commands without invoking their
// inverses. Unlike the other operations it waits for any in-flight
// operation to finish instead of rejecting.
func (c *Coordinator) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hist.Clear()
	c.refreshFlags()
	log.Debug(log.CatUndo, "history cleared")
	c.broker.Publish(Event{Action: ActionCleared})
}

// CanUndo reports whether an undo would act on a command. Lock-free.
func (c *Coordinator) CanUndo() bool {
	return c.canUndo.Load()
}

// CanRedo reports whether a redo would act on a command. Lock-free.
func (c *Coordinator) CanRedo() bool {
	return c.canRedo.Load()
}

// Timeline returns a consistent snapshot of the record: undone commands
// soonest first, the present command (nil when unset), and applied
// commands oldest first. Like ClearHistory it waits for an in-flight
// operation to commit rather than reading the triple mid-transition.
func (c *Coordinator) Timeline() (future []Command, present Command, past []Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Future(), c.hist.Present(), c.hist.Past()
}

// History exposes the underlying record. It carries no synchronization;
// concurrent readers go through Timeline instead.
func (c *Coordinator) History() *History {
	return c.hist
}

// Close shuts down the event broker.
func (c *Coordinator) Close() {
	c.broker.Close()
}

// refreshFlags snapshots the history-derived flags. Called only while
// holding mu, after a committed transition.
func (c *Coordinator) refreshFlags() {
	c.canUndo.Store(c.hist.CanUndo())
	c.canRedo.Store(c.hist.CanRedo())
}

func kindOf(cmd Command) Kind {
	if cmd == nil {
		return ""
	}
	return cmd.Kind()
}
