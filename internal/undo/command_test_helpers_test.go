package undo

import (
	"context"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeCommand mutates a shared counter so effects are externally
// observable. A plain fakeCommand implements no dedicated Redo, so the
// engine falls back to Execute when redoing it.
type fakeCommand struct {
	id   string
	kind Kind
	at   time.Time

	counter *int
	delta   int

	executeCalls int
	undoCalls    int

	failExecute bool
	failUndo    bool
}

func newFakeCommand(id string) *fakeCommand {
	return &fakeCommand{id: id, kind: "test.fake", at: time.Now()}
}

func newCounterCommand(id string, counter *int, delta int) *fakeCommand {
	return &fakeCommand{id: id, kind: "test.counter", at: time.Now(), counter: counter, delta: delta}
}

func (c *fakeCommand) ID() string           { return c.id }
func (c *fakeCommand) Kind() Kind           { return c.kind }
func (c *fakeCommand) CreatedAt() time.Time { return c.at }

func (c *fakeCommand) Execute(ctx context.Context) error {
	c.executeCalls++
	if c.failExecute {
		return assert.AnError
	}
	if c.counter != nil {
		*c.counter += c.delta
	}
	return nil
}

func (c *fakeCommand) Undo(ctx context.Context) error {
	c.undoCalls++
	if c.failUndo {
		return assert.AnError
	}
	if c.counter != nil {
		*c.counter -= c.delta
	}
	return nil
}

// fakeRedoCommand layers a dedicated Redo effect over fakeCommand so
// tests can tell the two redo paths apart.
type fakeRedoCommand struct {
	fakeCommand

	redoCalls int
	failRedo  bool
}

func (c *fakeRedoCommand) Redo(ctx context.Context) error {
	c.redoCalls++
	if c.failRedo {
		return assert.AnError
	}
	if c.counter != nil {
		*c.counter += c.delta
	}
	return nil
}

// fakeLabeledCommand carries a human-readable label.
type fakeLabeledCommand struct {
	fakeCommand

	label string
}

func (c *fakeLabeledCommand) Label() string { return c.label }

// blockingCommand parks its Execute between two channels so a test can
// attempt a second operation while the first is still in flight.
type blockingCommand struct {
	fakeCommand

	entered chan struct{}
	release chan struct{}
}

func newBlockingCommand(id string) *blockingCommand {
	return &blockingCommand{
		fakeCommand: fakeCommand{id: id, kind: "test.blocking", at: time.Now()},
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (c *blockingCommand) Execute(ctx context.Context) error {
	close(c.entered)
	<-c.release
	return c.fakeCommand.Execute(ctx)
}
