package undo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stint/internal/pubsub"
)

// receiveEvent waits for the next event on sub or fails the test.
func receiveEvent(t *testing.T, sub <-chan pubsub.Event[Event]) Event {
	t.Helper()
	select {
	case ev := <-sub:
		return ev.Payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

// TestNew verifies a fresh coordinator starts with neither direction
// available.
func TestNew(t *testing.T) {
	c := New(Config{})
	defer c.Close()

	assert.NotNil(t, c)
	assert.NotNil(t, c.Broker())
	assert.NotNil(t, c.History())
	assert.Equal(t, DefaultCapacity, c.History().Capacity())
	assert.False(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

// TestNew_WithExistingHistory verifies the flags are derived from the
// supplied history at construction.
func TestNew_WithExistingHistory(t *testing.T) {
	h := NewHistory(10)
	require.NoError(t, h.Execute(context.Background(), newFakeCommand("c1")))

	c := New(Config{History: h})
	defer c.Close()

	assert.Same(t, h, c.History())
	assert.True(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

// TestCoordinator_ExecuteCommand verifies the effect runs and the flags
// update.
func TestCoordinator_ExecuteCommand(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	counter := 0
	cmd := newCounterCommand("c1", &counter, 4)

	err := c.ExecuteCommand(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Equal(t, 4, counter)
	assert.True(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

// TestCoordinator_ExecuteCommand_Nil verifies a nil command is ignored.
func TestCoordinator_ExecuteCommand_Nil(t *testing.T) {
	c := New(Config{})
	defer c.Close()

	err := c.ExecuteCommand(context.Background(), nil)

	assert.NoError(t, err)
	assert.False(t, c.CanUndo())
}

// TestCoordinator_ExecuteCommand_EffectError verifies the producer's
// error reaches the caller unwrapped and the flags never move.
func TestCoordinator_ExecuteCommand_EffectError(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	good := newFakeCommand("good")
	require.NoError(t, c.ExecuteCommand(context.Background(), good))
	_, err := c.Undo(context.Background())
	require.NoError(t, err)
	assert.False(t, c.CanUndo())
	assert.True(t, c.CanRedo())

	bad := newFakeCommand("bad")
	bad.failExecute = true
	err = c.ExecuteCommand(context.Background(), bad)

	assert.ErrorIs(t, err, assert.AnError)
	// A failed execute commits nothing: the redo branch survives and
	// both flags read exactly as before the attempt.
	assert.False(t, c.CanUndo())
	assert.True(t, c.CanRedo())
}

// TestCoordinator_Undo verifies the undone command is returned and the
// counter rolls back.
func TestCoordinator_Undo(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	counter := 0
	cmd := newCounterCommand("c1", &counter, 7)
	require.NoError(t, c.ExecuteCommand(context.Background(), cmd))

	undone, err := c.Undo(context.Background())

	assert.NoError(t, err)
	assert.Same(t, cmd, undone)
	assert.Equal(t, 0, counter)
	assert.False(t, c.CanUndo())
	assert.True(t, c.CanRedo())
}

// TestCoordinator_Undo_Empty verifies undo with no history is a no-op.
func TestCoordinator_Undo_Empty(t *testing.T) {
	c := New(Config{})
	defer c.Close()

	undone, err := c.Undo(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, undone)
}

// TestCoordinator_Undo_EffectError verifies a failed inverse leaves the
// flags untouched so the operation can be retried.
func TestCoordinator_Undo_EffectError(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	cmd := newFakeCommand("c1")
	cmd.failUndo = true
	require.NoError(t, c.ExecuteCommand(context.Background(), cmd))

	undone, err := c.Undo(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Same(t, cmd, undone)
	assert.True(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

// TestCoordinator_Redo verifies the redone command is returned and the
// counter moves forward again.
func TestCoordinator_Redo(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	counter := 0
	cmd := newCounterCommand("c1", &counter, 7)
	require.NoError(t, c.ExecuteCommand(context.Background(), cmd))
	_, err := c.Undo(context.Background())
	require.NoError(t, err)

	redone, err := c.Redo(context.Background())

	assert.NoError(t, err)
	assert.Same(t, cmd, redone)
	assert.Equal(t, 7, counter)
	assert.Equal(t, 2, cmd.executeCalls)
	assert.True(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

// TestCoordinator_Redo_Empty verifies redo with no future is a no-op.
func TestCoordinator_Redo_Empty(t *testing.T) {
	c := New(Config{})
	defer c.Close()

	redone, err := c.Redo(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, redone)
}

// TestCoordinator_ClearHistory verifies every retained command is
// dropped without running its inverse.
func TestCoordinator_ClearHistory(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	cmd1 := newFakeCommand("c1")
	cmd2 := newFakeCommand("c2")
	require.NoError(t, c.ExecuteCommand(context.Background(), cmd1))
	require.NoError(t, c.ExecuteCommand(context.Background(), cmd2))
	_, err := c.Undo(context.Background())
	require.NoError(t, err)

	c.ClearHistory()

	assert.False(t, c.CanUndo())
	assert.False(t, c.CanRedo())
	assert.Equal(t, 0, c.History().Len())
	assert.Equal(t, 0, cmd1.undoCalls)
	assert.Equal(t, 1, cmd2.undoCalls)
}

// TestCoordinator_Busy verifies operations arriving while another is in
// flight are rejected with ErrBusy and leave no trace.
func TestCoordinator_Busy(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	blocker := newBlockingCommand("blk")

	done := make(chan error, 1)
	go func() {
		done <- c.ExecuteCommand(context.Background(), blocker)
	}()
	<-blocker.entered

	err := c.ExecuteCommand(context.Background(), newFakeCommand("other"))
	assert.ErrorIs(t, err, ErrBusy)

	_, err = c.Undo(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	_, err = c.Redo(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	// While the first operation is still running the flags have not
	// moved.
	assert.False(t, c.CanUndo())
	assert.False(t, c.CanRedo())

	close(blocker.release)
	require.NoError(t, <-done)

	assert.True(t, c.CanUndo())
	assert.Equal(t, 1, c.History().Len())
	assert.Same(t, blocker, c.History().Present())
}

// TestCoordinator_ClearHistory_WaitsForInFlight verifies ClearHistory
// blocks until the running operation finishes rather than rejecting.
func TestCoordinator_ClearHistory_WaitsForInFlight(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	blocker := newBlockingCommand("blk")

	done := make(chan error, 1)
	go func() {
		done <- c.ExecuteCommand(context.Background(), blocker)
	}()
	<-blocker.entered

	cleared := make(chan struct{})
	go func() {
		c.ClearHistory()
		close(cleared)
	}()

	select {
	case <-cleared:
		t.Fatal("ClearHistory returned while another operation was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(blocker.release)
	require.NoError(t, <-done)

	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ClearHistory")
	}
	assert.False(t, c.CanUndo())
	assert.Equal(t, 0, c.History().Len())
}

// TestCoordinator_Timeline verifies the snapshot mirrors the record:
// future soonest first, present in the middle, past oldest first.
func TestCoordinator_Timeline(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.ExecuteCommand(ctx, newFakeCommand("a")))
	require.NoError(t, c.ExecuteCommand(ctx, newFakeCommand("b")))
	require.NoError(t, c.ExecuteCommand(ctx, newFakeCommand("c")))
	_, err := c.Undo(ctx)
	require.NoError(t, err)
	_, err = c.Undo(ctx)
	require.NoError(t, err)

	future, present, past := c.Timeline()

	require.Len(t, future, 2)
	assert.Equal(t, "b", future[0].ID())
	assert.Equal(t, "c", future[1].ID())
	assert.Nil(t, present)
	require.Len(t, past, 1)
	assert.Equal(t, "a", past[0].ID())
}

// TestCoordinator_Timeline_WaitsForInFlight verifies a timeline read
// never observes a transition mid-flight: a snapshot requested while an
// execute is still running arrives only after the commit, with the
// committed command as present. Run under -race this also proves the
// snapshot path does not touch the triple concurrently with a mutation.
func TestCoordinator_Timeline_WaitsForInFlight(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.ExecuteCommand(ctx, newFakeCommand("settled")))

	blocker := newBlockingCommand("blk")
	done := make(chan error, 1)
	go func() {
		done <- c.ExecuteCommand(ctx, blocker)
	}()
	<-blocker.entered

	type snapshot struct {
		future  []Command
		present Command
		past    []Command
	}
	snaps := make(chan snapshot, 1)
	go func() {
		future, present, past := c.Timeline()
		snaps <- snapshot{future, present, past}
	}()

	select {
	case <-snaps:
		t.Fatal("Timeline returned while a transition was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(blocker.release)
	require.NoError(t, <-done)

	select {
	case snap := <-snaps:
		assert.Same(t, blocker, snap.present)
		require.Len(t, snap.past, 1)
		assert.Equal(t, "settled", snap.past[0].ID())
		assert.Empty(t, snap.future)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Timeline")
	}
}

// TestCoordinator_Events verifies each committed transition publishes
// one event describing the command acted on.
func TestCoordinator_Events(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := c.Broker().Subscribe(ctx)

	cmd := &fakeLabeledCommand{
		fakeCommand: fakeCommand{id: "c1", kind: "entry.create", at: time.Now()},
		label:       "Create entry",
	}
	require.NoError(t, c.ExecuteCommand(context.Background(), cmd))

	ev := receiveEvent(t, sub)
	assert.Equal(t, ActionExecuted, ev.Action)
	assert.Equal(t, Kind("entry.create"), ev.Kind)
	assert.Equal(t, "c1", ev.ID)
	assert.Equal(t, "Create entry", ev.Label)

	_, err := c.Undo(context.Background())
	require.NoError(t, err)
	ev = receiveEvent(t, sub)
	assert.Equal(t, ActionUndone, ev.Action)
	assert.Equal(t, "c1", ev.ID)

	_, err = c.Redo(context.Background())
	require.NoError(t, err)
	ev = receiveEvent(t, sub)
	assert.Equal(t, ActionRedone, ev.Action)
	assert.Equal(t, "c1", ev.ID)

	c.ClearHistory()
	ev = receiveEvent(t, sub)
	assert.Equal(t, ActionCleared, ev.Action)
	assert.Empty(t, ev.ID)
}

// TestCoordinator_Events_NoEventOnFailure verifies failed operations
// publish nothing.
func TestCoordinator_Events_NoEventOnFailure(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := c.Broker().Subscribe(ctx)

	bad := newFakeCommand("bad")
	bad.failExecute = true
	err := c.ExecuteCommand(context.Background(), bad)
	assert.ErrorIs(t, err, assert.AnError)

	select {
	case ev := <-sub:
		t.Fatalf("unexpected event after failed execute: %+v", ev.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestLabelOf verifies label resolution across the optional interface.
func TestLabelOf(t *testing.T) {
	assert.Equal(t, "", LabelOf(nil))

	plain := newFakeCommand("c1")
	assert.Equal(t, "test.fake", LabelOf(plain))

	labeled := &fakeLabeledCommand{
		fakeCommand: fakeCommand{id: "c2", kind: "entry.update", at: time.Now()},
		label:       "Update entry note",
	}
	assert.Equal(t, "Update entry note", LabelOf(labeled))
}
