package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	broker.Publish("hello world")

	cmd := ListenCmd(ctx, ch)
	msg := cmd()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "hello world", event.Payload)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)

	cancel()
	time.Sleep(20 * time.Millisecond) // Wait for cleanup

	cmd := ListenCmd(ctx, ch)
	msg := cmd()

	require.Nil(t, msg, "should return nil when context cancelled")
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	broker := NewBroker[string]()

	ctx := context.Background()
	ch := broker.Subscribe(ctx)

	broker.Close()

	cmd := ListenCmd(ctx, ch)
	msg := cmd()

	require.Nil(t, msg, "should return nil when channel closed")
}

func TestContinuousListener_ReceivesSequence(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(1)
	broker.Publish(2)

	msg := listener.Listen()()
	event, ok := msg.(Event[int])
	require.True(t, ok)
	require.Equal(t, 1, event.Payload)

	msg = listener.Listen()()
	event, ok = msg.(Event[int])
	require.True(t, ok)
	require.Equal(t, 2, event.Payload)
}
