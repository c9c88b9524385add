package wmPubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPubSub_PublishAndConsume(t *testing.T) {
	ch := make(chan []byte, 1)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	received := make(chan []byte, 1)
	sub := New(
		WithChannel(ch),
		WithContext(ctx),
		WithLogger(discardLogger),
		WithTopic("test-topic"),
		WithHandler(func(msg []byte) error {
			received <- msg
			return nil
		}),
	)
	err := sub.Subscribe()
	assert.NoError(t, err)

	pub := New(WithChannel(ch), WithContext(ctx), WithTopic("test-topic"))
	payload := []byte("hello world")
	err = pub.Publish(payload)
	assert.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, payload, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive message in time")
	}
}

func TestPubSub_ContextCancellation(t *testing.T) {
	ch := make(chan []byte)
	ctx, cancel := context.WithCancel(t.Context())

	pub := New(WithChannel(ch), WithContext(ctx), WithTopic("test-topic"))

	cancel()

	err := pub.Publish([]byte("should fail"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPubSub_SubscribeInvalidConfig(t *testing.T) {
	ch := make(chan []byte, 1)

	sub := New(WithChannel(ch), WithContext(t.Context()))
	err := sub.Subscribe()
	assert.ErrorIs(t, err, ErrInvalidPubSubConfig)
}

func TestPubSub_ListenersReceiveEveryMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	ps := New(
		WithChannel(make(chan []byte, 4)),
		WithContext(ctx),
		WithLogger(discardLogger),
		WithTopic("fetch-runs"),
	)
	require.NoError(t, ps.Subscribe())

	first, cancelFirst := ps.Listen()
	defer cancelFirst()
	second, cancelSecond := ps.Listen()
	defer cancelSecond()

	require.NoError(t, ps.Publish([]byte("run-1")))

	for _, l := range []<-chan []byte{first, second} {
		select {
		case msg := <-l:
			assert.Equal(t, []byte("run-1"), msg)
		case <-time.After(2 * time.Second):
			t.Fatal("listener did not receive message")
		}
	}
}

func TestPubSub_ListenCancelClosesChannel(t *testing.T) {
	ps := New(
		WithChannel(make(chan []byte, 1)),
		WithContext(t.Context()),
		WithLogger(discardLogger),
		WithTopic("fetch-runs"),
	)

	l, cancel := ps.Listen()
	cancel()
	cancel()

	_, ok := <-l
	assert.False(t, ok)
}

func TestPubSub_ContextDoneClosesListeners(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	ps := New(
		WithChannel(make(chan []byte, 1)),
		WithContext(ctx),
		WithLogger(discardLogger),
		WithTopic("fetch-runs"),
	)
	require.NoError(t, ps.Subscribe())

	l, stop := ps.Listen()
	defer stop()
	cancel()

	select {
	case _, ok := <-l:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not closed")
	}
}

func TestPubSub_ListenerBuffer(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	ps := New(
		WithChannel(make(chan []byte, 4)),
		WithContext(ctx),
		WithLogger(discardLogger),
		WithTopic("runs"),
		WithListenerBuffer(3),
	)
	require.NoError(t, ps.Subscribe())

	l, stop := ps.Listen()
	defer stop()
	assert.Equal(t, 3, cap(l))

	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, ps.Publish([]byte(msg)))
	}
	assert.Eventually(t, func() bool { return len(l) == 3 }, time.Second, 5*time.Millisecond)

	bad := New(
		WithChannel(make(chan []byte)),
		WithContext(ctx),
		WithLogger(discardLogger),
		WithTopic("runs"),
		WithListenerBuffer(-1),
	)
	assert.ErrorIs(t, bad.Subscribe(), ErrInvalidPubSubConfig)
}
