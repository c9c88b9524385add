package wmPubsub

import (
	"context"
	"log/slog"
	"sync"

	"depositrecon/pkg/types/pubsub"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPubSubConfig = errors.New("invalid pubsub config")
)

var _ pubsub.PubSub = (*PubSub)(nil)

type PubSub struct {
	topic   string
	ch      chan []byte
	ctx     context.Context
	logger  *slog.Logger
	handler func([]byte) error

	mu        sync.Mutex
	listeners map[int]chan []byte
	nextID    int
	bufSize   int
}

type Option func(*PubSub)

func WithContext(ctx context.Context) Option {
	return func(ps *PubSub) {
		ps.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(ps *PubSub) {
		ps.logger = l
	}
}

func WithTopic(topic string) Option {
	return func(ps *PubSub) {
		ps.topic = topic
	}
}

func WithHandler(h func([]byte) error) Option {
	return func(ps *PubSub) {
		ps.handler = h
	}
}

func WithChannel(ch chan []byte) Option {
	return func(ps *PubSub) {
		ps.ch = ch
	}
}

// WithListenerBuffer sets the channel size handed to each listener.
func WithListenerBuffer(n int) Option {
	return func(ps *PubSub) {
		ps.bufSize = n
	}
}

func (ps *PubSub) IsValid() error {
	switch {
	case ps.ctx == nil:
		return errors.Wrap(ErrInvalidPubSubConfig, "ctx cannot be nil")
	case ps.logger == nil:
		return errors.Wrap(ErrInvalidPubSubConfig, "logger cannot be nil")
	case ps.topic == "":
		return errors.Wrap(ErrInvalidPubSubConfig, "topic cannot be empty")
	case ps.ch == nil:
		return errors.Wrap(ErrInvalidPubSubConfig, "channel cannot be nil")
	case ps.bufSize < 0:
		return errors.Wrap(ErrInvalidPubSubConfig, "listener buffer cannot be negative")
	default:
		return nil
	}
}

func New(opts ...Option) *PubSub {
	ps := &PubSub{
		listeners: make(map[int]chan []byte),
		bufSize:   8,
	}

	for _, opt := range opts {
		opt(ps)
	}

	return ps
}

func (ps *PubSub) Publish(payload []byte) error {
	select {
	case ps.ch <- payload:
		return nil
	case <-ps.ctx.Done():
		return ps.ctx.Err()
	}
}

// Subscribe starts draining the channel. Each message goes to the handler,
// when set, and to every listener; a listener that is not keeping up misses it.
func (ps *PubSub) Subscribe() error {
	if err := ps.IsValid(); err != nil {
		return err
	}

	go func() {
		defer ps.closeListeners()
		for {
			select {
			case msg := <-ps.ch:
				if ps.handler != nil {
					if err := ps.handler(msg); err != nil {
						ps.logger.Error("pubsub handler error", "topic", ps.topic, "error", err)
					}
				}
				ps.fanOut(msg)
			case <-ps.ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (ps *PubSub) Listen() (<-chan []byte, func()) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	id := ps.nextID
	ps.nextID++
	ch := make(chan []byte, ps.bufSize)
	ps.listeners[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ps.mu.Lock()
			defer ps.mu.Unlock()
			if l, ok := ps.listeners[id]; ok {
				delete(ps.listeners, id)
				close(l)
			}
		})
	}
}

func (ps *PubSub) fanOut(msg []byte) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for id, l := range ps.listeners {
		select {
		case l <- msg:
		default:
			ps.logger.Warn("listener full, dropping message", "topic", ps.topic, "listener", id)
		}
	}
}

func (ps *PubSub) closeListeners() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for id, l := range ps.listeners {
		delete(ps.listeners, id)
		close(l)
	}
}
