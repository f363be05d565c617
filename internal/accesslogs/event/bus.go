package event

import (
	"context"
	"errors"
	"sync"
)

var ErrBusClosed = errors.New("event bus is closed")

// Event is anything that can travel on a Bus.
type Event interface {
	EventKey() string
}

// Bus is a typed, buffered, single-channel event bus. Events are delivered in
// publish order to whichever consumer worker receives them.
type Bus[T Event] struct {
	mu     sync.RWMutex
	closed bool
	ch     chan T
}

func NewBus[T Event](buffer int) *Bus[T] {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus[T]{
		ch: make(chan T, buffer),
	}
}

func (b *Bus[T]) Publish(ctx context.Context, event T) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}

	select {
	case b.ch <- event:
		b.mu.RUnlock()
		return nil
	case <-ctx.Done():
		b.mu.RUnlock()
		return ctx.Err()
	}
}

func (b *Bus[T]) Subscribe() <-chan T {
	return b.ch
}

func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
