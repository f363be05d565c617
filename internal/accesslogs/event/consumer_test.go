package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testEvent struct {
	id  string
	seq int
}

func (e testEvent) EventKey() string {
	return e.id
}

func TestConsumerRetriesAndIdempotent(t *testing.T) {
	bus := NewBus[testEvent](10)

	var attempts int32
	done := make(chan struct{})
	handler := HandlerFunc[testEvent](func(ctx context.Context, event testEvent) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("temporary failure")
		}
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	consumer := NewConsumer[testEvent](bus, handler, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	event := testEvent{id: "evt-1"}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish duplicate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestConsumerSingleWorkerPreservesOrder(t *testing.T) {
	bus := NewBus[testEvent](16)

	var mu sync.Mutex
	var got []int
	handler := HandlerFunc[testEvent](func(ctx context.Context, event testEvent) error {
		mu.Lock()
		got = append(got, event.seq)
		mu.Unlock()
		return nil
	})

	consumer := NewConsumer[testEvent](bus, handler, ConsumerConfig{Workers: 1})
	consumer.Start()

	for i := 0; i < 10; i++ {
		if err := bus.Publish(context.Background(), testEvent{seq: i}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 10 {
		t.Fatalf("expected 10 events, got %d", len(got))
	}
	for i, seq := range got {
		if seq != i {
			t.Fatalf("expected ordered delivery, got %v", got)
		}
	}
}

func TestConsumerGivesUpAfterMaxRetries(t *testing.T) {
	bus := NewBus[testEvent](1)

	var attempts int32
	handler := HandlerFunc[testEvent](func(ctx context.Context, event testEvent) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("permanent failure")
	})

	consumer := NewConsumer[testEvent](bus, handler, ConsumerConfig{
		Name:        "render",
		MaxRetries:  1,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	if err := bus.Publish(context.Background(), testEvent{id: "evt-2"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestRecentKeysForgetsOldestAtCapacity(t *testing.T) {
	keys := newRecentKeys(2)

	if !keys.add("a") || !keys.add("b") {
		t.Fatal("expected new keys to be accepted")
	}
	if keys.add("a") {
		t.Fatal("expected duplicate within window to be rejected")
	}
	if !keys.add("c") {
		t.Fatal("expected c to be accepted")
	}
	if !keys.add("a") {
		t.Fatal("expected a to be forgotten once the window moved on")
	}
	if got := keys.len(); got != 2 {
		t.Fatalf("expected 2 remembered keys, got %d", got)
	}
}

func TestConsumerDedupMemoryIsBounded(t *testing.T) {
	bus := NewBus[testEvent](64)

	var handled int32
	handler := HandlerFunc[testEvent](func(ctx context.Context, event testEvent) error {
		atomic.AddInt32(&handled, 1)
		return nil
	})

	consumer := NewConsumer[testEvent](bus, handler, ConsumerConfig{Workers: 1, DedupWindow: 4})
	consumer.Start()

	for i := range 50 {
		if err := bus.Publish(context.Background(), testEvent{id: fmt.Sprintf("evt-%d", i)}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&handled); got != 50 {
		t.Fatalf("expected 50 handled events, got %d", got)
	}
	if got := consumer.seen.len(); got != 4 {
		t.Fatalf("expected 4 remembered keys, got %d", got)
	}
}
