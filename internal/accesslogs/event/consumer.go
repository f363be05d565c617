package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Handler[T Event] interface {
	Handle(ctx context.Context, event T) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[T Event] func(ctx context.Context, event T) error

func (f HandlerFunc[T]) Handle(ctx context.Context, event T) error {
	return f(ctx, event)
}

type ConsumerConfig struct {
	Name        string
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// DedupWindow is how many recent event keys are remembered for duplicate
	// suppression. Defaults to DefaultDedupWindow.
	DedupWindow int
}

const DefaultDedupWindow = 1024

// Consumer drains a Bus with a fixed pool of workers, retrying failed
// handlers with exponential backoff. With a single worker, events are handled
// strictly in publish order.
type Consumer[T Event] struct {
	bus         *Bus[T]
	handler     Handler[T]
	name        string
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *recentKeys
	wg          sync.WaitGroup
}

func NewConsumer[T Event](bus *Bus[T], handler Handler[T], cfg ConsumerConfig) *Consumer[T] {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	window := cfg.DedupWindow
	if window < 1 {
		window = DefaultDedupWindow
	}

	name := cfg.Name
	if name == "" {
		name = "consumer"
	}

	return &Consumer[T]{
		bus:         bus,
		handler:     handler,
		name:        name,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
		seen:        newRecentKeys(window),
	}
}

func (c *Consumer[T]) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *Consumer[T]) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Consumer[T]) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *Consumer[T]) processEvent(event T) {
	if c.handler == nil {
		return
	}

	key := event.EventKey()
	if key != "" {
		if !c.seen.add(key) {
			slog.Info("skip duplicate event", "consumer", c.name, "event_id", key)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to handle event after retries", "consumer", c.name, "event_id", key, "error", err)
			return
		}

		slog.Warn("retrying event", "consumer", c.name, "event_id", key, "attempt", attempt+1, "error", err)
		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// recentKeys remembers the last size keys. The oldest key is forgotten when a
// new one arrives at capacity.
type recentKeys struct {
	mu   sync.Mutex
	keys map[string]struct{}
	ring []string
	next int
}

func newRecentKeys(size int) *recentKeys {
	return &recentKeys{
		keys: make(map[string]struct{}, size),
		ring: make([]string, size),
	}
}

// add records key and reports whether it was not already remembered.
func (r *recentKeys) add(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key]; ok {
		return false
	}

	if old := r.ring[r.next]; old != "" {
		delete(r.keys, old)
	}
	r.ring[r.next] = key
	r.next = (r.next + 1) % len(r.ring)
	r.keys[key] = struct{}{}

	return true
}

func (r *recentKeys) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.keys)
}
