package pkgroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// MaxCollectedErrors bounds how many task errors are kept for Wait. The
// manager lives as long as the server, so older errors are dropped.
const MaxCollectedErrors int = 100

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// It collects errors returned by tasks and can be waited on using Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	dropped int
	wg      *sync.WaitGroup
	sema    chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		wg:   &sync.WaitGroup{},
		sema: make(chan struct{}, maxGoroutine), // Semaphore to limit goroutines
	}
}

// Go schedules a function to run in a goroutine.
//
// At the concurrency limit it blocks until a slot frees. If pCtx ends first,
// the function is not run and a warning is logged.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	select {
	case g.sema <- struct{}{}: // Acquire a semaphore slot
	case <-pCtx.Done():
		slog.WarnContext(pCtx, "goroutine canceled before start", "because", pCtx.Err())
		return
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			<-g.sema // Release semaphore slot

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				slog.ErrorContext(pCtx, "panic occurred in goroutine", "stack", string(stack))
			}
		}()

		select {
		case <-pCtx.Done():
			slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
		default:
			if err := f(pCtx); err != nil {
				g.collect(err)
			}
		}
	}()
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.errs) == MaxCollectedErrors {
		g.errs = g.errs[1:]
		g.dropped++
	}
	g.errs = append(g.errs, err)
}

// Running returns the number of tasks currently holding a slot.
func (g *Manager) Running() int {
	return len(g.sema)
}

// Wait blocks until all scheduled goroutines finish and returns any collected errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dropped > 0 {
		slog.Warn("goroutine errors dropped", "count", g.dropped)
	}

	return errors.Join(g.errs...)
}
