package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkglog"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkguid"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type SnapshotPublisher interface {
	Publish(ctx context.Context, event entity.PublishedEvent) error
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type PipelineDependency struct {
	Fetcher      Fetcher
	Publisher    SnapshotPublisher
	Runner       Runner
	Clock        Clock
	EventID      pkguid.StringID
	RunID        pkguid.NumberID
	RootCtx      context.Context
	FetchTimeout time.Duration
}

// Pipeline fetches uploaded logs, aggregates them and publishes snapshots.
//
// Every Request gets a token. Only the run holding the latest token may change
// published state, so a slow earlier run can never overwrite a newer one.
type Pipeline struct {
	fetcher      Fetcher
	publisher    SnapshotPublisher
	runner       Runner
	clock        Clock
	eventID      pkguid.StringID
	runID        pkguid.NumberID
	rootCtx      context.Context
	fetchTimeout time.Duration

	mu      sync.Mutex
	token   uint64
	cancel  context.CancelFunc
	state   entity.PipelineState
	outcome entity.PipelineState
	latest  *entity.Snapshot
	lastErr error
}

func NewPipeline(dep PipelineDependency) *Pipeline {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	eventID := dep.EventID
	if eventID == nil {
		eventID = pkguid.NewUUID()
	}

	return &Pipeline{
		fetcher:      dep.Fetcher,
		publisher:    dep.Publisher,
		runner:       dep.Runner,
		clock:        clock,
		eventID:      eventID,
		runID:        dep.RunID,
		rootCtx:      root,
		fetchTimeout: dep.FetchTimeout,
		state:        entity.PipelineStateIdle,
	}
}

// Request starts a run for url and supersedes any run still in flight.
// It returns the token stamped on the new run.
func (p *Pipeline) Request(url string) uint64 {
	p.mu.Lock()
	p.token++
	token := p.token
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(p.rootCtx)
	p.cancel = cancel
	p.state = entity.PipelineStateFetching
	p.mu.Unlock()

	var runID int64
	if p.runID != nil {
		runID = p.runID.Generate()
	}
	ctx = pkglog.SetRunID(ctx, runID)

	slog.InfoContext(ctx, "aggregation requested", "token", token, "url", url)

	p.runner.Go(ctx, func(ctx context.Context) error {
		return p.run(ctx, token, runID, url)
	})

	return token
}

func (p *Pipeline) run(ctx context.Context, token uint64, runID int64, url string) error {
	fetchCtx := ctx
	if p.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
	}

	data, err := p.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		return p.fail(ctx, token, url, fmt.Errorf("%w: %w", ErrFetch, err))
	}

	text, err := DecodeText(data)
	if err != nil {
		return p.fail(ctx, token, url, err)
	}

	if !p.advance(token, entity.PipelineStateAggregating) {
		slog.DebugContext(ctx, "discard superseded run before aggregation", "token", token)
		return nil
	}

	result := Aggregate(text)
	slog.InfoContext(ctx, "log aggregated",
		"token", token,
		"codes", result.Frequencies.Len(),
		"total_lines", result.TotalLines,
		"matched", result.Matched,
		"skipped", result.Skipped,
	)
	if result.TotalLines > 0 && result.Matched == 0 {
		slog.WarnContext(ctx, "no line matched the status code pattern", "token", token, "total_lines", result.TotalLines)
	}

	return p.publish(ctx, token, entity.Snapshot{
		RunID:       runID,
		URL:         url,
		Result:      result,
		PublishedAt: p.clock.Now(),
	})
}

// advance moves the state forward only if token is still the latest.
func (p *Pipeline) advance(token uint64, state entity.PipelineState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.token {
		return false
	}
	p.state = state
	return true
}

// publish runs under the lock so a newer Request cannot slip in between the
// token check and the hand-off to presenters.
func (p *Pipeline) publish(ctx context.Context, token uint64, snap entity.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.token {
		slog.DebugContext(ctx, "discard superseded result", "token", token, "latest", p.token)
		return nil
	}

	if p.publisher != nil {
		event := entity.PublishedEvent{EventID: p.eventID.Generate(), Snapshot: snap}
		if err := p.publisher.Publish(ctx, event); err != nil {
			p.state = entity.PipelineStateIdle
			p.outcome = entity.PipelineStateFailed
			p.lastErr = fmt.Errorf("publish snapshot: %w", err)
			slog.ErrorContext(ctx, "failed to publish snapshot", "token", token, "error", err)
			return p.lastErr
		}
	}

	p.latest = &snap
	p.lastErr = nil
	p.outcome = entity.PipelineStatePublished
	p.state = entity.PipelineStateIdle
	slog.InfoContext(ctx, "snapshot published", "token", token, "codes", snap.Result.Frequencies.Len())

	return nil
}

func (p *Pipeline) fail(ctx context.Context, token uint64, url string, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.token {
		slog.DebugContext(ctx, "discard superseded failure", "token", token, "error", err)
		return nil
	}

	p.outcome = entity.PipelineStateFailed
	p.lastErr = err
	p.state = entity.PipelineStateIdle
	slog.ErrorContext(ctx, "aggregation failed", "token", token, "url", url, "error", err)

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// Status reports the current state and the last published snapshot.
func (p *Pipeline) Status() PipelineStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := PipelineStatus{
		State:   p.state,
		Outcome: p.outcome,
		Token:   p.token,
		Latest:  p.latest,
	}
	if p.lastErr != nil {
		status.LastError = p.lastErr.Error()
	}

	return status
}

// Latest returns the last published snapshot.
func (p *Pipeline) Latest() (entity.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.latest == nil {
		return entity.Snapshot{}, false
	}
	return *p.latest, true
}

// Stop cancels the run in flight, if any.
func (p *Pipeline) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	return nil
}
