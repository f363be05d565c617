package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkguid"
)

type BlobStore interface {
	Store(ctx context.Context, key string, data []byte) (string, error)
}

type URLPublisher interface {
	Publish(ctx context.Context, event entity.URLReadyEvent) error
}

type Clock interface {
	Now() time.Time
}

type CoordinatorDependency struct {
	Store  BlobStore
	Events URLPublisher
	Clock  Clock
	ID     pkguid.StringID
}

// Coordinator turns a selected file into a fetchable URL and announces it.
type Coordinator struct {
	store  BlobStore
	events URLPublisher
	clock  Clock
	id     pkguid.StringID

	mu      sync.Mutex
	pending *entity.File
	current *entity.UploadedFileRef
}

func NewCoordinator(dep CoordinatorDependency) *Coordinator {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	id := dep.ID
	if id == nil {
		id = pkguid.NewUUID()
	}

	return &Coordinator{
		store:  dep.Store,
		events: dep.Events,
		clock:  clock,
		id:     id,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Select records file as the pending upload, replacing any earlier selection.
func (c *Coordinator) Select(file entity.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = &file
}

// Upload stores the pending file and publishes its URL.
//
// With nothing selected it returns a skipped result without touching the
// store. A store failure is wrapped in ErrUpload and is not retried; the file
// stays selected so the caller may invoke Upload again.
func (c *Coordinator) Upload(ctx context.Context) (UploadResult, error) {
	c.mu.Lock()
	pending := c.pending
	c.mu.Unlock()

	if pending == nil {
		slog.DebugContext(ctx, "upload requested with no file selected")
		return UploadResult{Skipped: true}, nil
	}

	key := c.id.Generate() + "-" + sanitizeName(pending.Name)
	url, err := c.store.Store(ctx, key, pending.Data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload log file", "key", key, "error", err)
		return UploadResult{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	ref := entity.UploadedFileRef{
		File:       *pending,
		Key:        key,
		URL:        url,
		UploadedAt: c.clock.Now(),
	}

	c.mu.Lock()
	c.current = &ref
	c.mu.Unlock()

	slog.InfoContext(ctx, "log file uploaded", "key", key, "url", url, "bytes", len(pending.Data))

	if c.events != nil {
		event := entity.URLReadyEvent{EventID: c.id.Generate(), Key: key, URL: url}
		if err := c.events.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish url event", "key", key, "event_id", event.EventID, "error", err)
		}
	}

	return UploadResult{Ref: ref}, nil
}

// Pending reports whether a file is selected.
func (c *Coordinator) Pending() (entity.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return entity.File{}, false
	}
	return *c.pending, true
}

// Current returns the last successfully uploaded file.
func (c *Coordinator) Current() (entity.UploadedFileRef, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return entity.UploadedFileRef{}, false
	}
	return *c.current, true
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "access.log"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}
