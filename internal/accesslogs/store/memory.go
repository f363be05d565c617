package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

// DefaultMemoryBlobs is how many blobs the memory driver keeps when no limit
// is configured.
const DefaultMemoryBlobs = 16

// MemoryDriver keeps the most recently written blobs in process. Once
// maxBlobs is reached, the oldest write is evicted.
type MemoryDriver struct {
	mu       sync.RWMutex
	blobs    map[string][]byte
	order    []string
	maxBlobs int
}

func NewMemory(maxBlobs int) *MemoryDriver {
	if maxBlobs < 1 {
		maxBlobs = DefaultMemoryBlobs
	}

	return &MemoryDriver{
		blobs:    make(map[string][]byte),
		maxBlobs: maxBlobs,
	}
}

func (s *MemoryDriver) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[key]; ok {
		s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == key })
	}
	s.blobs[key] = slices.Clone(data)
	s.order = append(s.order, key)

	for len(s.order) > s.maxBlobs {
		delete(s.blobs, s.order[0])
		s.order = s.order[1:]
	}

	return nil
}

func (s *MemoryDriver) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: blob %s", pkgerror.ErrNotFound, key)
	}

	return slices.Clone(data), nil
}

func (s *MemoryDriver) Close(context.Context) error {
	return nil
}
