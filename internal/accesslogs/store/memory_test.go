package store

import (
	"context"
	"errors"
	"testing"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

func TestMemoryDriverPutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(0)

	data := []byte("hello")
	if err := s.Put(ctx, "k1", data); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data[0] = 'j'

	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("expected stored copy, got %q", got)
	}

	got[0] = 'y'
	again, _ := s.Get(ctx, "k1")
	if string(again) != "hello" {
		t.Fatalf("blob mutated through returned slice: %q", again)
	}
}

func TestMemoryDriverNotFound(t *testing.T) {
	_, err := NewMemory(0).Get(context.Background(), "missing")
	if !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDriverEvictsOldestBeyondLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(2)

	for _, key := range []string{"a", "b", "a", "c"} {
		if err := s.Put(ctx, key, []byte(key)); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	if _, err := s.Get(ctx, "b"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	for _, key := range []string{"a", "c"} {
		if _, err := s.Get(ctx, key); err != nil {
			t.Fatalf("expected %s kept: %v", key, err)
		}
	}
}

func TestNewMemoryDefaultsLimit(t *testing.T) {
	if got := NewMemory(0).maxBlobs; got != DefaultMemoryBlobs {
		t.Fatalf("expected default limit %d, got %d", DefaultMemoryBlobs, got)
	}
}
