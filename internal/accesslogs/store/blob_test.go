package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

func TestBlobStoreURLRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewBlobStore(NewMemory(0), "http://localhost:8080/", nil)

	url, err := b.Store(ctx, "id-my log.txt", []byte("abc"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if url != "http://localhost:8080/blobs/id-my%20log.txt" {
		t.Fatalf("unexpected url %q", url)
	}

	got, err := b.Fetch(ctx, url)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("unexpected content %q", got)
	}

	opened, err := b.Open(ctx, "id-my log.txt")
	if err != nil || string(opened) != "abc" {
		t.Fatalf("Open: %q %v", opened, err)
	}
}

func TestBlobStoreFetchLocalMissing(t *testing.T) {
	b := NewBlobStore(NewMemory(0), "http://localhost:8080", nil)

	_, err := b.Fetch(context.Background(), b.URL("gone"))
	if !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlobStoreFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.log":
			_, _ = w.Write([]byte("remote"))
		case "/broken.log":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b := NewBlobStore(NewMemory(0), "http://blobs.internal", srv.Client())
	ctx := context.Background()

	got, err := b.Fetch(ctx, srv.URL+"/ok.log")
	if err != nil || string(got) != "remote" {
		t.Fatalf("Fetch ok: %q %v", got, err)
	}

	if _, err := b.Fetch(ctx, srv.URL+"/missing.log"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := b.Fetch(ctx, srv.URL+"/broken.log"); err == nil || errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestBlobStoreFetchHonoursContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	b := NewBlobStore(NewMemory(0), "", srv.Client())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Fetch(ctx, srv.URL+"/slow.log"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
