package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

func newTestSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestSQLiteDriverLifecycle(t *testing.T) {
	ctx := context.Background()

	s, err := NewSQLite(newTestSQLiteDB(t))
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}

	if err := s.Put(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put(ctx, "k1", []byte("v2")); err != nil {
		t.Fatalf("Put upsert error: %v", err)
	}

	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected upserted value, got %q", got)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestOpenSQLiteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blobs.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("data")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close(ctx)

	got, err := reopened.Get(ctx, "k")
	if err != nil || string(got) != "data" {
		t.Fatalf("expected persisted blob, got %q err=%v", got, err)
	}
}

func TestNewSQLiteRequiresHandle(t *testing.T) {
	if _, err := NewSQLite(nil); err == nil {
		t.Fatal("expected error for nil handle")
	}
}

func TestOpenSQLiteRejectsNonDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-db.log")
	garbage := bytes.Repeat([]byte("GET / HTTP/1.1\" 200 0\n"), 256)
	if err := os.WriteFile(path, garbage, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	s, err := OpenSQLite(path)
	if err == nil {
		_ = s.Close(context.Background())
		t.Fatal("expected error opening a non-database file")
	}
	if s != nil {
		t.Fatalf("expected no driver, got %+v", s)
	}
}
