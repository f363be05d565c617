package pkglog

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "[invalid_chain_id]" {
		t.Fatalf("expected invalid chain id, got %q", got)
	}

	ctx = SetCorrelationID(ctx, "cid-123")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("expected cid-123, got %q", got)
	}
}

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetRunID(ctx); ok {
		t.Fatal("expected no run id on empty context")
	}

	ctx = SetRunID(ctx, 42)
	got, ok := GetRunID(ctx)
	if !ok || got != 42 {
		t.Fatalf("expected run id 42, got %d (ok=%v)", got, ok)
	}
}
