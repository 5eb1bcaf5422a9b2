package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, err := c.Get(ctx, "k")
	if err != nil || string(b) != "v" {
		t.Fatalf("get = %q, %v", b, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestLayeredCacheBackfill(t *testing.T) {
	local := NewMemoryCache()
	remote := NewMemoryCache()
	c := NewLayeredCache(local, remote)
	ctx := context.Background()

	if err := remote.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("seed remote: %v", err)
	}

	b, err := c.Get(ctx, "k")
	if err != nil || string(b) != "v" {
		t.Fatalf("layered get = %q, %v", b, err)
	}
	// remote hit must land in the local layer
	if b, err := local.Get(ctx, "k"); err != nil || string(b) != "v" {
		t.Fatalf("local backfill = %q, %v", b, err)
	}
}

func TestLayeredCacheDeleteBothLayers(t *testing.T) {
	local := NewMemoryCache()
	remote := NewMemoryCache()
	c := NewLayeredCache(local, remote)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := local.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("local still holds key")
	}
	if _, err := remote.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("remote still holds key")
	}
}
