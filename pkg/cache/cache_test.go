package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same inputs produce the same key
	k1 := k.RenderKey([]byte("code"), []byte("art"), struct{ W int }{80})
	k2 := k.RenderKey([]byte("code"), []byte("art"), struct{ W int }{80})
	if k1 != k2 {
		t.Error("RenderKey should be deterministic")
	}

	// Each component participates in the key
	if k1 == k.RenderKey([]byte("other"), []byte("art"), struct{ W int }{80}) {
		t.Error("different code should produce a different key")
	}
	if k1 == k.RenderKey([]byte("code"), []byte("other"), struct{ W int }{80}) {
		t.Error("different art should produce a different key")
	}
	if k1 == k.RenderKey([]byte("code"), []byte("art"), struct{ W int }{99}) {
		t.Error("different options should produce a different key")
	}

	if k1[:7] != "render:" {
		t.Errorf("RenderKey should carry the render prefix: %s", k1)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss on unknown key
	_, hit, err := c.Get(ctx, "missing")
	if err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v; want miss, nil", hit, err)
	}

	// Set then Get
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = %q, hit %v; want \"value\", true", data, hit)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "stale", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, hit, _ = c.Get(ctx, "stale")
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("deleted entry should be a miss")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "never"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCache_Purge(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := fc.Purge(); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	_, hit, _ := c.Get(ctx, "a")
	if hit {
		t.Error("purged entry should be a miss")
	}
}
