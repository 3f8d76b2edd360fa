package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/ledgersync/internal/usecase"
)

func TestCacheSetGetDelete(t *testing.T) {
	c := NewCache(time.Hour, time.Hour)
	ctx := context.Background()

	value := []byte("AAPL")
	if err := c.Set(ctx, "k", value, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value[0] = 'X'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "AAPL" {
		t.Fatalf("expected stored copy, got %s", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Hour, time.Hour)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected expired entry to miss, got %v", err)
	}
}
