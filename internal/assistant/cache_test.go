package assistant

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Hour)

	ctx := context.Background()
	prompt := BuildPrompt("fever", false, LanguageEnglish)

	if _, hit, err := cache.Get(ctx, prompt); err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	if err := cache.Set(ctx, prompt, "diagnosis text"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := cache.Get(ctx, prompt)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if got != "diagnosis text" {
		t.Fatalf("cached value = %q", got)
	}

	// Different prompts never collide.
	other := BuildPrompt("fever", false, LanguageHindiRoman)
	if _, hit, _ := cache.Get(ctx, other); hit {
		t.Fatal("different prompt hit the same entry")
	}
}

func TestCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)

	ctx := context.Background()
	if err := cache.Set(ctx, "prompt", "answer"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, hit, _ := cache.Get(ctx, "prompt"); hit {
		t.Fatal("expected entry to expire")
	}
}

func TestCacheNilIsNoop(t *testing.T) {
	var cache *Cache

	ctx := context.Background()
	if _, hit, err := cache.Get(ctx, "prompt"); err != nil || hit {
		t.Fatalf("nil cache Get: hit=%v err=%v", hit, err)
	}
	if err := cache.Set(ctx, "prompt", "answer"); err != nil {
		t.Fatalf("nil cache Set: %v", err)
	}
	if NewCache(nil, time.Hour) != nil {
		t.Fatal("NewCache(nil) should return nil")
	}
}
