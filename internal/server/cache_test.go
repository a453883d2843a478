package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("analyze", []byte(`{"vehiclePrice":65000}`))
	b := CacheKey("analyze", []byte(`{"vehiclePrice":65000}`))
	c := CacheKey("scenarios", []byte(`{"vehiclePrice":65000}`))
	d := CacheKey("analyze", []byte(`{"vehiclePrice":65001}`))

	if a != b {
		t.Fatalf("equal inputs should share a key: %s vs %s", a, b)
	}
	if a == c {
		t.Fatal("routes should not share keys")
	}
	if a == d {
		t.Fatal("different inputs should not share keys")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute, 4)
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok || string(value) != "v" {
		t.Fatalf("expected cached value, got %q %v %v", value, ok, err)
	}

	value[0] = 'x'
	if again, _, _ := cache.Get(ctx, "k"); string(again) != "v" {
		t.Fatalf("callers should not be able to mutate cached values, got %q", again)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := cache.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
	if cache.Len() != 0 {
		t.Fatalf("expired entry should be removed, got %d", cache.Len())
	}
}

func TestMemoryCacheBounded(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Minute, 3)

	for i := 0; i < 10; i++ {
		if err := cache.Set(ctx, fmt.Sprintf("k%d", i), []byte("v")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if cache.Len() > 3 {
			t.Fatalf("cache grew past its bound: %d", cache.Len())
		}
	}
	if _, ok, _ := cache.Get(ctx, "k9"); !ok {
		t.Fatal("most recent entry should be present")
	}
}

func TestNewCache(t *testing.T) {
	cache, err := NewCache(CacheConfig{Backend: CacheNone})
	if err != nil || cache != nil {
		t.Fatalf("expected no cache for none backend, got %v %v", cache, err)
	}

	cache, err = NewCache(CacheConfig{Backend: CacheMemory, TTLSeconds: 10})
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	if _, ok := cache.(*MemoryCache); !ok {
		t.Fatalf("expected memory cache, got %T", cache)
	}

	cache, err = NewCache(CacheConfig{Backend: CacheRedis, RedisAddress: "127.0.0.1:6379", TTLSeconds: 10})
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	redisCache, ok := cache.(*RedisCache)
	if !ok {
		t.Fatalf("expected redis cache, got %T", cache)
	}
	_ = redisCache.Close()

	if _, err := NewCache(CacheConfig{Backend: "memcached"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	cache := NewRedisCache(client, time.Minute)
	defer func() { _ = cache.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, ok, err := cache.Get(ctx, "k"); err == nil || ok {
		t.Fatalf("expected an error from an unreachable server, got ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, "k", []byte("v")); err == nil {
		t.Fatal("expected an error storing to an unreachable server")
	}
}
