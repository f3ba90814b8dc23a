package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, prefix string) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+srv.Addr(), prefix)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t, "bstviz:")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("digraph T {}"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if !srv.Exists("bstviz:k") {
		t.Error("key not stored under prefix")
	}
	if ttl := srv.TTL("bstviz:k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "digraph T {}" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t, "")

	if err := c.Set(ctx, "k", []byte("x"), time.Second); err != nil {
		t.Fatal(err)
	}
	srv.FastForward(2 * time.Second)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t, "mine:")
	if err := srv.Set("other:keep", "1"); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d keys, want 2", n)
	}
	if !srv.Exists("other:keep") {
		t.Error("Clear removed a key outside its prefix")
	}
}

func TestRedisCacheClosed(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedis(t, "")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Get(ctx, "k"); err != ErrClosed {
		t.Errorf("Get after Close: err = %v, want ErrClosed", err)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := NewRedisCache(ctx, "http://nope", ""); err == nil {
		t.Error("expected parse error")
	}

	if _, err := NewRedisCache(ctx, "redis://127.0.0.1:1", ""); err == nil {
		t.Error("expected ping error without a server")
	}
}

func TestRedisCacheFromClient(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisCacheFromClient(client, "p:")
	defer c.Close()

	if err := c.Set(context.Background(), "x", []byte("1"), 0); err != nil {
		t.Fatal(err)
	}
	if got, _ := srv.Get("p:x"); got != "1" {
		t.Errorf("stored %q", got)
	}
}
