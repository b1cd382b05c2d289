package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, time.Minute), mr
}

func TestResponseCacheGetSet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "/api/blog"); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}

	want := Entry{ContentType: "application/json; charset=utf-8", Body: []byte(`{"posts":[]}`)}
	if err := c.Set(ctx, "/api/blog", want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, "/api/blog")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.ContentType != want.ContentType || string(got.Body) != string(want.Body) {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "/api/blog"); ok {
		t.Error("entry survived its ttl")
	}
}

func TestResponseCachePurge(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"/api/blog", "/api/tags", "/sitemap.xml"} {
		if err := c.Set(ctx, key, Entry{Body: []byte("x")}); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	mr.Set("unrelated", "keep")

	if err := c.Purge(ctx); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "/api/tags"); ok {
		t.Error("entry survived purge")
	}
	if !mr.Exists("unrelated") {
		t.Error("purge removed a key it does not own")
	}

	if err := c.Purge(ctx); err != nil {
		t.Errorf("Purge on empty cache: %v", err)
	}
}

func TestOpenDisabled(t *testing.T) {
	c, err := Open(context.Background(), map[string]string{})
	if err != nil || c != nil {
		t.Errorf("Open without REDIS_ADDR = %v, %v", c, err)
	}
}

func TestOpenConnects(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Open(context.Background(), map[string]string{"REDIS_ADDR": mr.Addr(), "CACHE_TTL_SECONDS": "30"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()
	if c.ttl != 30*time.Second {
		t.Errorf("ttl = %v", c.ttl)
	}
}
