package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"dispatch-strategy-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisPathCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPathCache(client, time.Minute), mr
}

func TestRedisPathCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	got, err := c.Get(ctx, "depot", "cust-1")
	if err != nil {
		t.Fatalf("get on empty cache: %v", err)
	}
	if got != nil {
		t.Fatalf("miss returned %+v, want nil", got)
	}

	want := domain.Path{Nodes: []string{"depot", "wh-1", "cust-1"}, Distance: 6.5}
	if err := c.Put(ctx, "depot", "cust-1", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err = c.Get(ctx, "depot", "cust-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Distance != want.Distance || len(got.Nodes) != 3 || got.Nodes[1] != "wh-1" {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// Direction matters.
	rev, err := c.Get(ctx, "cust-1", "depot")
	if err != nil {
		t.Fatalf("reverse get: %v", err)
	}
	if rev != nil {
		t.Fatalf("reverse lookup hit: %+v", rev)
	}
}

func TestRedisPathCacheFlush(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}} {
		if err := c.Put(ctx, pair[0], pair[1], domain.Path{Nodes: []string{pair[0], pair[1]}, Distance: 1}); err != nil {
			t.Fatalf("put %v: %v", pair, err)
		}
	}
	mr.Set("unrelated", "survives")

	if err := c.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	got, err := c.Get(ctx, "a", "b")
	if err != nil {
		t.Fatalf("get after flush: %v", err)
	}
	if got != nil {
		t.Fatalf("entry survived flush: %+v", got)
	}
	if !mr.Exists("unrelated") {
		t.Fatal("flush removed keys outside the path namespace")
	}
}

func TestRedisPathCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "a", "b", domain.Path{Nodes: []string{"a", "b"}, Distance: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "a", "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expired entry still served: %+v", got)
	}
}
