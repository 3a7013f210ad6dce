package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// newTestCache connects to a local Redis, skipping the test when none is
// reachable so the suite stays runnable without infrastructure.
func newTestCache(t *testing.T) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available at localhost:6379: %v", err)
	}

	c := New(client, "todo-test:", time.Minute)
	t.Cleanup(func() {
		c.DeletePattern(context.Background(), "*")
		c.Close()
	})
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type entry struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	if err := c.Set(ctx, "list:u:::", []entry{{ID: "t1", Title: "one"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got []entry
	found, err := c.Get(ctx, "list:u:::", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() miss for a key just set")
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := newTestCache(t)

	var dest string
	found, err := c.Get(context.Background(), "never-set", &dest)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() reported a hit for an absent key")
	}
}

func TestCache_DeletePattern(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	keys := []string{"list:alice:::", "list:alice:pending::", "list:bob:::"}
	for _, key := range keys {
		if err := c.Set(ctx, key, "v"); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := c.DeletePattern(ctx, "list:alice:*"); err != nil {
		t.Fatalf("DeletePattern() error = %v", err)
	}

	var dest string
	for _, key := range []string{"list:alice:::", "list:alice:pending::"} {
		if found, _ := c.Get(ctx, key, &dest); found {
			t.Errorf("key %q survived pattern delete", key)
		}
	}
	if found, _ := c.Get(ctx, "list:bob:::", &dest); !found {
		t.Error("pattern delete removed another owner's key")
	}
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "stat-key", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var dest string
	c.Get(ctx, "stat-key", &dest)
	c.Get(ctx, "missing-key", &dest)

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("hit rate = %v, want 50", stats.HitRate)
	}
}
