package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewCacheHelper(client, "category:"), mr
}

type cachedList struct {
	Slugs []string `json:"slugs"`
	Total int64    `json:"total"`
}

func TestCacheHelper_RoundTrip(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	stored := cachedList{Slugs: []string{"films", "books"}, Total: 2}
	if err := helper.Set(ctx, "list:page1", stored, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var loaded cachedList
	if err := helper.Get(ctx, "list:page1", &loaded); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if loaded.Total != 2 || len(loaded.Slugs) != 2 || loaded.Slugs[0] != "films" {
		t.Errorf("unexpected cached value: %+v", loaded)
	}
}

func TestCacheHelper_Miss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var dest cachedList
	if err := helper.Get(context.Background(), "missing", &dest); err != ErrCacheNotFound {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"list:page1", "list:page2", "slug:films"} {
		if err := helper.Set(ctx, key, cachedList{}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if mr.Exists("category:list:page1") || mr.Exists("category:list:page2") {
		t.Error("list keys should have been invalidated")
	}
	if !mr.Exists("category:slug:films") {
		t.Error("non-matching key should survive invalidation")
	}
}

func TestInvalidateAllTitleCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cm := NewCacheManager(client)
	ctx := context.Background()

	// Cached title details and lists, plus an unrelated genre list.
	if err := cm.Title.Set(ctx, "id:1", cachedList{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Title.Set(ctx, "list:q=:l=10:o=0", cachedList{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Genre.Set(ctx, "list:q=:l=10:o=0", cachedList{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	InvalidateAllTitleCache(ctx, cm)

	if mr.Exists("title:id:1") || mr.Exists("title:list:q=:l=10:o=0") {
		t.Error("every cached title entry must be dropped")
	}
	if !mr.Exists("genre:list:q=:l=10:o=0") {
		t.Error("other prefixes must survive a title-wide invalidation")
	}
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "category:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", cachedList{}, time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}

	var dest cachedList
	if err := helper.Get(ctx, "k", &dest); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}
