package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// failing the caller: cache invalidation errors never break a write path.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging failures.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateTaxonomyCache drops the cached lists for a taxonomy after a
// create or delete.
func InvalidateTaxonomyCache(ctx context.Context, helper *CacheHelper) {
	SafeInvalidatePattern(ctx, helper, "list:*")
}

// InvalidateTitleCache drops the cached detail and lists for a title.
func InvalidateTitleCache(ctx context.Context, cm *CacheManager, titleID uint) {
	SafeDelete(ctx, cm.Title, fmt.Sprintf("id:%d", titleID))
	SafeInvalidatePattern(ctx, cm.Title, "list:*")
}

// InvalidateAllTitleCache drops every cached title document. Used when a
// taxonomy mutation can touch an unbounded set of titles, e.g. deleting a
// genre strips it from every cached detail.
func InvalidateAllTitleCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Title, "*")
}
