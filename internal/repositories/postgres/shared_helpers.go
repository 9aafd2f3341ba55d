package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/repositories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps pagination values to sane bounds.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// applyTitleFilters applies catalog filters to a titles query.
func applyTitleFilters(query *gorm.DB, filters repositories.TitleFilters) *gorm.DB {
	if filters.Category != nil {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", *filters.Category)
	}
	if filters.Genre != nil {
		query = query.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", *filters.Genre)
	}
	if filters.Name != nil {
		query = query.Where("titles.name ILIKE ?", "%"+*filters.Name+"%")
	}
	if filters.Year != nil {
		query = query.Where("titles.year = ?", *filters.Year)
	}
	return query
}

// listCacheKey builds a stable cache key for a paginated list query.
func listCacheKey(query string, limit, offset int) string {
	return fmt.Sprintf("list:q=%s:l=%d:o=%d", query, limit, offset)
}
