package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/cache"
	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
)

// CategoryPostgreSQL implements CategoryRepository with list caching.
type CategoryPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewCategoryPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CategoryRepository {
	return &CategoryPostgreSQL{db: db, cache: cacheManager}
}

type cachedCategoryList struct {
	Items []*models.Category `json:"items"`
	Total int64              `json:"total"`
}

func (r *CategoryPostgreSQL) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	cache.InvalidateTaxonomyCache(ctx, r.cache.Category)
	return nil
}

func (r *CategoryPostgreSQL) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryPostgreSQL) List(ctx context.Context, filters repositories.TaxonomyFilters) ([]*models.Category, int64, error) {
	limit, offset := normalizePage(filters.Limit, filters.Offset)
	key := listCacheKey(filters.Query, limit, offset)

	var cached cachedCategoryList
	if err := r.cache.Category.Get(ctx, key, &cached); err == nil {
		return cached.Items, cached.Total, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Category{})
	if filters.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*models.Category
	if err := query.Order("slug ASC").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	_ = r.cache.Category.Set(ctx, key, cachedCategoryList{Items: categories, Total: total}, cache.CategoryCacheConfig.TTL)

	return categories, total, nil
}

func (r *CategoryPostgreSQL) Delete(ctx context.Context, slug string) error {
	// Titles referencing the category are detached via ON DELETE SET NULL.
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateTaxonomyCache(ctx, r.cache.Category)
	// Cached title documents embed the category; drop them rather than let
	// them serve the deleted slug until the TTL.
	cache.InvalidateAllTitleCache(ctx, r.cache)
	return nil
}

// GenrePostgreSQL implements GenreRepository with list caching.
type GenrePostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewGenrePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.GenreRepository {
	return &GenrePostgreSQL{db: db, cache: cacheManager}
}

type cachedGenreList struct {
	Items []*models.Genre `json:"items"`
	Total int64           `json:"total"`
}

func (r *GenrePostgreSQL) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return err
	}
	cache.InvalidateTaxonomyCache(ctx, r.cache.Genre)
	return nil
}

func (r *GenrePostgreSQL) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GenrePostgreSQL) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GenrePostgreSQL) List(ctx context.Context, filters repositories.TaxonomyFilters) ([]*models.Genre, int64, error) {
	limit, offset := normalizePage(filters.Limit, filters.Offset)
	key := listCacheKey(filters.Query, limit, offset)

	var cached cachedGenreList
	if err := r.cache.Genre.Get(ctx, key, &cached); err == nil {
		return cached.Items, cached.Total, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Genre{})
	if filters.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var genres []*models.Genre
	if err := query.Order("slug ASC").Limit(limit).Offset(offset).Find(&genres).Error; err != nil {
		return nil, 0, err
	}

	_ = r.cache.Genre.Set(ctx, key, cachedGenreList{Items: genres, Total: total}, cache.GenreCacheConfig.TTL)

	return genres, total, nil
}

func (r *GenrePostgreSQL) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return err
		}

		// The join table carries no cascade; clear memberships first.
		if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&genre).Error; err != nil {
			return err
		}

		cache.InvalidateTaxonomyCache(ctx, r.cache.Genre)
		// Titles cached with this genre would keep serving it until the TTL.
		cache.InvalidateAllTitleCache(ctx, r.cache)
		return nil
	})
}
