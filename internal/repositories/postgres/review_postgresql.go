package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/cache"
	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
)

// ReviewPostgreSQL implements ReviewRepository. Every mutation invalidates
// the cached title document, since the derived rating depends on reviews.
type ReviewPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewReviewPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ReviewRepository {
	return &ReviewPostgreSQL{db: db, cache: cacheManager}
}

func (r *ReviewPostgreSQL) Create(ctx context.Context, review *models.Review) error {
	// The unique (title_id, author_id) index surfaces a second review from
	// the same author as gorm.ErrDuplicatedKey.
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}
	cache.InvalidateTitleCache(ctx, r.cache, review.TitleID)
	return nil
}

func (r *ReviewPostgreSQL) GetByID(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) GetByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) ListByTitle(ctx context.Context, titleID uint, filters repositories.PageFilters) ([]*models.Review, int64, error) {
	limit, offset := normalizePage(filters.Limit, filters.Offset)

	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*models.Review
	err := query.
		Preload("Author").
		Order("pub_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewPostgreSQL) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return err
	}
	cache.InvalidateTitleCache(ctx, r.cache, review.TitleID)
	return nil
}

func (r *ReviewPostgreSQL) Delete(ctx context.Context, titleID, reviewID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateTitleCache(ctx, r.cache, titleID)
	return nil
}
