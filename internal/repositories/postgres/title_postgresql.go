package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/cache"
	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
)

// TitlePostgreSQL implements TitleRepository. Read paths populate the derived
// rating from the reviews table; detail documents are cached briefly and
// invalidated on any title or review mutation.
type TitlePostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewTitlePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.TitleRepository {
	return &TitlePostgreSQL{db: db, cache: cacheManager}
}

func (r *TitlePostgreSQL) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return err
	}
	cache.SafeInvalidatePattern(ctx, r.cache.Title, "list:*")
	return nil
}

func (r *TitlePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	key := fmt.Sprintf("id:%d", id)

	var cached models.Title
	if err := r.cache.Title.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}

	if err := r.loadRatings(ctx, []*models.Title{&title}); err != nil {
		return nil, err
	}

	_ = r.cache.Title.Set(ctx, key, &title, cache.TitleCacheConfig.TTL)

	return &title, nil
}

func (r *TitlePostgreSQL) List(ctx context.Context, filters repositories.TitleFilters) ([]*models.Title, int64, error) {
	limit, offset := normalizePage(filters.Limit, filters.Offset)

	query := applyTitleFilters(r.db.WithContext(ctx).Model(&models.Title{}), filters)

	var total int64
	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []*models.Title
	err := query.
		Distinct("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.name ASC, titles.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadRatings(ctx, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *TitlePostgreSQL) Update(ctx context.Context, title *models.Title) error {
	// Genre membership is replaced through SetGenres, never through Save.
	err := r.db.WithContext(ctx).Omit("Genres").Save(title).Error
	if err != nil {
		return err
	}
	cache.InvalidateTitleCache(ctx, r.cache, title.ID)
	return nil
}

func (r *TitlePostgreSQL) SetGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
	if err != nil {
		return err
	}
	title.Genres = genres
	cache.InvalidateTitleCache(ctx, r.cache, title.ID)
	return nil
}

func (r *TitlePostgreSQL) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateTitleCache(ctx, r.cache, id)
	return nil
}

type titleRating struct {
	TitleID uint
	Rating  float64
}

// loadRatings populates the derived rating for a batch of titles with a
// single grouped query. Titles without reviews keep a nil rating.
func (r *TitlePostgreSQL) loadRatings(ctx context.Context, titles []*models.Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]uint, len(titles))
	for i, title := range titles {
		ids[i] = title.ID
	}

	var ratings []titleRating
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&ratings).Error
	if err != nil {
		return err
	}

	applyRatings(titles, ratings)
	return nil
}

// applyRatings maps grouped average rows onto their titles. A title with no
// row stays at nil, never zero.
func applyRatings(titles []*models.Title, ratings []titleRating) {
	byTitle := make(map[uint]float64, len(ratings))
	for _, rating := range ratings {
		byTitle[rating.TitleID] = rating.Rating
	}

	for _, title := range titles {
		if rating, ok := byTitle[title.ID]; ok {
			value := rating
			title.Rating = &value
		} else {
			title.Rating = nil
		}
	}
}
