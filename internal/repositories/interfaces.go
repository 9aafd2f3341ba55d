package repositories

import (
	"context"

	"github.com/reviewhub/review-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Query  string           `json:"query"` // matches username or email
	Role   *models.UserRole `json:"role"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type TaxonomyFilters struct {
	Query  string `json:"query"` // matches name
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type TitleFilters struct {
	Category *string `json:"category"` // category slug
	Genre    *string `json:"genre"`    // genre slug
	Name     *string `json:"name"`     // substring match
	Year     *int    `json:"year"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}

type PageFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// UserRepository manages user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, username string) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}

// CategoryRepository manages the category taxonomy.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, filters TaxonomyFilters) ([]*models.Category, int64, error)
	Delete(ctx context.Context, slug string) error
}

// GenreRepository manages the genre taxonomy.
type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	List(ctx context.Context, filters TaxonomyFilters) ([]*models.Genre, int64, error)
	Delete(ctx context.Context, slug string) error
}

// TitleRepository manages titles. Read operations return titles with the
// derived rating populated.
type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	GetByID(ctx context.Context, id uint) (*models.Title, error)
	List(ctx context.Context, filters TitleFilters) ([]*models.Title, int64, error)
	Update(ctx context.Context, title *models.Title) error
	SetGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id uint) error
}

// ReviewRepository manages reviews, scoped by title.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, titleID, reviewID uint) (*models.Review, error)
	GetByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID uint, filters PageFilters) ([]*models.Review, int64, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, titleID, reviewID uint) error
}

// CommentRepository manages comments, scoped by review.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, reviewID, commentID uint) (*models.Comment, error)
	ListByReview(ctx context.Context, reviewID uint, filters PageFilters) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, reviewID, commentID uint) error
}
