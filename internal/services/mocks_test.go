package services

import (
	"context"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	users      *fakeUserRepo
	categories *fakeCategoryRepo
	genres     *fakeGenreRepo
	titles     *fakeTitleRepo
	reviews    *fakeReviewRepo
	comments   *fakeCommentRepo
}

func newFakeRepository() *fakeRepository {
	reviews := &fakeReviewRepo{}
	return &fakeRepository{
		users:      &fakeUserRepo{},
		categories: &fakeCategoryRepo{},
		genres:     &fakeGenreRepo{},
		titles:     &fakeTitleRepo{reviews: reviews},
		reviews:    reviews,
		comments:   &fakeCommentRepo{},
	}
}

func (f *fakeRepository) User() repositories.UserRepository         { return f.users }
func (f *fakeRepository) Category() repositories.CategoryRepository { return f.categories }
func (f *fakeRepository) Genre() repositories.GenreRepository       { return f.genres }
func (f *fakeRepository) Title() repositories.TitleRepository       { return f.titles }
func (f *fakeRepository) Review() repositories.ReviewRepository     { return f.reviews }
func (f *fakeRepository) Comment() repositories.CommentRepository   { return f.comments }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct {
	users  []*models.User
	nextID uint

	// beforeCreate runs once at the start of the next Create call, letting a
	// test slip in a concurrent writer between lookup and insert.
	beforeCreate func()
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook()
	}
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.ID != user.ID && (existing.Username == user.Username || existing.Email == user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	for i, existing := range r.users {
		if existing.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Delete(ctx context.Context, username string) error {
	for i, user := range r.users {
		if user.Username == username {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return r.users, int64(len(r.users)), nil
}

// ===== CATEGORIES =====

type fakeCategoryRepo struct {
	categories []*models.Category
	nextID     uint
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	for _, existing := range r.categories {
		if existing.Slug == category.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	category.ID = r.nextID
	r.categories = append(r.categories, category)
	return nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, category := range r.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) List(ctx context.Context, filters repositories.TaxonomyFilters) ([]*models.Category, int64, error) {
	return r.categories, int64(len(r.categories)), nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, slug string) error {
	for i, category := range r.categories {
		if category.Slug == slug {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== GENRES =====

type fakeGenreRepo struct {
	genres []*models.Genre
	nextID uint
}

func (r *fakeGenreRepo) Create(ctx context.Context, genre *models.Genre) error {
	for _, existing := range r.genres {
		if existing.Slug == genre.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	genre.ID = r.nextID
	r.genres = append(r.genres, genre)
	return nil
}

func (r *fakeGenreRepo) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	for _, genre := range r.genres {
		if genre.Slug == slug {
			return genre, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGenreRepo) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var out []models.Genre
	for _, slug := range slugs {
		for _, genre := range r.genres {
			if genre.Slug == slug {
				out = append(out, *genre)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeGenreRepo) List(ctx context.Context, filters repositories.TaxonomyFilters) ([]*models.Genre, int64, error) {
	return r.genres, int64(len(r.genres)), nil
}

func (r *fakeGenreRepo) Delete(ctx context.Context, slug string) error {
	for i, genre := range r.genres {
		if genre.Slug == slug {
			r.genres = append(r.genres[:i], r.genres[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== TITLES =====

type fakeTitleRepo struct {
	titles []*models.Title
	nextID uint

	// Read paths derive ratings from the review store, mirroring the grouped
	// average the real repository computes.
	reviews *fakeReviewRepo
}

func (r *fakeTitleRepo) applyRating(title *models.Title) {
	if r.reviews == nil {
		return
	}
	var sum, count int
	for _, review := range r.reviews.reviews {
		if review.TitleID == title.ID {
			sum += review.Score
			count++
		}
	}
	if count == 0 {
		title.Rating = nil
		return
	}
	value := float64(sum) / float64(count)
	title.Rating = &value
}

func (r *fakeTitleRepo) Create(ctx context.Context, title *models.Title) error {
	r.nextID++
	title.ID = r.nextID
	r.titles = append(r.titles, title)
	return nil
}

func (r *fakeTitleRepo) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	for _, title := range r.titles {
		if title.ID == id {
			r.applyRating(title)
			return title, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTitleRepo) List(ctx context.Context, filters repositories.TitleFilters) ([]*models.Title, int64, error) {
	limit, offset := filters.Limit, filters.Offset
	if limit <= 0 {
		limit = 10
	}
	if offset >= len(r.titles) {
		return nil, int64(len(r.titles)), nil
	}
	end := offset + limit
	if end > len(r.titles) {
		end = len(r.titles)
	}
	page := r.titles[offset:end]
	for _, title := range page {
		r.applyRating(title)
	}
	return page, int64(len(r.titles)), nil
}

func (r *fakeTitleRepo) Update(ctx context.Context, title *models.Title) error {
	for i, existing := range r.titles {
		if existing.ID == title.ID {
			r.titles[i] = title
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTitleRepo) SetGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	title.Genres = genres
	return nil
}

func (r *fakeTitleRepo) Delete(ctx context.Context, id uint) error {
	for i, title := range r.titles {
		if title.ID == id {
			r.titles = append(r.titles[:i], r.titles[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== REVIEWS =====

type fakeReviewRepo struct {
	reviews []*models.Review
	nextID  uint
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	review.ID = r.nextID
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.ID == reviewID && review.TitleID == titleID {
			return review, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) GetByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.TitleID == titleID && review.AuthorID == authorID {
			return review, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) ListByTitle(ctx context.Context, titleID uint, filters repositories.PageFilters) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, review := range r.reviews {
		if review.TitleID == titleID {
			out = append(out, review)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *models.Review) error {
	for i, existing := range r.reviews {
		if existing.ID == review.ID {
			r.reviews[i] = review
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) Delete(ctx context.Context, titleID, reviewID uint) error {
	for i, review := range r.reviews {
		if review.ID == reviewID && review.TitleID == titleID {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== COMMENTS =====

type fakeCommentRepo struct {
	comments []*models.Comment
	nextID   uint
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, reviewID, commentID uint) (*models.Comment, error) {
	for _, comment := range r.comments {
		if comment.ID == commentID && comment.ReviewID == reviewID {
			return comment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) ListByReview(ctx context.Context, reviewID uint, filters repositories.PageFilters) ([]*models.Comment, int64, error) {
	var out []*models.Comment
	for _, comment := range r.comments {
		if comment.ReviewID == reviewID {
			out = append(out, comment)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	for i, existing := range r.comments {
		if existing.ID == comment.ID {
			r.comments[i] = comment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) Delete(ctx context.Context, reviewID, commentID uint) error {
	for i, comment := range r.comments {
		if comment.ID == commentID && comment.ReviewID == reviewID {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
