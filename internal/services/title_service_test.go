package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/validator"
)

func newTitleFixture(t *testing.T) (*fakeRepository, TitleService) {
	t.Helper()

	repo := newFakeRepository()
	ctx := context.Background()

	for _, category := range []*models.Category{
		{Name: "Films", Slug: "films"},
		{Name: "Books", Slug: "books"},
	} {
		if err := repo.categories.Create(ctx, category); err != nil {
			t.Fatalf("seed category failed: %v", err)
		}
	}
	for _, genre := range []*models.Genre{
		{Name: "Drama", Slug: "drama"},
		{Name: "Comedy", Slug: "comedy"},
	} {
		if err := repo.genres.Create(ctx, genre); err != nil {
			t.Fatalf("seed genre failed: %v", err)
		}
	}

	return repo, NewTitleService(repo, testLogger(), validator.New())
}

func TestTitleCreate_ResolvesTaxonomy(t *testing.T) {
	_, service := newTitleFixture(t)

	title, err := service.Create(context.Background(), &TitleCreateRequest{
		Name:     "Some Film",
		Year:     2001,
		Genre:    []string{"drama", "comedy"},
		Category: "films",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if title.Category == nil || title.Category.Slug != "films" {
		t.Errorf("category not resolved: %+v", title.Category)
	}
	if len(title.Genres) != 2 {
		t.Errorf("expected 2 genres, got %d", len(title.Genres))
	}
	if title.Rating != nil {
		t.Error("a fresh title has no rating")
	}
}

func TestTitleCreate_UnknownSlugsAreValidationFailures(t *testing.T) {
	_, service := newTitleFixture(t)
	ctx := context.Background()

	t.Run("category", func(t *testing.T) {
		_, err := service.Create(ctx, &TitleCreateRequest{
			Name: "X", Year: 2001, Genre: []string{"drama"}, Category: "games",
		})
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || errs[0].Field != "category" {
			t.Errorf("expected category validation error, got %v", err)
		}
	})

	t.Run("genre", func(t *testing.T) {
		_, err := service.Create(ctx, &TitleCreateRequest{
			Name: "X", Year: 2001, Genre: []string{"drama", "noir"}, Category: "films",
		})
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || errs[0].Field != "genre" {
			t.Errorf("expected genre validation error, got %v", err)
		}
	})
}

func TestTitleCreate_FutureYearRejected(t *testing.T) {
	_, service := newTitleFixture(t)

	_, err := service.Create(context.Background(), &TitleCreateRequest{
		Name: "Soon", Year: time.Now().Year() + 1, Genre: []string{"drama"}, Category: "films",
	})
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
}

func TestTitleUpdate_FutureYearAllowed(t *testing.T) {
	_, service := newTitleFixture(t)
	ctx := context.Background()

	title, err := service.Create(ctx, &TitleCreateRequest{
		Name: "Old", Year: 1990, Genre: []string{"drama"}, Category: "films",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The non-future rule binds at creation only.
	futureYear := time.Now().Year() + 5
	updated, err := service.Update(ctx, title.ID, &TitleUpdateRequest{Year: &futureYear})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Year != futureYear {
		t.Errorf("year not applied: %d", updated.Year)
	}
}

func TestTitleUpdate_ReplacesGenres(t *testing.T) {
	_, service := newTitleFixture(t)
	ctx := context.Background()

	title, err := service.Create(ctx, &TitleCreateRequest{
		Name: "Some Film", Year: 2001, Genre: []string{"drama", "comedy"}, Category: "films",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := service.Update(ctx, title.ID, &TitleUpdateRequest{Genre: []string{"comedy"}})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(updated.Genres) != 1 || updated.Genres[0].Slug != "comedy" {
		t.Errorf("genres not replaced: %+v", updated.Genres)
	}
}

func TestTitleRating_DerivedFromReviews(t *testing.T) {
	repo, service := newTitleFixture(t)
	ctx := context.Background()

	title, err := service.Create(ctx, &TitleCreateRequest{
		Name: "Rated Film", Year: 2001, Genre: []string{"drama"}, Category: "films",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i, score := range []int{2, 4, 6} {
		review := &models.Review{TitleID: title.ID, AuthorID: uint(i + 1), Text: "x", Score: score}
		if err := repo.reviews.Create(ctx, review); err != nil {
			t.Fatalf("seed review failed: %v", err)
		}
	}

	rated, err := service.Get(ctx, title.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rated.Rating == nil || *rated.Rating != 4.0 {
		t.Errorf("scores 2, 4, 6 must average to exactly 4.0, got %v", rated.Rating)
	}

	// A title with no reviews reports nil, never zero.
	bare, err := service.Create(ctx, &TitleCreateRequest{
		Name: "Unrated Film", Year: 2002, Genre: []string{"comedy"}, Category: "films",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fetched, err := service.Get(ctx, bare.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Rating != nil {
		t.Errorf("a title without reviews must report a nil rating, got %v", *fetched.Rating)
	}

	// Removing every review takes the rating back to nil.
	for _, review := range append([]*models.Review(nil), repo.reviews.reviews...) {
		if err := repo.reviews.Delete(ctx, review.TitleID, review.ID); err != nil {
			t.Fatalf("delete review failed: %v", err)
		}
	}
	cleared, err := service.Get(ctx, title.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cleared.Rating != nil {
		t.Errorf("rating must reset to nil once reviews are gone, got %v", *cleared.Rating)
	}
}

func TestTitleDelete_NotFound(t *testing.T) {
	_, service := newTitleFixture(t)

	if err := service.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
