package services

import (
	"context"
	"errors"
	"testing"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/validator"
)

type reviewFixture struct {
	repo    *fakeRepository
	service ReviewService

	title     *models.Title
	author    *models.User
	stranger  *models.User
	moderator *models.User
	admin     *models.User
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	repo := newFakeRepository()
	ctx := context.Background()

	title := &models.Title{Name: "Some Film", Year: 2001}
	if err := repo.titles.Create(ctx, title); err != nil {
		t.Fatalf("seed title failed: %v", err)
	}

	f := &reviewFixture{
		repo:      repo,
		service:   NewReviewService(repo, testLogger(), validator.New()),
		title:     title,
		author:    &models.User{Username: "author", Email: "author@example.com", Role: models.RoleUser},
		stranger:  &models.User{Username: "stranger", Email: "stranger@example.com", Role: models.RoleUser},
		moderator: &models.User{Username: "mod", Email: "mod@example.com", Role: models.RoleModerator},
		admin:     &models.User{Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin},
	}
	for _, user := range []*models.User{f.author, f.stranger, f.moderator, f.admin} {
		if err := repo.users.Create(ctx, user); err != nil {
			t.Fatalf("seed user failed: %v", err)
		}
	}

	return f
}

func (f *reviewFixture) post(t *testing.T) *ReviewResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), f.title.ID, &ReviewRequest{Text: "solid", Score: 7}, f.author)
	if err != nil {
		t.Fatalf("seed review failed: %v", err)
	}
	return resp
}

func TestReviewCreate_RequiresAuthentication(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.Create(context.Background(), f.title.ID, &ReviewRequest{Text: "x", Score: 5}, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestReviewCreate_OnePerAuthorPerTitle(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	f.post(t)

	_, err := f.service.Create(ctx, f.title.ID, &ReviewRequest{Text: "again", Score: 9}, f.author)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("second review must conflict, got %v", err)
	}

	// A different author reviews the same title freely.
	if _, err := f.service.Create(ctx, f.title.ID, &ReviewRequest{Text: "meh", Score: 4}, f.stranger); err != nil {
		t.Errorf("second author's review failed: %v", err)
	}
}

func TestReviewCreate_UnknownTitle(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.Create(context.Background(), 999, &ReviewRequest{Text: "x", Score: 5}, f.author)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewUpdate_Permissions(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	review := f.post(t)

	tests := []struct {
		name    string
		actor   *models.User
		allowed bool
	}{
		{"author", f.author, true},
		{"moderator", f.moderator, true},
		{"admin", f.admin, true},
		{"stranger", f.stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Update(ctx, f.title.ID, review.ID, &ReviewRequest{Text: "edited", Score: 3}, tt.actor)
			if tt.allowed && err != nil {
				t.Errorf("update should be allowed: %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.service.Update(ctx, f.title.ID, review.ID, &ReviewRequest{Text: "edited", Score: 3}, nil)
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestReviewDelete_ModeratorOverridesOwnership(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	review := f.post(t)

	if err := f.service.Delete(ctx, f.title.ID, review.ID, f.stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger delete must be forbidden, got %v", err)
	}

	if err := f.service.Delete(ctx, f.title.ID, review.ID, f.moderator); err != nil {
		t.Errorf("moderator delete failed: %v", err)
	}

	if _, err := f.service.Get(ctx, f.title.ID, review.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("review should be gone, got %v", err)
	}
}

func TestReviewGet_WrongTitleScope(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	review := f.post(t)

	other := &models.Title{Name: "Other", Year: 1999}
	if err := f.repo.titles.Create(ctx, other); err != nil {
		t.Fatalf("seed title failed: %v", err)
	}

	if _, err := f.service.Get(ctx, other.ID, review.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("review must not resolve under a different title, got %v", err)
	}
}

func TestCommentLifecycle(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	review := f.post(t)

	comments := NewCommentService(f.repo, testLogger(), validator.New())

	created, err := comments.Create(ctx, f.title.ID, review.ID, &CommentRequest{Text: "agreed"}, f.stranger)
	if err != nil {
		t.Fatalf("comment create failed: %v", err)
	}
	if created.Author != "stranger" {
		t.Errorf("unexpected comment author %q", created.Author)
	}

	// Author of the comment edits it; the review author cannot.
	if _, err := comments.Update(ctx, f.title.ID, review.ID, created.ID, &CommentRequest{Text: "edited"}, f.author); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-author edit must be forbidden, got %v", err)
	}
	if _, err := comments.Update(ctx, f.title.ID, review.ID, created.ID, &CommentRequest{Text: "edited"}, f.stranger); err != nil {
		t.Errorf("author edit failed: %v", err)
	}

	list, err := comments.List(ctx, f.title.ID, review.ID, repositories.PageFilters{Limit: 10})
	if err != nil {
		t.Fatalf("comment list failed: %v", err)
	}
	if list.Total != 1 || list.Comments[0].Text != "edited" {
		t.Errorf("unexpected list: %+v", list)
	}

	// Comment routes are scoped: a mismatched title yields not-found.
	if _, err := comments.Get(ctx, 999, review.ID, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong title, got %v", err)
	}

	if err := comments.Delete(ctx, f.title.ID, review.ID, created.ID, f.admin); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}
}
