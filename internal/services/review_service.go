package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/permissions"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/validator"
)

type reviewService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewReviewService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ReviewService {
	return &reviewService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create posts a review for a title. One review per (title, author); a
// second attempt is a conflict regardless of content.
func (s *reviewService) Create(ctx context.Context, titleID uint, req *ReviewRequest, actor *models.User) (*ReviewResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	if errs := s.validator.GetBusinessValidator().ValidateReview(req); len(errs) > 0 {
		return nil, errs
	}

	if err := s.ensureTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	// Cheap pre-check; the unique (title_id, author_id) index backstops the
	// race where two requests pass it simultaneously.
	if _, err := s.repo.Review().GetByTitleAndAuthor(ctx, titleID, actor.ID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("review lookup failed: %w", err)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review().Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info("Review created", "title_id", titleID, "review_id", review.ID, "author", actor.Username)
	return reviewResponse(review), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uint) (*ReviewResponse, error) {
	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return reviewResponse(review), nil
}

func (s *reviewService) List(ctx context.Context, titleID uint, filters repositories.PageFilters) (*ReviewListResponse, error) {
	if err := s.ensureTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.repo.Review().ListByTitle(ctx, titleID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	responses := make([]*ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = reviewResponse(review)
	}

	return &ReviewListResponse{
		Reviews: responses,
		Total:   total,
		Page:    pageNumber(filters.Offset, filters.Limit),
		Size:    filters.Limit,
	}, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID uint, req *ReviewRequest, actor *models.User) (*ReviewResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateReview(req); len(errs) > 0 {
		return nil, errs
	}

	if actor == nil {
		return nil, ErrUnauthorized
	}

	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permissions.ObjectCheck(http.MethodPatch, actor, review.AuthorID) {
		return nil, NewPermissionError("review", "update", "not author, moderator or admin")
	}

	review.Text = req.Text
	review.Score = req.Score

	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return reviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID uint, actor *models.User) error {
	if actor == nil {
		return ErrUnauthorized
	}

	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !permissions.ObjectCheck(http.MethodDelete, actor, review.AuthorID) {
		return NewPermissionError("review", "delete", "not author, moderator or admin")
	}

	if err := s.repo.Review().Delete(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info("Review deleted", "title_id", titleID, "review_id", reviewID)
	return nil
}

func (s *reviewService) getReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	review, err := s.repo.Review().GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("review lookup failed: %w", err)
	}
	return review, nil
}

func (s *reviewService) ensureTitleExists(ctx context.Context, titleID uint) error {
	_, err := s.repo.Title().GetByID(ctx, titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("title lookup failed: %w", err)
	}
	return nil
}

func reviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      review.ID,
		Author:  review.AuthorUsername(),
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}
