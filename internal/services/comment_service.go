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

type commentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCommentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CommentService {
	return &commentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID uint, req *CommentRequest, actor *models.User) (*CommentResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := s.ensureReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor,
		Text:     req.Text,
	}

	if err := s.repo.Comment().Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("Comment created", "review_id", reviewID, "comment_id", comment.ID, "author", actor.Username)
	return commentResponse(comment), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*CommentResponse, error) {
	comment, err := s.getComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return commentResponse(comment), nil
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uint, filters repositories.PageFilters) (*CommentListResponse, error) {
	if err := s.ensureReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.repo.Comment().ListByReview(ctx, reviewID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]*CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = commentResponse(comment)
	}

	return &CommentListResponse{
		Comments: responses,
		Total:    total,
		Page:     pageNumber(filters.Offset, filters.Limit),
		Size:     filters.Limit,
	}, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID uint, req *CommentRequest, actor *models.User) (*CommentResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if actor == nil {
		return nil, ErrUnauthorized
	}

	comment, err := s.getComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !permissions.ObjectCheck(http.MethodPatch, actor, comment.AuthorID) {
		return nil, NewPermissionError("comment", "update", "not author, moderator or admin")
	}

	comment.Text = req.Text

	if err := s.repo.Comment().Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return commentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID uint, actor *models.User) error {
	if actor == nil {
		return ErrUnauthorized
	}

	comment, err := s.getComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !permissions.ObjectCheck(http.MethodDelete, actor, comment.AuthorID) {
		return NewPermissionError("comment", "delete", "not author, moderator or admin")
	}

	if err := s.repo.Comment().Delete(ctx, reviewID, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment deleted", "review_id", reviewID, "comment_id", commentID)
	return nil
}

// ensureReviewExists verifies the (title, review) pair so a comment route
// with a mismatched title still yields a 404.
func (s *commentService) ensureReviewExists(ctx context.Context, titleID, reviewID uint) error {
	_, err := s.repo.Review().GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("review lookup failed: %w", err)
	}
	return nil
}

func (s *commentService) getComment(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	if err := s.ensureReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment().GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("comment lookup failed: %w", err)
	}
	return comment, nil
}

func commentResponse(comment *models.Comment) *CommentResponse {
	author := ""
	if comment.Author != nil {
		author = comment.Author.Username
	}
	return &CommentResponse{
		ID:      comment.ID,
		Author:  author,
		Text:    comment.Text,
		PubDate: comment.PubDate,
	}
}
