package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/validator"
)

type taxonomyService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTaxonomyService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) TaxonomyService {
	return &taxonomyService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== CATEGORIES =====

func (s *taxonomyService) CreateCategory(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Category().Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("slug", "category slug already exists")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category created", "slug", category.Slug)
	return category, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context, filters repositories.TaxonomyFilters) (*CategoryListResponse, error) {
	categories, total, err := s.repo.Category().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &CategoryListResponse{
		Categories: categories,
		Total:      total,
		Page:       pageNumber(filters.Offset, filters.Limit),
		Size:       filters.Limit,
	}, nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, slug string) error {
	if err := s.repo.Category().Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("Category deleted", "slug", slug)
	return nil
}

// ===== GENRES =====

func (s *taxonomyService) CreateGenre(ctx context.Context, req *GenreRequest) (*models.Genre, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Genre().Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("slug", "genre slug already exists")
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	s.logger.Info("Genre created", "slug", genre.Slug)
	return genre, nil
}

func (s *taxonomyService) ListGenres(ctx context.Context, filters repositories.TaxonomyFilters) (*GenreListResponse, error) {
	genres, total, err := s.repo.Genre().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	return &GenreListResponse{
		Genres: genres,
		Total:  total,
		Page:   pageNumber(filters.Offset, filters.Limit),
		Size:   filters.Limit,
	}, nil
}

func (s *taxonomyService) DeleteGenre(ctx context.Context, slug string) error {
	if err := s.repo.Genre().Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	s.logger.Info("Genre deleted", "slug", slug)
	return nil
}
