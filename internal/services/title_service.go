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

type titleService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTitleService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) TitleService {
	return &titleService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *titleService) Create(ctx context.Context, req *TitleCreateRequest) (*models.Title, error) {
	if errs := s.validator.GetBusinessValidator().ValidateTitleCreate(req); len(errs) > 0 {
		return nil, errs
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Category:    category,
		Genres:      genres,
	}

	if err := s.repo.Title().Create(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to create title: %w", err)
	}

	s.logger.Info("Title created", "title_id", title.ID, "name", title.Name)
	return title, nil
}

func (s *titleService) Get(ctx context.Context, id uint) (*models.Title, error) {
	title, err := s.repo.Title().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("title lookup failed: %w", err)
	}
	return title, nil
}

func (s *titleService) List(ctx context.Context, filters repositories.TitleFilters) (*TitleListResponse, error) {
	titles, total, err := s.repo.Title().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	return &TitleListResponse{
		Titles: titles,
		Total:  total,
		Page:   pageNumber(filters.Offset, filters.Limit),
		Size:   filters.Limit,
	}, nil
}

func (s *titleService) Update(ctx context.Context, id uint, req *TitleUpdateRequest) (*models.Title, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	var genres []models.Genre
	if req.Genre != nil {
		genres, err = s.resolveGenres(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
	}

	// Field changes and genre replacement land in one transaction.
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Title().Update(ctx, title); err != nil {
			return fmt.Errorf("failed to update title: %w", err)
		}
		if req.Genre != nil {
			if err := r.Title().SetGenres(ctx, title, genres); err != nil {
				return fmt.Errorf("failed to update title genres: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return title, nil
}

func (s *titleService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Title().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete title: %w", err)
	}

	s.logger.Info("Title deleted", "title_id", id)
	return nil
}

// resolveCategory maps a category slug to its row; an unknown slug is a
// validation failure, not a 404, since it arrives in the request body.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.repo.Category().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validator.ValidationErrors{{
				Field:   "category",
				Message: "unknown category slug",
				Value:   slug,
				Rule:    "exists",
			}}
		}
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.repo.Genre().GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("genre lookup failed: %w", err)
	}

	if len(genres) != len(uniqueStrings(slugs)) {
		known := make(map[string]struct{}, len(genres))
		for _, genre := range genres {
			known[genre.Slug] = struct{}{}
		}
		var errs validator.ValidationErrors
		for _, slug := range slugs {
			if _, ok := known[slug]; !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "genre",
					Message: "unknown genre slug",
					Value:   slug,
					Rule:    "exists",
				})
			}
		}
		return nil, errs
	}

	return genres, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
