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

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== ADMIN OPERATIONS =====

func (s *userService) Create(ctx context.Context, req *UserCreateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.UserRole(req.Role)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyUserConflict(ctx, req.Username, req.Email, 0)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "username", user.Username, "role", user.Role)
	return user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Total: total,
		Page:  pageNumber(filters.Offset, filters.Limit),
		Size:  filters.Limit,
	}, nil
}

func (s *userService) Update(ctx context.Context, username string, req *UserUpdateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	applyUserFields(user, req.Email, req.FirstName, req.LastName, req.Bio)
	if req.Role != nil {
		user.Role = models.UserRole(*req.Role)
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyUserConflict(ctx, user.Username, user.Email, user.ID)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.repo.User().Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted", "username", username)
	return nil
}

// ===== SELF-PROFILE OPERATIONS =====

func (s *userService) GetProfile(ctx context.Context, actor *models.User) (*models.User, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	return actor, nil
}

// UpdateProfile applies profile changes for the calling user. The request
// type carries neither a role nor a username, so neither can be smuggled in.
func (s *userService) UpdateProfile(ctx context.Context, actor *models.User, req *ProfileUpdateRequest) (*models.User, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	applyUserFields(actor, req.Email, req.FirstName, req.LastName, req.Bio)

	if err := s.repo.User().Update(ctx, actor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyUserConflict(ctx, actor.Username, actor.Email, actor.ID)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return actor, nil
}

// classifyUserConflict decides which unique field caused a duplicate-key
// failure so the response can name it. selfID excludes the caller's own row
// on update paths.
func (s *userService) classifyUserConflict(ctx context.Context, username, email string, selfID uint) error {
	if other, err := s.repo.User().GetByUsername(ctx, username); err == nil && other.ID != selfID {
		return NewConflictError("username", "username is already taken")
	}
	if other, err := s.repo.User().GetByEmail(ctx, email); err == nil && other.ID != selfID {
		return NewConflictError("email", "email is already registered")
	}
	return ErrConflict
}

// applyUserFields copies the optional update fields onto the row. Username is
// deliberately absent: it is fixed at creation.
func applyUserFields(user *models.User, email, firstName, lastName, bio *string) {
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}

func pageNumber(offset, limit int) int {
	if limit <= 0 {
		limit = 10
	}
	return offset/limit + 1
}
