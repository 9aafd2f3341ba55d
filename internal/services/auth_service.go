package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/auth"
	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	codes     *auth.CodeIssuer
	tokens    *auth.TokenIssuer
	notifier  NotificationService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, codes *auth.CodeIssuer, tokens *auth.TokenIssuer, notifier NotificationService, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		codes:     codes,
		tokens:    tokens,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

// Signup registers a user, or re-issues a confirmation code when the exact
// (username, email) pair already exists. A partial match is a conflict.
func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	s.logger.Info("Signup requested", "username", req.Username)

	if errs := s.validator.GetBusinessValidator().ValidateSignup(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.findOrCreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	code := s.codes.Issue(user)
	if err := s.notifier.SendConfirmationCode(ctx, user, code); err != nil {
		s.logger.Error("Failed to dispatch confirmation code", "error", err, "username", user.Username)
		return nil, fmt.Errorf("%w: confirmation code dispatch failed", ErrServiceUnavailable)
	}

	return &SignupResponse{Username: user.Username, Email: user.Email}, nil
}

func (s *authService) findOrCreateUser(ctx context.Context, req *SignupRequest) (*models.User, error) {
	byUsername, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if byUsername != nil {
		if byUsername.Email != req.Email {
			return nil, NewConflictError("username", "username is already taken")
		}
		return byUsername, nil
	}

	byEmail, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if byEmail != nil {
		// Username is free but the email belongs to someone else.
		return nil, NewConflictError("email", "email is already registered")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent signup race; the winner's row decides.
			return s.resolveSignupRace(ctx, req)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *authService) resolveSignupRace(ctx context.Context, req *SignupRequest) (*models.User, error) {
	existing, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewConflictError("email", "email is already registered")
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if existing.Email != req.Email {
		return nil, NewConflictError("username", "username is already taken")
	}
	return existing, nil
}

// IssueToken exchanges a valid confirmation code for an access token and
// activates the account on first use. Unknown usernames and bad codes are
// indistinguishable to the caller.
func (s *authService) IssueToken(ctx context.Context, req *TokenRequest) (*TokenResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidConfirmationCode
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if !s.codes.Validate(user, req.ConfirmationCode) {
		return nil, ErrInvalidConfirmationCode
	}

	if !user.IsActive {
		user.IsActive = true
		if err := s.repo.User().Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to activate user: %w", err)
		}
		// Activation notice is best effort; token issuance already succeeded
		// from the caller's point of view.
		if err := s.notifier.NotifyUserActivated(ctx, user); err != nil {
			s.logger.Error("Failed to publish activation event", "error", err, "username", user.Username)
		}
	}

	token, err := s.tokens.Mint(user)
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	s.logger.Info("Token issued", "username", user.Username)
	return &TokenResponse{Token: token}, nil
}
