package services

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type SignupRequest = validator.SignupRequest
type TokenRequest = validator.TokenRequest
type UserCreateRequest = validator.UserCreateRequest
type UserUpdateRequest = validator.UserUpdateRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type CategoryRequest = validator.CategoryRequest
type GenreRequest = validator.GenreRequest
type TitleCreateRequest = validator.TitleCreateRequest
type TitleUpdateRequest = validator.TitleUpdateRequest
type ReviewRequest = validator.ReviewRequest
type CommentRequest = validator.CommentRequest

type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type CategoryListResponse struct {
	Categories []*models.Category `json:"categories"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
}

type GenreListResponse struct {
	Genres []*models.Genre `json:"genres"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

type TitleListResponse struct {
	Titles []*models.Title `json:"titles"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

// ReviewResponse flattens the author to a username for serialization.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type ReviewListResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

type CommentListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
}

// ===== SERVICE INTERFACES =====

// AuthService handles self-registration and token issuance.
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error)
	IssueToken(ctx context.Context, req *TokenRequest) (*TokenResponse, error)
}

// UserService handles admin user management and self-profile operations.
type UserService interface {
	Create(ctx context.Context, req *UserCreateRequest) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	Update(ctx context.Context, username string, req *UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error

	GetProfile(ctx context.Context, actor *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, req *ProfileUpdateRequest) (*models.User, error)
}

// TaxonomyService manages categories and genres.
type TaxonomyService interface {
	CreateCategory(ctx context.Context, req *CategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, filters repositories.TaxonomyFilters) (*CategoryListResponse, error)
	DeleteCategory(ctx context.Context, slug string) error

	CreateGenre(ctx context.Context, req *GenreRequest) (*models.Genre, error)
	ListGenres(ctx context.Context, filters repositories.TaxonomyFilters) (*GenreListResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

// TitleService manages the catalog of reviewable titles.
type TitleService interface {
	Create(ctx context.Context, req *TitleCreateRequest) (*models.Title, error)
	Get(ctx context.Context, id uint) (*models.Title, error)
	List(ctx context.Context, filters repositories.TitleFilters) (*TitleListResponse, error)
	Update(ctx context.Context, id uint, req *TitleUpdateRequest) (*models.Title, error)
	Delete(ctx context.Context, id uint) error
}

// ReviewService manages reviews under a title.
type ReviewService interface {
	Create(ctx context.Context, titleID uint, req *ReviewRequest, actor *models.User) (*ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID uint) (*ReviewResponse, error)
	List(ctx context.Context, titleID uint, filters repositories.PageFilters) (*ReviewListResponse, error)
	Update(ctx context.Context, titleID, reviewID uint, req *ReviewRequest, actor *models.User) (*ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID uint, actor *models.User) error
}

// CommentService manages comments under a review.
type CommentService interface {
	Create(ctx context.Context, titleID, reviewID uint, req *CommentRequest, actor *models.User) (*CommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID uint) (*CommentResponse, error)
	List(ctx context.Context, titleID, reviewID uint, filters repositories.PageFilters) (*CommentListResponse, error)
	Update(ctx context.Context, titleID, reviewID, commentID uint, req *CommentRequest, actor *models.User) (*CommentResponse, error)
	Delete(ctx context.Context, titleID, reviewID, commentID uint, actor *models.User) error
}

// ExportService produces admin catalog exports.
type ExportService interface {
	ExportTitles(ctx context.Context) (*excelize.File, error)
}

// NotificationService dispatches user-facing notifications to the bus.
type NotificationService interface {
	SendConfirmationCode(ctx context.Context, user *models.User, code string) error
	NotifyUserActivated(ctx context.Context, user *models.User) error
	Close() error
}
