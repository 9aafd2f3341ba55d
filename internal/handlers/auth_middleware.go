package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/auth"
	"github.com/reviewhub/review-service/internal/permissions"
	"github.com/reviewhub/review-service/internal/repositories"
)

// TokenAuthMiddleware authenticates requests with the service's own bearer
// tokens. The user row is reloaded on every request so role changes and
// deletions take effect immediately; only identity lives in the token.
type TokenAuthMiddleware struct {
	tokens   *auth.TokenIssuer
	userRepo repositories.UserRepository
}

func NewTokenAuthMiddleware(tokens *auth.TokenIssuer, userRepo repositories.UserRepository) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Authenticate resolves the bearer token when present. Anonymous requests
// pass through with no user set; a malformed or stale token is rejected even
// on read-only routes.
func (m *TokenAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "token expired")
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c, "user no longer exists")
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous mutation attempts before any store
// access.
func (m *TokenAuthMiddleware) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permissions.CollectionCheck(c.Request.Method, getCurrentUser(c)) {
			abortUnauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin permits admins and superusers only.
func (m *TokenAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !permissions.AdminOnly(user) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// AdminOrReadOnly permits safe methods for anyone and mutations for admins.
func (m *TokenAuthMiddleware) AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if permissions.AdminOrReadOnly(c.Request.Method, user) {
			c.Next()
			return
		}
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		abortForbidden(c)
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
	c.Abort()
}

func abortForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access denied"})
	c.Abort()
}
