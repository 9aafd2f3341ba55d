package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/reviewhub/review-service/internal/auth"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/services"
	"github.com/reviewhub/review-service/internal/utils"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	userHandler     *UserHandler
	taxonomyHandler *TaxonomyHandler
	titleHandler    *TitleHandler
	reviewHandler   *ReviewHandler
	commentHandler  *CommentHandler
	authMiddleware  *TokenAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenIssuer,
	logger utils.Logger,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:     NewUserHandler(serviceManager.User(), logger),
		taxonomyHandler: NewTaxonomyHandler(serviceManager.Taxonomy(), logger),
		titleHandler:    NewTitleHandler(serviceManager.Title(), serviceManager.Export(), logger),
		reviewHandler:   NewReviewHandler(serviceManager.Review(), logger),
		commentHandler:  NewCommentHandler(serviceManager.Comment(), logger),
		authMiddleware:  NewTokenAuthMiddleware(tokens, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes; token resolution applies to everything, individual
	// groups decide how much privilege they need
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.Authenticate())
	{
		// Auth routes - open to anonymous callers
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", hm.authHandler.Signup)
			authRoutes.POST("/token", hm.authHandler.IssueToken)
		}

		// User routes - admin management plus the caller's own profile.
		// The /me routes are registered before /:username so gin does not
		// route "me" into the parameterized handlers.
		users := v1.Group("/users")
		{
			users.GET("/me", hm.authMiddleware.RequireAuthenticated(), hm.userHandler.GetProfile)
			users.PATCH("/me", hm.authMiddleware.RequireAuthenticated(), hm.userHandler.UpdateProfile)

			admin := users.Group("", hm.authMiddleware.RequireAdmin())
			{
				admin.GET("", hm.userHandler.ListUsers)
				admin.POST("", hm.userHandler.CreateUser)
				admin.GET("/:username", hm.userHandler.GetUser)
				admin.PATCH("/:username", hm.userHandler.UpdateUser)
				admin.DELETE("/:username", hm.userHandler.DeleteUser)
			}
		}

		// Taxonomy routes - anyone reads, admins write
		categories := v1.Group("/categories", hm.authMiddleware.AdminOrReadOnly())
		{
			categories.GET("", hm.taxonomyHandler.ListCategories)
			categories.POST("", hm.taxonomyHandler.CreateCategory)
			categories.DELETE("/:slug", hm.taxonomyHandler.DeleteCategory)
		}

		genres := v1.Group("/genres", hm.authMiddleware.AdminOrReadOnly())
		{
			genres.GET("", hm.taxonomyHandler.ListGenres)
			genres.POST("", hm.taxonomyHandler.CreateGenre)
			genres.DELETE("/:slug", hm.taxonomyHandler.DeleteGenre)
		}

		// Title routes. The export route is registered before the
		// parameterized routes so "export" is never parsed as a title id.
		titles := v1.Group("/titles")
		{
			titles.GET("/export", hm.authMiddleware.RequireAdmin(), hm.titleHandler.ExportTitles)

			catalog := titles.Group("", hm.authMiddleware.AdminOrReadOnly())
			{
				catalog.GET("", hm.titleHandler.ListTitles)
				catalog.POST("", hm.titleHandler.CreateTitle)
				catalog.GET("/:title_id", hm.titleHandler.GetTitle)
				catalog.PATCH("/:title_id", hm.titleHandler.UpdateTitle)
				catalog.DELETE("/:title_id", hm.titleHandler.DeleteTitle)
			}

			// Review routes - anyone reads, any authenticated user posts,
			// object-level rules for edits live in the service layer
			reviews := titles.Group("/:title_id/reviews")
			{
				reviews.GET("", hm.reviewHandler.ListReviews)
				reviews.POST("", hm.authMiddleware.RequireAuthenticated(), hm.reviewHandler.CreateReview)
				reviews.GET("/:review_id", hm.reviewHandler.GetReview)
				reviews.PATCH("/:review_id", hm.authMiddleware.RequireAuthenticated(), hm.reviewHandler.UpdateReview)
				reviews.DELETE("/:review_id", hm.authMiddleware.RequireAuthenticated(), hm.reviewHandler.DeleteReview)

				// Comment routes
				comments := reviews.Group("/:review_id/comments")
				{
					comments.GET("", hm.commentHandler.ListComments)
					comments.POST("", hm.authMiddleware.RequireAuthenticated(), hm.commentHandler.CreateComment)
					comments.GET("/:comment_id", hm.commentHandler.GetComment)
					comments.PATCH("/:comment_id", hm.authMiddleware.RequireAuthenticated(), hm.commentHandler.UpdateComment)
					comments.DELETE("/:comment_id", hm.authMiddleware.RequireAuthenticated(), hm.commentHandler.DeleteComment)
				}
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "review-service",
		})
	})
}
