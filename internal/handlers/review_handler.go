package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/review-service/internal/services"
	"github.com/reviewhub/review-service/internal/utils"
)

// ReviewHandler serves the review endpoints nested under a title.
type ReviewHandler struct {
	BaseHandler
	service services.ReviewService
}

func NewReviewHandler(service services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListReviews lists reviews for a title
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), titleID, parsePageFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateReview posts the caller's review for a title
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	h.LogRequest(c, "Creating review")

	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	review, err := h.service.Create(c.Request.Context(), titleID, &req, getCurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReview fetches a single review scoped to its title
func (h *ReviewHandler) GetReview(c *gin.Context) {
	titleID, reviewID, ok := reviewScope(c)
	if !ok {
		return
	}

	review, err := h.service.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// UpdateReview edits a review; authors, moderators and admins only
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	titleID, reviewID, ok := reviewScope(c)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	review, err := h.service.Update(c.Request.Context(), titleID, reviewID, &req, getCurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review; authors, moderators and admins only
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	titleID, reviewID, ok := reviewScope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), titleID, reviewID, getCurrentUser(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func reviewScope(c *gin.Context) (titleID, reviewID uint, ok bool) {
	if titleID, ok = parseUintParam(c, "title_id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = parseUintParam(c, "review_id"); !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
