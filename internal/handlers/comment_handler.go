package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/review-service/internal/services"
	"github.com/reviewhub/review-service/internal/utils"
)

// CommentHandler serves the comment endpoints nested under a review.
type CommentHandler struct {
	BaseHandler
	service services.CommentService
}

func NewCommentHandler(service services.CommentService, logger utils.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListComments lists comments under a review
func (h *CommentHandler) ListComments(c *gin.Context) {
	titleID, reviewID, ok := reviewScope(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), titleID, reviewID, parsePageFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateComment posts a comment under a review
func (h *CommentHandler) CreateComment(c *gin.Context) {
	h.LogRequest(c, "Creating comment")

	titleID, reviewID, ok := reviewScope(c)
	if !ok {
		return
	}

	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	comment, err := h.service.Create(c.Request.Context(), titleID, reviewID, &req, getCurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetComment fetches a single comment scoped to its review and title
func (h *CommentHandler) GetComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentScope(c)
	if !ok {
		return
	}

	comment, err := h.service.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// UpdateComment edits a comment; authors, moderators and admins only
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentScope(c)
	if !ok {
		return
	}

	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	comment, err := h.service.Update(c.Request.Context(), titleID, reviewID, commentID, &req, getCurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment; authors, moderators and admins only
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentScope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), titleID, reviewID, commentID, getCurrentUser(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func commentScope(c *gin.Context) (titleID, reviewID, commentID uint, ok bool) {
	if titleID, reviewID, ok = reviewScope(c); !ok {
		return 0, 0, 0, false
	}
	if commentID, ok = parseUintParam(c, "comment_id"); !ok {
		return 0, 0, 0, false
	}
	return titleID, reviewID, commentID, true
}
