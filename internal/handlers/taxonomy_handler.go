package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/services"
	"github.com/reviewhub/review-service/internal/utils"
)

// TaxonomyHandler serves the category and genre endpoints.
type TaxonomyHandler struct {
	BaseHandler
	service services.TaxonomyService
}

func NewTaxonomyHandler(service services.TaxonomyService, logger utils.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== CATEGORIES =====

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	resp, err := h.service.ListCategories(c.Request.Context(), h.parseTaxonomyFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	h.LogRequest(c, "Creating category")

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== GENRES =====

func (h *TaxonomyHandler) ListGenres(c *gin.Context) {
	resp, err := h.service.ListGenres(c.Request.Context(), h.parseTaxonomyFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) CreateGenre(c *gin.Context) {
	h.LogRequest(c, "Creating genre")

	var req services.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	genre, err := h.service.CreateGenre(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

func (h *TaxonomyHandler) DeleteGenre(c *gin.Context) {
	if err := h.service.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaxonomyHandler) parseTaxonomyFilters(c *gin.Context) repositories.TaxonomyFilters {
	page := parsePageFilters(c)
	return repositories.TaxonomyFilters{
		Query:  strings.TrimSpace(c.Query("search")),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
