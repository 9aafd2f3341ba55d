package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/services"
	"github.com/reviewhub/review-service/internal/utils"
)

// TitleHandler serves the catalog endpoints.
type TitleHandler struct {
	BaseHandler
	service services.TitleService
	export  services.ExportService
}

func NewTitleHandler(service services.TitleService, export services.ExportService, logger utils.Logger) *TitleHandler {
	return &TitleHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// ListTitles lists titles with catalog filters
func (h *TitleHandler) ListTitles(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), h.parseTitleFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateTitle adds a title to the catalog
func (h *TitleHandler) CreateTitle(c *gin.Context) {
	h.LogRequest(c, "Creating title")

	var req services.TitleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	title, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, title)
}

// GetTitle fetches a single title with its derived rating
func (h *TitleHandler) GetTitle(c *gin.Context) {
	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return
	}

	title, err := h.service.Get(c.Request.Context(), titleID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// UpdateTitle partially updates a title
func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return
	}

	var req services.TitleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	title, err := h.service.Update(c.Request.Context(), titleID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// DeleteTitle removes a title and its reviews
func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), titleID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportTitles streams the catalog as an xlsx workbook
func (h *TitleHandler) ExportTitles(c *gin.Context) {
	h.LogRequest(c, "Exporting catalog")

	file, err := h.export.ExportTitles(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to export catalog")
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("titles-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export")
	}
}

func (h *TitleHandler) parseTitleFilters(c *gin.Context) repositories.TitleFilters {
	page := parsePageFilters(c)

	filters := repositories.TitleFilters{
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if genre := c.Query("genre"); genre != "" {
		filters.Genre = &genre
	}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		filters.Name = &name
	}
	if yearStr := c.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filters.Year = &year
		}
	}

	return filters
}
