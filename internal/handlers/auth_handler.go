package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/review-service/internal/services"
	"github.com/reviewhub/review-service/internal/utils"
)

// AuthHandler serves self-registration and token issuance.
type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Signup registers a user (or re-issues a code for an existing pair) and
// dispatches a confirmation code.
func (h *AuthHandler) Signup(c *gin.Context) {
	h.LogRequest(c, "Processing signup")

	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// IssueToken trades a confirmation code for an access token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	h.LogRequest(c, "Processing token request")

	var req services.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.IssueToken(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
