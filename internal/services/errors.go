package services

import (
	"errors"
	"fmt"

	"github.com/reviewhub/review-service/internal/validator"
)

// ValidationErrors is re-exported so handlers translate validation failures
// without importing the validator package directly.
type ValidationErrors = validator.ValidationErrors

// Sentinel errors shared across services. Handlers translate these to HTTP
// status codes; services never reference HTTP directly.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("operation not permitted")
	ErrUnauthorized       = errors.New("authentication required")
	ErrConflict           = errors.New("resource already exists")
	ErrServiceUnavailable = errors.New("dependent service unavailable")

	// ErrInvalidConfirmationCode covers both a bad code and an unknown
	// username at token issuance, so the endpoint cannot be used to probe
	// which usernames exist.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")

	ErrReviewExists = fmt.Errorf("%w: review for this title already posted", ErrConflict)
)

// ConflictError reports which field collided with an existing resource.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a field-level conflict error.
func NewConflictError(field, message string) *ConflictError {
	return &ConflictError{Field: field, Message: message}
}

// PermissionError carries the denied action for logging; it unwraps to
// ErrForbidden for handler translation.
type PermissionError struct {
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s %s (%s)", e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// NewPermissionError creates a permission error.
func NewPermissionError(resource, action, reason string) *PermissionError {
	return &PermissionError{Resource: resource, Action: action, Reason: reason}
}
