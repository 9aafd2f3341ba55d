package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/reviewhub/review-service/internal/models"
)

// Usernames that collide with the /users/me/ route. The check is exact, not
// case-insensitive: only these variants are rejected.
var reservedUsernames = map[string]struct{}{
	"me": {},
	"ME": {},
	"mE": {},
	"Me": {},
}

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateSignup validates self-registration business rules
func (bv *BusinessValidator) ValidateSignup(req *SignupRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateTitleCreate validates title creation business rules
func (bv *BusinessValidator) ValidateTitleCreate(req *TitleCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	// The future-year check applies to creation only; an existing title may
	// keep a year that has since become invalid.
	if req.Year > time.Now().Year() {
		errors = append(errors, ValidationError{
			Field:   "year",
			Message: "cannot be in the future",
			Value:   req.Year,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateReview validates review creation and update business rules
func (bv *BusinessValidator) ValidateReview(req *ReviewRequest) ValidationErrors {
	return bv.Validate(req)
}

// IsReservedUsername reports whether the username collides with the
// self-profile route.
func IsReservedUsername(username string) bool {
	_, reserved := reservedUsernames[username]
	return reserved
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Username character set (letters, digits and @/./+/-/_)
	bv.validate.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	// Reserved username check
	bv.validate.RegisterValidation("not_reserved", func(fl validator.FieldLevel) bool {
		return !IsReservedUsername(fl.Field().String())
	})

	// Slug validation for categories, genres and title references
	bv.validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	// Review score validation (1-10)
	bv.validate.RegisterValidation("score_range", func(fl validator.FieldLevel) bool {
		score := fl.Field().Int()
		return score >= 1 && score <= 10
	})

	// Role validation
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})
}
