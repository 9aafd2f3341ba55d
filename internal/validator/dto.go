package validator

// SignupRequest is the self-service registration payload.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username_chars,not_reserved"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// TokenRequest exchanges a confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150,username_chars"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// UserCreateRequest is the admin-side user creation payload.
type UserCreateRequest struct {
	Username  string `json:"username" validate:"required,max=150,username_chars,not_reserved"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,user_role"`
}

// UserUpdateRequest is the admin-side partial update payload. Usernames are
// immutable after creation, so no update payload carries one.
type UserUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,user_role"`
}

// ProfileUpdateRequest is the self-service profile payload. It carries no
// role field (users cannot change their own role) and, like the admin
// payload, no username.
type ProfileUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

// CategoryRequest creates a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// GenreRequest creates a genre.
type GenreRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// TitleCreateRequest creates a title. Genre and category reference existing
// taxonomy entries by slug.
type TitleCreateRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,slug"`
	Category    string   `json:"category" validate:"required,slug"`
}

// TitleUpdateRequest partially updates a title. Year is accepted as-is here;
// the future-year rule applies only at creation.
type TitleUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
}

// ReviewRequest creates or updates a review.
type ReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,score_range"`
}

// CommentRequest creates or updates a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}
