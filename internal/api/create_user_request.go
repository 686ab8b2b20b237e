package api

// CreateUserRequest carries the new-user form fields. image_url may be
// blank; the handler substitutes the placeholder image.
type CreateUserRequest struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	ImageURL  string `form:"image_url"`
}
