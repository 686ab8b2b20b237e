package api

// UpdateUserRequest carries the edit-user form fields. Edits overwrite all
// three fields.
type UpdateUserRequest struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	ImageURL  string `form:"image_url"`
}
