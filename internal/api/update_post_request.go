package api

// UpdatePostRequest carries the edit-post form fields. The owner and
// creation time are not editable.
type UpdatePostRequest struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
}
