package api

// CreatePostRequest carries the new-post form fields.
type CreatePostRequest struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
}
