// Package users holds the handlers for the /users routes, including the
// nested new-post form.
package users

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blogly/internal/api"
	"blogly/internal/cache"
	"blogly/internal/database"
	"blogly/internal/model"
	"blogly/internal/session"
	"blogly/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createUser      = store.CreateUser
	getUserByID     = store.GetUserByID
	listUsers       = store.ListUsers
	updateUser      = store.UpdateUser
	deleteUser      = store.DeleteUser
	createPost      = store.CreatePost
	listPostsByUser = store.ListPostsByUser
	setFlash        = session.SetFlash
	popFlash        = session.PopFlash
)

// ListUsersHandler renders all users sorted by last name then first name.
func ListUsersHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		data := echo.Map{"Users": users}
		if msg, err := popFlash(c.Request().Context(), rdb, session.ID(c)); err == nil && msg != "" {
			data["Flash"] = msg
		}
		return c.Render(http.StatusOK, "users", data)
	}
}

// NewUserFormHandler renders the blank user form.
func NewUserFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "user_form", echo.Map{})
	}
}

// CreateUserHandler creates a user from the form body and redirects to
// the user list.
func CreateUserHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if req.ImageURL == "" {
			req.ImageURL = model.DefaultImageURL
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			ImageURL:  req.ImageURL,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		flash(c, rdb, fmt.Sprintf("User %s created.", user.FullName()))
		return c.Redirect(http.StatusFound, "/users")
	}
}

// GetUserHandler renders the user detail page with the user's posts.
func GetUserHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return userLookupError(err)
		}
		posts, err := listPostsByUser(c.Request().Context(), db, id)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		data := echo.Map{"User": user, "Posts": posts}
		if msg, err := popFlash(c.Request().Context(), rdb, session.ID(c)); err == nil && msg != "" {
			data["Flash"] = msg
		}
		return c.Render(http.StatusOK, "user_detail", data)
	}
}

// EditUserFormHandler renders the edit form pre-filled with the user.
func EditUserFormHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return userLookupError(err)
		}
		return c.Render(http.StatusOK, "user_edit", echo.Map{"User": user})
	}
}

// UpdateUserHandler overwrites all three user fields from the form body
// and redirects to the user list.
func UpdateUserHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if req.ImageURL == "" {
			req.ImageURL = model.DefaultImageURL
		}

		user := &model.User{
			ID:        id,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			ImageURL:  req.ImageURL,
		}
		if err := updateUser(c.Request().Context(), db, user); err != nil {
			return userLookupError(err)
		}

		flash(c, rdb, fmt.Sprintf("User %s updated.", user.FullName()))
		return c.Redirect(http.StatusFound, "/users")
	}
}

// DeleteUserHandler deletes the user (posts cascade) and redirects to the
// user list.
func DeleteUserHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return userLookupError(err)
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		flash(c, rdb, fmt.Sprintf("User %s deleted.", user.FullName()))
		return c.Redirect(http.StatusFound, "/users")
	}
}

// NewPostFormHandler renders the new-post form for the user.
func NewPostFormHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return userLookupError(err)
		}
		return c.Render(http.StatusOK, "post_form", echo.Map{"User": user})
	}
}

// CreatePostHandler creates a post owned by the user and redirects to the
// user detail page.
func CreatePostHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return userLookupError(err)
		}

		var req api.CreatePostRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		post, err := createPost(c.Request().Context(), db, &model.Post{
			Title:   req.Title,
			Content: req.Content,
			UserID:  user.ID,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		flash(c, rdb, fmt.Sprintf("Post %q created.", post.Title))
		return c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
	}
}

// userID parses the :id path param. Anything that is not a positive
// integer behaves like an unknown user.
func userID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return id, nil
}

func userLookupError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// flash records the confirmation for the next rendered page. Losing it is
// not worth failing a mutation that already committed.
func flash(c echo.Context, rdb cache.Cache, msg string) {
	if err := setFlash(c.Request().Context(), rdb, session.ID(c), msg); err != nil {
		c.Logger().Error(err)
	}
}
