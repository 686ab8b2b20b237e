// Package posts holds the handlers for the /posts routes.
package posts

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
	getPostByID  = store.GetPostByID
	getPostOwner = store.GetPostOwner
	updatePost   = store.UpdatePost
	deletePost   = store.DeletePost
	setFlash     = session.SetFlash
	popFlash     = session.PopFlash
)

// GetPostHandler renders the post detail page with its owning user.
func GetPostHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := getPostByID(c.Request().Context(), db, id)
		if err != nil {
			return postLookupError(err)
		}
		owner, err := getPostOwner(c.Request().Context(), db, id)
		if err != nil {
			return postLookupError(err)
		}
		data := echo.Map{"Post": post, "User": owner}
		if msg, err := popFlash(c.Request().Context(), rdb, session.ID(c)); err == nil && msg != "" {
			data["Flash"] = msg
		}
		return c.Render(http.StatusOK, "post_detail", data)
	}
}

// EditPostFormHandler renders the edit form pre-filled with the post.
func EditPostFormHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := getPostByID(c.Request().Context(), db, id)
		if err != nil {
			return postLookupError(err)
		}
		return c.Render(http.StatusOK, "post_edit", echo.Map{"Post": post})
	}
}

// UpdatePostHandler overwrites title and content from the form body and
// redirects to the post detail page.
func UpdatePostHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}

		var req api.UpdatePostRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		post := &model.Post{ID: id, Title: req.Title, Content: req.Content}
		if err := updatePost(c.Request().Context(), db, post); err != nil {
			return postLookupError(err)
		}

		flash(c, rdb, fmt.Sprintf("Post %q updated.", post.Title))
		return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
	}
}

// DeletePostHandler deletes the post and redirects to the user list.
func DeletePostHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := getPostByID(c.Request().Context(), db, id)
		if err != nil {
			return postLookupError(err)
		}
		if err := deletePost(c.Request().Context(), db, id); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		flash(c, rdb, fmt.Sprintf("Post %q deleted.", post.Title))
		return c.Redirect(http.StatusFound, "/users")
	}
}

func postID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return id, nil
}

func postLookupError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func flash(c echo.Context, rdb cache.Cache, msg string) {
	if err := setFlash(c.Request().Context(), rdb, session.ID(c), msg); err != nil {
		c.Logger().Error(err)
	}
}
